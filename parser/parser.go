// Package parser builds an ast.Ast from a token stream.
//
// The parser never recurses: a single explicit work stack (array, object,
// finish-property, macro-body frames) plus a shared scratch slice for
// children-in-progress replace what would ordinarily be recursive-descent
// call frames. A container only ever grows the stack; it never grows the Go
// call stack, so parse depth is bounded by MaxNestingDepth rather than by
// the platform's goroutine stack size. See runWork.
package parser

import (
	"github.com/gogpu/pngc/ast"
	"github.com/gogpu/pngc/lexer"
	"github.com/gogpu/pngc/token"
)

// Resource bounds. Every potentially unbounded loop in this package is
// capped by one of these.
const (
	MaxMacros           = 4096
	MaxProperties       = 1024
	MaxParseIterations  = 65536
	MaxNestingDepth     = 256
)

// taskKind discriminates a work-stack frame.
type taskKind uint8

const (
	// taskMacroBody collects Property* until '}', completing into a
	// per-namespace Decl node.
	taskMacroBody taskKind = iota
	// taskArray collects element nodes until ']', completing into an
	// ArrayValue node.
	taskArray
	// taskObject collects Property* until '}', completing into an
	// ObjectValue node.
	taskObject
	// taskFinishProperty has no token-level work of its own: it waits for
	// the frame below it (an array/object) to finish, then wraps the
	// completed node into a Property keyed by propertyKey.
	taskFinishProperty
)

type task struct {
	kind        taskKind
	scratchTop  int      // len(scratch) when this frame was pushed
	mainToken   uint32   // decl name token, or the opening '['/'{' token
	declTag     ast.Tag  // taskMacroBody only
	propertyKey uint32   // taskFinishProperty only
}

// Parser holds the mutable state of one parse: token cursor, the AST under
// construction, the explicit work stack and its scratch accumulator.
type Parser struct {
	ast *ast.Ast
	pos uint32

	work       []task
	scratch    []uint32
	iterations int
}

// Parse tokenizes src and parses it into a complete Ast, or returns the
// first ParseError encountered. On error the partial Ast is discarded, per
// spec: there is no recovery, only a single fatal error.
func Parse(src token.Source) (*ast.Ast, error) {
	tokens := lexer.Tokenize(src)

	nodeCap := len(tokens)/2 + 8
	a := ast.New(src, tokens, nodeCap, nodeCap*2)
	a.AddNode(ast.Root, 0, ast.Data{}) // node 0, patched once top decls are known

	p := &Parser{
		ast:     a,
		work:    make([]task, 0, MaxNestingDepth),
		scratch: make([]uint32, 0, 64),
	}
	return p.parseFile()
}

func (p *Parser) peek() token.Token {
	return p.ast.Tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < uint32(len(p.ast.Tokens)-1) {
		p.pos++
	}
}

func (p *Parser) expect(tag token.Tag) error {
	if p.peek().Tag != tag {
		return p.errorf("expected %s, found %s", tag, p.peek().Tag)
	}
	return nil
}

func (p *Parser) expectAdvance(tag token.Tag) error {
	if err := p.expect(tag); err != nil {
		return err
	}
	p.advance()
	return nil
}

func (p *Parser) tokenLexeme(tokIdx uint32) []byte {
	return p.ast.Tokens[tokIdx].Lexeme(p.ast.Source)
}

// parseFile implements "file = macro*", bounded by MaxMacros. Every runWork
// call happens beneath it, through parseMacro or parseValueRoot, so the
// whole file parses with a single, reused work stack.
func (p *Parser) parseFile() (*ast.Ast, error) {
	var topDecls []uint32
	for {
		if p.peek().Tag == token.EOF {
			break
		}
		if len(topDecls) >= MaxMacros {
			return nil, p.errorf("too many top-level declarations (max %d)", MaxMacros)
		}
		declNode, err := p.parseMacro()
		if err != nil {
			return nil, err
		}
		topDecls = append(topDecls, declNode)
	}
	start, end := p.ast.AppendExtra(topDecls)
	p.ast.Datas[0] = ast.AsSubRange(start, end)
	return p.ast, nil
}

// parseMacro parses one "#name ident { property* }" declaration, or one
// "#define ident = value".
func (p *Parser) parseMacro() (uint32, error) {
	tok := p.peek()
	if tok.Tag == token.MacroDefine {
		return p.parseDefine()
	}

	declTag, ok := declTagForMacro(tok.Tag)
	if !ok {
		return 0, p.errorf("expected a macro declaration, found %s", tok.Tag)
	}
	p.advance() // consume '#name'

	if err := p.expect(token.Identifier); err != nil {
		return 0, p.errorf("expected declaration name after %s", tok.Tag)
	}
	nameTok := p.pos
	p.advance()

	if err := p.expectAdvance(token.LeftBrace); err != nil {
		return 0, err
	}

	return p.runWork(task{kind: taskMacroBody, scratchTop: len(p.scratch), mainToken: nameTok, declTag: declTag})
}

func (p *Parser) parseDefine() (uint32, error) {
	p.advance() // consume '#define'

	if err := p.expect(token.Identifier); err != nil {
		return 0, p.errorf("expected identifier after #define")
	}
	nameTok := p.pos
	p.advance()

	if err := p.expectAdvance(token.Equal); err != nil {
		return 0, err
	}

	valueNode, err := p.parseValueRoot()
	if err != nil {
		return 0, err
	}
	return p.ast.AddNode(ast.DeclDefine, nameTok, ast.AsChild(valueNode)), nil
}

// parseValueRoot parses a value that is not nested inside any in-progress
// array/object frame (currently only #define's right-hand side). Simple
// values never touch the work stack at all; a container value pushes a
// single frame and drives it through runWork, same as any nested value.
func (p *Parser) parseValueRoot() (uint32, error) {
	if child, ok, err := p.tryParseSimpleValue(); err != nil {
		return 0, err
	} else if ok {
		return child, nil
	}

	startTok := p.pos
	switch p.peek().Tag {
	case token.LeftBracket:
		p.advance()
		return p.runWork(task{kind: taskArray, scratchTop: len(p.scratch), mainToken: startTok})
	case token.LeftBrace:
		p.advance()
		return p.runWork(task{kind: taskObject, scratchTop: len(p.scratch), mainToken: startTok})
	default:
		return 0, p.errorf("expected a value")
	}
}

// runWork pushes initial and drives the shared work stack until it empties,
// returning the node that the initial frame (and anything wrapping it)
// ultimately produced. It is the only loop in the parser that spans
// container nesting; everything inside it is flat iteration, never a
// recursive call back into runWork.
func (p *Parser) runWork(initial task) (uint32, error) {
	p.work = append(p.work, initial)

	for len(p.work) > 0 {
		p.iterations++
		if p.iterations > MaxParseIterations {
			return 0, p.errorf("exceeded max parse iterations (%d)", MaxParseIterations)
		}
		if len(p.work) > MaxNestingDepth {
			return 0, p.errorf("exceeded max nesting depth (%d)", MaxNestingDepth)
		}

		top := &p.work[len(p.work)-1]

		switch top.kind {
		case taskMacroBody:
			if p.peek().Tag == token.RightBrace {
				p.advance()
				node, err := p.closeContainer(top, top.declTag)
				if err != nil {
					return 0, err
				}
				p.work = p.work[:len(p.work)-1]
				if final, done := p.deliver(node); done {
					return final, nil
				}
				continue
			}
			if err := p.parsePropertyInto(top); err != nil {
				return 0, err
			}

		case taskObject:
			if p.peek().Tag == token.RightBrace {
				p.advance()
				node, err := p.closeContainer(top, ast.ObjectValue)
				if err != nil {
					return 0, err
				}
				p.work = p.work[:len(p.work)-1]
				if final, done := p.deliver(node); done {
					return final, nil
				}
				continue
			}
			if err := p.parsePropertyInto(top); err != nil {
				return 0, err
			}

		case taskArray:
			if p.peek().Tag == token.RightBracket {
				p.advance()
				node, err := p.closeContainer(top, ast.ArrayValue)
				if err != nil {
					return 0, err
				}
				p.work = p.work[:len(p.work)-1]
				if final, done := p.deliver(node); done {
					return final, nil
				}
				continue
			}
			if p.peek().Tag == token.Comma {
				p.advance()
				continue
			}
			if err := p.parseArrayElement(); err != nil {
				return 0, err
			}

		case taskFinishProperty:
			// deliver always consumes finish-property frames itself before
			// returning control here; reaching one as "top" is a bug.
			return 0, p.errorf("internal: unreachable finish-property frame")
		}
	}
	return 0, p.errorf("internal: work stack drained without a result")
}

// closeContainer splices scratch[top.scratchTop:] into ExtraData and builds
// the completed node, truncating scratch back to where this frame started.
func (p *Parser) closeContainer(top *task, tag ast.Tag) (uint32, error) {
	children := p.scratch[top.scratchTop:]
	if (tag == ast.ObjectValue || top.kind == taskMacroBody) && len(children) > MaxProperties {
		return 0, p.errorf("too many properties (max %d)", MaxProperties)
	}
	start, end := p.ast.AppendExtra(children)
	p.scratch = p.scratch[:top.scratchTop]
	return p.ast.AddNode(tag, top.mainToken, ast.AsSubRange(start, end)), nil
}

// deliver hands a just-completed node to whatever now sits on top of the
// stack. A finish-property frame wraps it into a Property and keeps
// looking; an array/object frame (or an empty stack) is where delivery
// stops. Returns (node, true) when the stack is now empty — the overall
// result of this runWork call.
func (p *Parser) deliver(node uint32) (uint32, bool) {
	for len(p.work) > 0 && p.work[len(p.work)-1].kind == taskFinishProperty {
		fp := p.work[len(p.work)-1]
		p.work = p.work[:len(p.work)-1]
		node = p.ast.AddNode(ast.Property, fp.propertyKey, ast.AsChild(node))
	}
	if len(p.work) == 0 {
		return node, true
	}
	p.scratch = append(p.scratch, node)
	return 0, false
}

// parsePropertyInto parses "identifier '=' value" for an in-progress
// object or macro-body frame. A simple value is consumed and wrapped
// immediately; a container value pushes a finish-property frame followed by
// the container frame, so the wrapping happens once the container
// completes via deliver.
func (p *Parser) parsePropertyInto(top *task) error {
	if err := p.expect(token.Identifier); err != nil {
		return p.errorf("expected property name, found %s", p.peek().Tag)
	}
	keyTok := p.pos
	p.advance()

	if err := p.expectAdvance(token.Equal); err != nil {
		return err
	}

	if child, ok, err := p.tryParseSimpleValue(); err != nil {
		return err
	} else if ok {
		propNode := p.ast.AddNode(ast.Property, keyTok, ast.AsChild(child))
		p.scratch = append(p.scratch, propNode)
		return nil
	}

	startTok := p.pos
	switch p.peek().Tag {
	case token.LeftBracket:
		p.work = append(p.work, task{kind: taskFinishProperty, propertyKey: keyTok})
		p.work = append(p.work, task{kind: taskArray, scratchTop: len(p.scratch), mainToken: startTok})
		p.advance()
		return nil
	case token.LeftBrace:
		p.work = append(p.work, task{kind: taskFinishProperty, propertyKey: keyTok})
		p.work = append(p.work, task{kind: taskObject, scratchTop: len(p.scratch), mainToken: startTok})
		p.advance()
		return nil
	default:
		return p.errorf("expected a value for property %q", string(p.tokenLexeme(keyTok)))
	}
}

// parseArrayElement parses one element of an in-progress array frame.
func (p *Parser) parseArrayElement() error {
	if child, ok, err := p.tryParseSimpleValue(); err != nil {
		return err
	} else if ok {
		p.scratch = append(p.scratch, child)
		return nil
	}

	startTok := p.pos
	switch p.peek().Tag {
	case token.LeftBracket:
		p.work = append(p.work, task{kind: taskArray, scratchTop: len(p.scratch), mainToken: startTok})
		p.advance()
		return nil
	case token.LeftBrace:
		p.work = append(p.work, task{kind: taskObject, scratchTop: len(p.scratch), mainToken: startTok})
		p.advance()
		return nil
	default:
		return p.errorf("unexpected token in array: %s", p.peek().Tag)
	}
}

// tryParseSimpleValue consumes a string, number/paren/unary-minus
// expression, boolean, identifier or reference value without ever touching
// the work stack. ok is false (with no tokens consumed beyond what the
// caller already peeked) when the current token starts neither a simple
// value nor a container.
func (p *Parser) tryParseSimpleValue() (uint32, bool, error) {
	switch p.peek().Tag {
	case token.StringLiteral:
		mainTok := p.pos
		p.advance()
		tag := ast.StringValue
		if containsDollar(p.tokenLexeme(mainTok)) {
			tag = ast.RuntimeInterpolation
		}
		return p.ast.AddNode(tag, mainTok, ast.Data{}), true, nil

	case token.NumberLiteral, token.LeftParen, token.Minus:
		node, err := p.parseExpr()
		return node, true, err

	case token.BooleanLiteral:
		mainTok := p.pos
		p.advance()
		return p.ast.AddNode(ast.BooleanValue, mainTok, ast.Data{}), true, nil

	case token.Identifier:
		return p.parseIdentifierOrUniformAccess()

	case token.Dollar:
		node, err := p.parseReference()
		return node, true, err

	default:
		return 0, false, nil
	}
}

func containsDollar(b []byte) bool {
	for _, c := range b {
		if c == '$' {
			return true
		}
	}
	return false
}

// parseIdentifierOrUniformAccess consumes a bare identifier, then — if
// immediately followed by one or more "." identifier segments — reparses it
// as a UniformAccess ("module.var", the unprefixed counterpart of a "$ns.
// name" reference) instead of a plain IdentifierValue.
func (p *Parser) parseIdentifierOrUniformAccess() (uint32, bool, error) {
	mainTok := p.pos
	p.advance()

	if p.peek().Tag != token.Dot {
		return p.ast.AddNode(ast.IdentifierValue, mainTok, ast.Data{}), true, nil
	}

	segments := []uint32{mainTok}
	for p.peek().Tag == token.Dot {
		if len(segments) >= MaxNestingDepth {
			return 0, false, p.errorf("uniform access has too many segments (max %d)", MaxNestingDepth)
		}
		p.advance() // consume '.'
		if err := p.expect(token.Identifier); err != nil {
			return 0, false, p.errorf("expected identifier after '.'")
		}
		segments = append(segments, p.pos)
		p.advance()
	}

	start, end := p.ast.AppendExtra(segments)
	return p.ast.AddNode(ast.UniformAccess, mainTok, ast.AsSubRange(start, end)), true, nil
}

// parseReference parses "$" identifier ("." identifier)*, storing every
// identifier token index (namespace first) as a SubRange over ExtraData so
// both two-segment and longer dotted paths share one representation.
func (p *Parser) parseReference() (uint32, error) {
	dollarTok := p.pos
	p.advance() // consume '$'

	if err := p.expect(token.Identifier); err != nil {
		return 0, p.errorf("expected namespace identifier after '$'")
	}
	segments := []uint32{p.pos}
	p.advance()

	for p.peek().Tag == token.Dot {
		if len(segments) >= MaxNestingDepth {
			return 0, p.errorf("reference has too many segments (max %d)", MaxNestingDepth)
		}
		p.advance() // consume '.'
		if err := p.expect(token.Identifier); err != nil {
			return 0, p.errorf("expected identifier after '.'")
		}
		segments = append(segments, p.pos)
		p.advance()
	}

	start, end := p.ast.AppendExtra(segments)
	return p.ast.AddNode(ast.ReferenceValue, dollarTok, ast.AsSubRange(start, end)), nil
}

// declTagForMacro maps a macro keyword token tag to the ast.Tag of the
// declaration it introduces. MacroDefine is handled separately (parseDefine)
// since #define has a distinct grammar shape, not a property list.
func declTagForMacro(tag token.Tag) (ast.Tag, bool) {
	d, ok := macroToDecl[tag]
	return d, ok
}

var macroToDecl = map[token.Tag]ast.Tag{
	token.MacroWgsl:            ast.DeclWgsl,
	token.MacroBuffer:          ast.DeclBuffer,
	token.MacroTexture:         ast.DeclTexture,
	token.MacroSampler:         ast.DeclSampler,
	token.MacroBindGroup:       ast.DeclBindGroup,
	token.MacroBindGroupLayout: ast.DeclBindGroupLayout,
	token.MacroPipelineLayout:  ast.DeclPipelineLayout,
	token.MacroRenderPipeline:  ast.DeclRenderPipeline,
	token.MacroComputePipeline: ast.DeclComputePipeline,
	token.MacroRenderPass:      ast.DeclRenderPass,
	token.MacroComputePass:     ast.DeclComputePass,
	token.MacroFrame:           ast.DeclFrame,
	token.MacroShaderModule:    ast.DeclShaderModule,
	token.MacroData:            ast.DeclData,
	token.MacroQueue:           ast.DeclQueue,
	token.MacroImageBitmap:     ast.DeclImageBitmap,
	token.MacroWasmCall:        ast.DeclWasmCall,
	token.MacroQuerySet:        ast.DeclQuerySet,
	token.MacroTextureView:     ast.DeclTextureView,
	token.MacroAnimation:       ast.DeclAnimation,
}
