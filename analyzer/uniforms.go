package analyzer

import (
	"bytes"

	"github.com/gogpu/pngc/ast"
)

// UniformBinding is a resolved module.var uniform access: which bind
// group/binding slot the emitter should wire it to, and the byte size to
// reserve.
type UniformBinding struct {
	Module    string
	Var       string
	Size      uint32
	BindGroup uint32
	Binding   uint32
}

// groupBindingTolerance and bindingVarTolerance bound the byte distance the
// nearness scan tolerates between "@group(", "@binding(" and "var<uniform>"
// in a shader's source text (spec's "20/30-byte tolerance" guidance).
// defaultUniformSize is used whenever neither an explicit uniforms entry nor
// the source scan can determine a binding.
const (
	groupBindingTolerance = 20
	bindingVarTolerance   = 30
	defaultUniformSize    = 12
)

// passResolveUniformAccess is pass 7: every UniformAccess node (a bare
// "module.var" value, as opposed to an explicit "$ns.name" reference) is
// resolved to a binding, preferring a scan of the named shader's own source
// text, falling back to the declaring buffer/texture's explicit "uniforms"
// array, and finally to the spec's stated default, in that order.
func (a *Analyzer) passResolveUniformAccess() {
	for idx, tag := range a.ast.Tags {
		if tag != ast.UniformAccess {
			continue
		}
		node := uint32(idx)
		start, end := a.ast.Datas[node].SubRange()
		segments := a.ast.ExtraSlice(start, end)
		if len(segments) < 2 {
			a.out.addError(node, "uniform access needs a module and a variable name")
			continue
		}

		module := string(a.tokenLexeme(segments[0]))
		varName := string(a.tokenLexeme(segments[1]))

		if binding, ok := a.resolveByNearness(module, varName); ok {
			a.out.ResolvedUniforms[node] = binding
			continue
		}
		if binding, ok := a.resolveFromUniformsArray(module, varName); ok {
			a.out.ResolvedUniforms[node] = binding
			continue
		}
		a.out.ResolvedUniforms[node] = UniformBinding{Module: module, Var: varName, Size: defaultUniformSize}
	}
}

// resolveFromUniformsArray looks for module among declared buffers and
// textures and, if found, for a matching entry in that declaration's
// "uniforms" array (objects shaped {name, size, bindGroup, binding}).
func (a *Analyzer) resolveFromUniformsArray(module, varName string) (UniformBinding, bool) {
	declNode, ok := a.out.Symbols[NamespaceBuffer][module]
	if !ok {
		declNode, ok = a.out.Symbols[NamespaceTexture][module]
	}
	if !ok {
		return UniformBinding{}, false
	}

	props := a.propertiesOf(declNode)
	arrNode, ok := props["uniforms"]
	if !ok || a.ast.Tags[arrNode] != ast.ArrayValue {
		return UniformBinding{}, false
	}

	start, end := a.ast.Datas[arrNode].SubRange()
	for _, entry := range a.ast.ExtraSlice(start, end) {
		if a.ast.Tags[entry] != ast.ObjectValue {
			continue
		}
		entryProps := a.propertiesOf(entry)
		nameNode, ok := entryProps["name"]
		if !ok {
			continue
		}
		name := a.ast.TokenLexeme(nameNode)
		if a.ast.Tags[nameNode] == ast.StringValue && len(name) >= 2 {
			name = name[1 : len(name)-1]
		}
		if string(name) != varName {
			continue
		}

		binding := UniformBinding{Module: module, Var: varName, Size: defaultUniformSize}
		if sizeNode, ok := entryProps["size"]; ok {
			if v, ok := a.evalConst(sizeNode); ok {
				binding.Size = uint32(v)
			}
		}
		if bgNode, ok := entryProps["bindGroup"]; ok {
			if v, ok := a.evalConst(bgNode); ok {
				binding.BindGroup = uint32(v)
			}
		}
		if bNode, ok := entryProps["binding"]; ok {
			if v, ok := a.evalConst(bNode); ok {
				binding.Binding = uint32(v)
			}
		}
		return binding, true
	}
	return UniformBinding{}, false
}

// resolveByNearness is the preferred path: it locates module among declared
// shader modules and wgsl fragments, then scans that declaration's own
// source text for a "@group(G) @binding(B) var<uniform> varName : T;"
// declaration, tolerating up to groupBindingTolerance bytes between the
// @group and @binding annotations and up to bindingVarTolerance bytes
// between @binding and the var<uniform> declaration itself. Only a source
// match naming varName resolves; it never guesses a group/binding it did
// not actually read.
func (a *Analyzer) resolveByNearness(module, varName string) (UniformBinding, bool) {
	declNode, key, ok := a.findShaderDecl(module)
	if !ok {
		return UniformBinding{}, false
	}
	props := a.propertiesOf(declNode)
	srcNode, ok := props[key]
	if !ok {
		return UniformBinding{}, false
	}
	if a.ast.Tags[srcNode] != ast.StringValue && a.ast.Tags[srcNode] != ast.RuntimeInterpolation {
		return UniformBinding{}, false
	}

	lexeme := a.ast.TokenLexeme(srcNode)
	if len(lexeme) < 2 {
		return UniformBinding{}, false
	}
	source := lexeme[1 : len(lexeme)-1]

	bindGroup, binding, ok := scanGroupBindingDecl(source, varName)
	if !ok {
		return UniformBinding{}, false
	}
	return UniformBinding{
		Module:    module,
		Var:       varName,
		Size:      defaultUniformSize,
		BindGroup: bindGroup,
		Binding:   binding,
	}, true
}

// findShaderDecl resolves a uniform access's module name against the
// shader_module and wgsl symbol tables, returning which property of the
// declaration carries its source text ("code" for shader_module, "value"
// for wgsl).
func (a *Analyzer) findShaderDecl(module string) (uint32, string, bool) {
	if declNode, ok := a.out.Symbols[NamespaceShaderModule][module]; ok {
		return declNode, "code", true
	}
	if declNode, ok := a.out.Symbols[NamespaceWgsl][module]; ok {
		return declNode, "value", true
	}
	return 0, "", false
}

// scanGroupBindingDecl scans source left-to-right for "@group(" markers,
// and for each one tries to confirm a "@binding(" within groupBindingTolerance
// bytes and a "var<uniform>" declaration of varName within bindingVarTolerance
// bytes after that — i.e. the literal `@group(G) @binding(B) var<uniform>
// varName : T;` pattern, with some slack between its three parts.
func scanGroupBindingDecl(source []byte, varName string) (bindGroup, binding uint32, ok bool) {
	const groupTag = "@group("
	const bindingTag = "@binding("
	const varTag = "var<uniform>"

	for i := 0; i+len(groupTag) <= len(source); i++ {
		if string(source[i:i+len(groupTag)]) != groupTag {
			continue
		}
		groupVal, next, found := parseUintAt(source, i+len(groupTag))
		if !found || next >= len(source) || source[next] != ')' {
			continue
		}

		bindingIdx := indexWithinTolerance(source, next+1, groupBindingTolerance, bindingTag)
		if bindingIdx < 0 {
			continue
		}
		bindingVal, next2, found2 := parseUintAt(source, bindingIdx+len(bindingTag))
		if !found2 || next2 >= len(source) || source[next2] != ')' {
			continue
		}

		varIdx := indexWithinTolerance(source, next2+1, bindingVarTolerance, varTag)
		if varIdx < 0 {
			continue
		}
		name, found3 := identifierAfter(source, varIdx+len(varTag))
		if found3 && name == varName {
			return groupVal, bindingVal, true
		}
	}
	return 0, 0, false
}

// indexWithinTolerance finds tag inside source[from : from+tolerance],
// returning its absolute index or -1.
func indexWithinTolerance(source []byte, from, tolerance int, tag string) int {
	end := from + tolerance
	if end > len(source) {
		end = len(source)
	}
	if from > end {
		return -1
	}
	rel := bytes.Index(source[from:end], []byte(tag))
	if rel < 0 {
		return -1
	}
	return from + rel
}

// parseUintAt reads the decimal digits starting at i, returning the parsed
// value and the index just past the last digit.
func parseUintAt(source []byte, i int) (value uint32, next int, ok bool) {
	start := i
	for i < len(source) && source[i] >= '0' && source[i] <= '9' {
		value = value*10 + uint32(source[i]-'0')
		i++
	}
	return value, i, i > start
}

// identifierAfter skips leading whitespace at i, then reads an identifier
// ([A-Za-z0-9_]+, matching how WGSL variable names tokenize).
func identifierAfter(source []byte, i int) (string, bool) {
	for i < len(source) && isSpaceByte(source[i]) {
		i++
	}
	start := i
	for i < len(source) && isIdentByte(source[i]) {
		i++
	}
	return string(source[start:i]), i > start
}

func isSpaceByte(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
