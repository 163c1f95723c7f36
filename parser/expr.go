package parser

import "github.com/gogpu/pngc/ast"
import "github.com/gogpu/pngc/token"

// parseExpr parses an arithmetic expression:
//
//	expr    = term (("+" | "-") term)*
//	term    = factor (("*" | "/") factor)*
//	factor  = number | "(" expr ")" | "-" factor
//
// Parens nest arbitrarily, so this cannot be a single flat loop the way
// array/object parsing is; instead it runs its own small explicit
// operator-precedence machine (two stacks: pending operand nodes, pending
// operators) rather than calling itself recursively per paren level. Depth
// is bounded by MaxNestingDepth and total work by MaxParseIterations, the
// same counters runWork uses, since both walk the same token stream.
func (p *Parser) parseExpr() (uint32, error) {
	const unary = ast.ExprNegate // reused as the "pending unary minus" marker
	const parenMarker = ast.Tag(0xFF)

	var operands []uint32
	var opTags []ast.Tag
	var opToks []uint32
	depth := 0
	expectOperand := true

	apply := func() error {
		n := len(opTags)
		tag := opTags[n-1]
		tok := opToks[n-1]
		opTags = opTags[:n-1]
		opToks = opToks[:n-1]

		if tag == unary {
			if len(operands) < 1 {
				return p.errorf("malformed expression")
			}
			rhs := operands[len(operands)-1]
			operands = operands[:len(operands)-1]
			operands = append(operands, p.ast.AddNode(ast.ExprNegate, tok, ast.AsChild(rhs)))
			return nil
		}
		if len(operands) < 2 {
			return p.errorf("malformed expression")
		}
		rhs := operands[len(operands)-1]
		lhs := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operands = append(operands, p.ast.AddNode(tag, tok, ast.AsPair(lhs, rhs)))
		return nil
	}

	precedence := func(tag ast.Tag) int {
		switch tag {
		case ast.ExprMul, ast.ExprDiv:
			return 2
		case ast.ExprAdd, ast.ExprSub:
			return 1
		case unary:
			return 3
		default:
			return 0
		}
	}

loop:
	for {
		p.iterations++
		if p.iterations > MaxParseIterations {
			return 0, p.errorf("exceeded max parse iterations (%d)", MaxParseIterations)
		}

		tok := p.peek()
		if expectOperand {
			switch tok.Tag {
			case token.Minus:
				opTags = append(opTags, unary)
				opToks = append(opToks, p.pos)
				p.advance()
				// expectOperand stays true: a unary minus is still waiting
				// for its factor.
			case token.LeftParen:
				depth++
				if depth > MaxNestingDepth {
					return 0, p.errorf("exceeded max nesting depth (%d)", MaxNestingDepth)
				}
				opTags = append(opTags, parenMarker)
				opToks = append(opToks, p.pos)
				p.advance()
			case token.NumberLiteral:
				operands = append(operands, p.ast.AddNode(ast.NumberValue, p.pos, ast.Data{}))
				p.advance()
				expectOperand = false
			default:
				return 0, p.errorf("expected a number, '(' or '-', found %s", tok.Tag)
			}
			continue
		}

		switch tok.Tag {
		case token.Plus, token.Minus, token.Star, token.Slash:
			newTag := binOpTag(tok.Tag)
			newPrec := precedence(newTag)
			for len(opTags) > 0 && opTags[len(opTags)-1] != parenMarker && precedence(opTags[len(opTags)-1]) >= newPrec {
				if err := apply(); err != nil {
					return 0, err
				}
			}
			opTags = append(opTags, newTag)
			opToks = append(opToks, p.pos)
			p.advance()
			expectOperand = true
		case token.RightParen:
			if depth == 0 {
				// Not our paren to consume: this expression is over (e.g.
				// we are a factor nested one level up and this ')' closes
				// the enclosing call's paren). Stop without consuming.
				break loop
			}
			for len(opTags) > 0 && opTags[len(opTags)-1] != parenMarker {
				if err := apply(); err != nil {
					return 0, err
				}
			}
			if len(opTags) == 0 {
				return 0, p.errorf("unmatched ')'")
			}
			opTags = opTags[:len(opTags)-1] // pop parenMarker
			opToks = opToks[:len(opToks)-1]
			depth--
			p.advance()
			expectOperand = false
		default:
			break loop
		}
	}

	if expectOperand {
		return 0, p.errorf("malformed expression: trailing operator")
	}
	for len(opTags) > 0 {
		if opTags[len(opTags)-1] == parenMarker {
			return 0, p.errorf("unmatched '('")
		}
		if err := apply(); err != nil {
			return 0, err
		}
	}
	if len(operands) != 1 {
		return 0, p.errorf("malformed expression")
	}
	return operands[0], nil
}

func binOpTag(t token.Tag) ast.Tag {
	switch t {
	case token.Plus:
		return ast.ExprAdd
	case token.Minus:
		return ast.ExprSub
	case token.Star:
		return ast.ExprMul
	default: // token.Slash
		return ast.ExprDiv
	}
}
