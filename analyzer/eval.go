package analyzer

import (
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/pngc/ast"
)

// MaxExprDepth bounds the explicit evaluation stack; MaxEvalIterations
// bounds total node visits, independent of tree shape.
const (
	MaxExprDepth      = 64
	MaxEvalIterations = MaxExprDepth * 3
)

// evalFrame is one stack frame of the iterative postorder evaluator.
// visited marks that this frame's children have already been pushed and
// its value should now be computed from theirs, rather than that its
// children still need visiting.
type evalFrame struct {
	node    uint32
	visited bool
}

// evalConst folds the constant arithmetic expression rooted at node (built
// from NumberValue/IdentifierValue leaves and ExprAdd/Sub/Mul/Div/Negate
// nodes) to a float64. It returns ok=false for anything it cannot fold:
// division by zero, an identifier that is not one of the named constants,
// or a malformed node — there is no partial result to fall back on.
func (a *Analyzer) evalConst(node uint32) (float64, bool) {
	return evalConstOn(a.ast, node)
}

// EvalConst exposes the same constant folder to callers downstream of
// analysis (package emitter) that only hold an *Analysis, not the Analyzer
// that produced it — resolving a property's numeric value is needed well
// after all seven passes have finished.
func (a *Analysis) EvalConst(node uint32) (float64, bool) {
	return evalConstOn(a.Ast, node)
}

func evalConstOn(tree *ast.Ast, node uint32) (float64, bool) {
	stack := []evalFrame{{node: node}}
	values := make(map[uint32]float64, 8)
	iterations := 0

	for len(stack) > 0 {
		iterations++
		if iterations > MaxEvalIterations || len(stack) > MaxExprDepth {
			return 0, false
		}

		top := stack[len(stack)-1]

		switch tree.Tags[top.node] {
		case ast.NumberValue:
			v, ok := parseNumberLiteral(tree.TokenLexeme(top.node))
			if !ok {
				return 0, false
			}
			values[top.node] = v
			stack = stack[:len(stack)-1]

		case ast.IdentifierValue:
			v, ok := namedConstant(string(tree.TokenLexeme(top.node)))
			if !ok {
				return 0, false
			}
			values[top.node] = v
			stack = stack[:len(stack)-1]

		case ast.ExprNegate:
			child := tree.Datas[top.node].Child()
			if top.visited {
				values[top.node] = -values[child]
				stack = stack[:len(stack)-1]
				continue
			}
			stack[len(stack)-1].visited = true
			stack = append(stack, evalFrame{node: child})

		case ast.ExprAdd, ast.ExprSub, ast.ExprMul, ast.ExprDiv:
			lhs, rhs := tree.Datas[top.node].Pair()
			if top.visited {
				l, r := values[lhs], values[rhs]
				var v float64
				switch tree.Tags[top.node] {
				case ast.ExprAdd:
					v = l + r
				case ast.ExprSub:
					v = l - r
				case ast.ExprMul:
					v = l * r
				case ast.ExprDiv:
					if r == 0 {
						return 0, false
					}
					v = l / r
				}
				values[top.node] = v
				stack = stack[:len(stack)-1]
				continue
			}
			stack[len(stack)-1].visited = true
			stack = append(stack, evalFrame{node: rhs}, evalFrame{node: lhs})

		default:
			return 0, false
		}
	}

	v, ok := values[node]
	return v, ok
}

// parseNumberLiteral parses a NumberValue token's raw text: either a 0x/0X
// hex integer or a decimal literal with an optional fractional part.
func parseNumberLiteral(lexeme []byte) (float64, bool) {
	s := string(lexeme)
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// namedConstant resolves the evaluator's three named constants. Matching is
// case-insensitive ("pi", "PI" and "Pi" all resolve) since these appear as
// bare identifiers typed alongside arbitrary user declaration names.
func namedConstant(name string) (float64, bool) {
	switch strings.ToUpper(name) {
	case "PI":
		return math.Pi, true
	case "E":
		return math.E, true
	case "TAU":
		return 2 * math.Pi, true
	default:
		return 0, false
	}
}
