package dsl

import (
	"strconv"
	"strings"
)

// Serialize renders an Effect back to source text. It is the exact inverse
// of Parse: for any effect e, Parse(Serialize(e)) produces a tree equal to e.
func Serialize(e *Effect) string {
	parts := make([]string, len(e.Nodes))
	for i, n := range e.Nodes {
		parts[i] = SerializeExpr(n)
	}
	return strings.Join(parts, "\n")
}

// SerializeExpr renders a single Expr node back to source text.
func SerializeExpr(e *Expr) string {
	switch e.Kind {
	case KindLiteral:
		return strconv.Itoa(e.Num)
	case KindVar:
		return "$" + e.Op
	case KindAtom:
		return e.Op
	case KindCall:
		return serializeCall(e)
	default:
		return ""
	}
}

func serializeCall(e *Expr) string {
	switch e.Op {
	case "let":
		return "let " + SerializeExpr(e.Args[0]) + " = " + SerializeExpr(e.Args[1])
	case "if":
		block := e.Args[1]
		actions := make([]string, len(block.Args))
		for i, a := range block.Args {
			actions[i] = SerializeExpr(a)
		}
		return "if " + SerializeExpr(e.Args[0]) + " ( " + strings.Join(actions, " ") + " )"
	}

	if len(e.Args) == 2 && infixOps[e.Op] {
		// Infix operators bind right-associatively and a call swallows the
		// following operator, so a call on the left must be grouped.
		left := SerializeExpr(e.Args[0])
		if e.Args[0].Kind == KindCall && len(e.Args[0].Args) > 0 {
			left = "(" + left + ")"
		}
		return left + " " + e.Op + " " + SerializeExpr(e.Args[1])
	}

	if len(e.Args) == 0 {
		return e.Op
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = SerializeExpr(a)
	}
	return e.Op + " " + strings.Join(parts, " ")
}
