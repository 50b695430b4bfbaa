package dsl

import "fmt"

// Validate walks a parsed Effect and confirms every call/atom op is one of
// the closed keyword tables (or a dynamically-resolved is_named_* predicate).
// Catalog loading runs this once per card at startup so a typo in an effect
// string fails fast instead of surfacing mid-match as an evaluator panic.
func Validate(e *Effect) error {
	for _, n := range e.Nodes {
		if err := validateExpr(n); err != nil {
			return err
		}
	}
	return nil
}

func validateExpr(e *Expr) error {
	switch e.Kind {
	case KindLiteral, KindVar:
		return nil
	case KindAtom, KindCall:
		if e.Op == "block" || e.Op == "let" || e.Op == "if" {
			// structural forms, not keyword lookups
		} else if !IsKnownOp(e.Op) {
			return fmt.Errorf("dsl: unknown keyword %q", e.Op)
		}
		for _, a := range e.Args {
			if err := validateExpr(a); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("dsl: unrecognized expression kind")
	}
}
