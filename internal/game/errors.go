package game

import (
	"fmt"

	"github.com/oshifan/hocgsim/internal/card"
)

// SetupErrorKind enumerates the ways a loadout can fail match setup.
type SetupErrorKind int

const (
	ErrMissingLead SetupErrorKind = iota
	ErrEmptyMainDeck
	ErrEmptyCheerDeck
	ErrUnknownCardNumber
	ErrDeckSizeIllegal
	ErrCopyLimitExceeded
)

func (k SetupErrorKind) String() string {
	switch k {
	case ErrMissingLead:
		return "MissingLead"
	case ErrEmptyMainDeck:
		return "EmptyMainDeck"
	case ErrEmptyCheerDeck:
		return "EmptyCheerDeck"
	case ErrUnknownCardNumber:
		return "UnknownCardNumber"
	case ErrDeckSizeIllegal:
		return "DeckSizeIllegal"
	case ErrCopyLimitExceeded:
		return "CopyLimitExceeded"
	default:
		return "Unknown"
	}
}

// SetupError is returned to the caller when a loadout is illegal; no match
// starts.
type SetupError struct {
	Kind   SetupErrorKind
	Player card.Player
	Number string
}

func (e *SetupError) Error() string {
	if e.Number != "" {
		return fmt.Sprintf("game: setup: %s (%s, %q)", e.Kind, e.Player, e.Number)
	}
	return fmt.Sprintf("game: setup: %s (%s)", e.Kind, e.Player)
}

// RuntimeErrorKind distinguishes recoverable effect failures from fatal
// match-ending ones.
type RuntimeErrorKind int

const (
	Recoverable RuntimeErrorKind = iota
	Fatal
)

func (k RuntimeErrorKind) String() string {
	if k == Fatal {
		return "Fatal"
	}
	return "Recoverable"
}

// RuntimeError is raised while evaluating an effect or running the
// director. Recoverable errors abort only the current action or effect
// branch and the match continues; changes made before the error (a paid
// cost, a moved card) are not undone. Fatal errors bubble to the director,
// which records an Outcome and emits GameOver.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Msg  string
	Err  error
}

func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("game: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("game: %s: %s", e.Kind, e.Msg)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func recoverableErr(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: Recoverable, Msg: fmt.Sprintf(format, args...)}
}

func fatalErr(format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: Fatal, Msg: fmt.Sprintf(format, args...)}
}
