package dsl

import "strings"

type tokenKind int

const (
	tokLParen tokenKind = iota
	tokRParen
	tokIdent // identifier, operator, or numeric literal
	tokVar   // $name
)

type token struct {
	kind tokenKind
	text string
}

// lex splits source text into tokens. Whitespace is insignificant; '(' and
// ')' are always their own token regardless of adjacent spacing.
func lex(src string) []token {
	var toks []token
	var buf strings.Builder

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		text := buf.String()
		buf.Reset()
		if strings.HasPrefix(text, "$") {
			toks = append(toks, token{kind: tokVar, text: text[1:]})
		} else {
			toks = append(toks, token{kind: tokIdent, text: text})
		}
	}

	for _, r := range src {
		switch {
		case r == '(' || r == ')':
			flush()
			kind := tokLParen
			if r == ')' {
				kind = tokRParen
			}
			toks = append(toks, token{kind: kind, text: string(r)})
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			buf.WriteRune(r)
		}
	}
	flush()
	return toks
}
