package internal

import "fmt"

// Span is a half-open [Start, End) range of Unicode scalar value offsets
// into the source. Offsets count runes, not bytes.
type Span struct {
	Start int
	End   int
}

// String returns a human-readable span string
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Contains reports whether a cursor position falls inside the span.
// The position just past the last rune counts as inside, so a cursor at
// the end of a construct still belongs to it while typing.
func (s Span) Contains(pos int) bool {
	return pos > s.Start && pos <= s.End
}

// Token represents one lexical construct produced by the lexer. The lexer
// segments the source into whole constructs; shape validation of the
// construct's interior is the parser's job.
type Token struct {
	Type   TokenType
	Value  string // interior text for bracketed constructs, raw text otherwise
	Span   Span   // full lexeme including delimiters
	Closed bool   // closing delimiter was found before end of line
	Quoted bool   // reference used the quoted form
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	return fmt.Sprintf("Token{%s: %q @ %s}", t.Type, t.Value, t.Span)
}

// IsEOF returns true if this is an end-of-input token
func (t Token) IsEOF() bool {
	return t.Type == TokenTypeEOF
}

// InnerStart returns the rune offset where the token's interior text
// begins. Only meaningful for bracketed construct tokens.
func (t Token) InnerStart() int {
	switch t.Type {
	case TokenTypeSlot, TokenTypeExprBlock:
		return t.Span.Start + 2
	case TokenTypeBrace, TokenTypeComment:
		return t.Span.Start + 1
	case TokenTypeReference:
		if t.Quoted {
			return t.Span.Start + 2 // skip @ and the opening quote
		}
		return t.Span.Start + 1
	default:
		return t.Span.Start
	}
}

// NewToken creates a new token with the given type, value, and span
func NewToken(tokenType TokenType, value string, span Span) Token {
	return Token{
		Type:  tokenType,
		Value: value,
		Span:  span,
	}
}

// NewTextToken creates a text token with the given content
func NewTextToken(content string, span Span) Token {
	return Token{
		Type:  TokenTypeText,
		Value: content,
		Span:  span,
	}
}

// NewCommentToken creates a comment token; value excludes the leading '#'
func NewCommentToken(content string, span Span) Token {
	return Token{
		Type:  TokenTypeComment,
		Value: content,
		Span:  span,
	}
}

// NewSlotToken creates a slot token; value is the text between {{ and }}
func NewSlotToken(inner string, span Span, closed bool) Token {
	return Token{
		Type:   TokenTypeSlot,
		Value:  inner,
		Span:   span,
		Closed: closed,
	}
}

// NewBraceToken creates a brace token; value is the text between { and }
func NewBraceToken(inner string, span Span, closed bool) Token {
	return Token{
		Type:   TokenTypeBrace,
		Value:  inner,
		Span:   span,
		Closed: closed,
	}
}

// NewReferenceToken creates a reference token for @Name or @"Name" forms
func NewReferenceToken(name string, span Span, quoted, closed bool) Token {
	return Token{
		Type:   TokenTypeReference,
		Value:  name,
		Span:   span,
		Quoted: quoted,
		Closed: closed,
	}
}

// NewExprBlockToken creates an expression block token; value is the text
// between [[ and ]]
func NewExprBlockToken(inner string, span Span, closed bool) Token {
	return Token{
		Type:   TokenTypeExprBlock,
		Value:  inner,
		Span:   span,
		Closed: closed,
	}
}

// NewStrayAtToken creates a token for a lone '@' that cannot start a
// reference; the parser degrades it to literal text with a warning
func NewStrayAtToken(span Span) Token {
	return Token{
		Type:  TokenTypeStrayAt,
		Value: string(CharAt),
		Span:  span,
	}
}

// NewEOFToken creates an EOF token at the given offset
func NewEOFToken(offset int) Token {
	return Token{
		Type: TokenTypeEOF,
		Span: Span{Start: offset, End: offset},
	}
}
