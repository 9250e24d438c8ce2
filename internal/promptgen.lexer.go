package internal

import (
	"go.uber.org/zap"
)

// Lexer segments template source into construct-level tokens. It works on
// runes so token spans are Unicode scalar value offsets. Bracketed
// constructs ({{ }}, { }, [[ ]], @"...") never cross a line break; a
// construct still open at end of line is emitted with Closed=false and the
// parser decides how to degrade it.
type Lexer struct {
	source []rune
	pos    int
	logger *zap.Logger
}

// NewLexer creates a new lexer for the given source
func NewLexer(source string, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: []rune(source),
		pos:    0,
		logger: logger,
	}
}

// Tokenize processes the source and returns a token stream. It cannot
// fail: malformed constructs surface as unclosed tokens or stray markers.
func (l *Lexer) Tokenize() []Token {
	l.logger.Debug(LogMsgTokenizerStart)
	var tokens []Token

	for !l.isAtEnd() {
		switch {
		case l.peek() == CharComment:
			tokens = append(tokens, l.scanComment())
		case l.matchStr(StrSlotOpen):
			tokens = append(tokens, l.scanSlot())
		case l.peek() == CharBraceOpen:
			tokens = append(tokens, l.scanBrace())
		case l.peek() == CharAt:
			tokens = append(tokens, l.scanReference())
		case l.matchStr(StrBlockOpen):
			tokens = append(tokens, l.scanExprBlock())
		default:
			tokens = append(tokens, l.scanText())
		}
	}

	tokens = append(tokens, NewEOFToken(l.pos))
	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, len(tokens)))
	return tokens
}

// scanComment scans '#' through end of line, newline excluded
func (l *Lexer) scanComment() Token {
	start := l.pos
	l.advance() // consume '#'
	for !l.isAtEnd() && l.peek() != CharNewline {
		l.advance()
	}
	return NewCommentToken(l.slice(start+1, l.pos), Span{Start: start, End: l.pos})
}

// scanSlot scans a {{ ... }} construct
func (l *Lexer) scanSlot() Token {
	start := l.pos
	l.advanceN(2) // consume {{
	innerStart := l.pos

	for !l.isAtEnd() && l.peek() != CharNewline {
		if l.matchStr(StrSlotClose) {
			inner := l.slice(innerStart, l.pos)
			l.advanceN(2)
			return NewSlotToken(inner, Span{Start: start, End: l.pos}, true)
		}
		l.advance()
	}
	return NewSlotToken(l.slice(innerStart, l.pos), Span{Start: start, End: l.pos}, false)
}

// scanBrace scans a balanced { ... } construct; nested braces are part of
// the interior text
func (l *Lexer) scanBrace() Token {
	start := l.pos
	l.advance() // consume {
	innerStart := l.pos
	depth := 1

	for !l.isAtEnd() && l.peek() != CharNewline {
		switch l.peek() {
		case CharBraceOpen:
			depth++
		case CharBraceClose:
			depth--
			if depth == 0 {
				inner := l.slice(innerStart, l.pos)
				l.advance()
				return NewBraceToken(inner, Span{Start: start, End: l.pos}, true)
			}
		}
		l.advance()
	}
	return NewBraceToken(l.slice(innerStart, l.pos), Span{Start: start, End: l.pos}, false)
}

// scanReference scans @Name or @"Quoted Name" forms. A '@' that cannot
// begin either form becomes a stray-at token.
func (l *Lexer) scanReference() Token {
	start := l.pos
	l.advance() // consume @

	if l.isAtEnd() {
		return NewStrayAtToken(Span{Start: start, End: l.pos})
	}

	if l.peek() == CharDoubleQuote {
		l.advance() // consume opening quote
		innerStart := l.pos
		for !l.isAtEnd() && l.peek() != CharNewline {
			if l.peek() == CharDoubleQuote {
				inner := l.slice(innerStart, l.pos)
				l.advance()
				return NewReferenceToken(inner, Span{Start: start, End: l.pos}, true, true)
			}
			l.advance()
		}
		return NewReferenceToken(l.slice(innerStart, l.pos), Span{Start: start, End: l.pos}, true, false)
	}

	if isIdentStart(l.peek()) {
		nameStart := l.pos
		l.advance()
		for !l.isAtEnd() && isRefNamePart(l.peek()) {
			l.advance()
		}
		return NewReferenceToken(l.slice(nameStart, l.pos), Span{Start: start, End: l.pos}, false, true)
	}

	return NewStrayAtToken(Span{Start: start, End: l.pos})
}

// scanExprBlock scans a [[ ... ]] construct; ']]' inside a quoted string
// does not close the block
func (l *Lexer) scanExprBlock() Token {
	start := l.pos
	l.advanceN(2) // consume [[
	innerStart := l.pos
	inQuote := false

	for !l.isAtEnd() && l.peek() != CharNewline {
		if !inQuote && l.matchStr(StrBlockClose) {
			inner := l.slice(innerStart, l.pos)
			l.advanceN(2)
			return NewExprBlockToken(inner, Span{Start: start, End: l.pos}, true)
		}
		if l.peek() == CharDoubleQuote {
			inQuote = !inQuote
		}
		l.advance()
	}
	return NewExprBlockToken(l.slice(innerStart, l.pos), Span{Start: start, End: l.pos}, false)
}

// scanText scans literal text until the next construct start
func (l *Lexer) scanText() Token {
	start := l.pos
	for !l.isAtEnd() {
		r := l.peek()
		if r == CharComment || r == CharBraceOpen || r == CharAt {
			break
		}
		if r == CharBracketOpen && l.peekAt(1) == CharBracketOpen {
			break
		}
		l.advance()
	}
	return NewTextToken(l.slice(start, l.pos), Span{Start: start, End: l.pos})
}

// Helper methods

// isAtEnd returns true if we've reached the end of source
func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// peek returns the current rune without advancing
func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

// peekAt returns the rune n positions ahead without advancing
func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.source) {
		return 0
	}
	return l.source[l.pos+n]
}

// advance consumes and returns the current rune
func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	r := l.source[l.pos]
	l.pos++
	return r
}

// advanceN advances by n runes
func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.isAtEnd(); i++ {
		l.advance()
	}
}

// matchStr returns true if the remaining source starts with s
func (l *Lexer) matchStr(s string) bool {
	i := l.pos
	for _, r := range s {
		if i >= len(l.source) || l.source[i] != r {
			return false
		}
		i++
	}
	return true
}

// slice returns the source text between two rune offsets
func (l *Lexer) slice(start, end int) string {
	return string(l.source[start:end])
}
