package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Parse problem message constants
const (
	ErrMsgUnclosedSlot      = "unclosed slot placeholder"
	ErrMsgInvalidSlotName   = "invalid slot identifier"
	ErrMsgEmptySlotName     = "slot identifier cannot be empty"
	ErrMsgUnterminatedGroup = "unterminated group construct"
	ErrMsgEmptyAlternative  = "inline options contain an empty alternative"
	ErrMsgEmptyReference    = "group reference is empty"
	ErrMsgEmptyTagTerm      = "tag expression has an empty term"
	ErrMsgUnterminatedRef   = "unterminated quoted reference"
	ErrMsgEmptyRefName      = "reference name cannot be empty"
	ErrMsgEmptyLibQualifier = "library qualifier cannot be empty"
	ErrMsgUnclosedBlock     = "unclosed expression block"
	ErrMsgMalformedOperand  = "malformed expression block operand"
	ErrMsgEmptyStage        = "pipeline stage cannot be empty"
	ErrMsgUnknownStage      = "unknown pipeline stage"
	ErrMsgStageArity        = "wrong argument count for pipeline stage"
	ErrMsgMalformedStage    = "malformed pipeline stage"
	ErrMsgInvalidAssignName = "assign target must be a valid slot identifier"
	ErrMsgStrayAt           = "'@' is not followed by a group name; kept as literal text"
)

// Parser assembles construct tokens into an AST. It never fails: malformed
// constructs degrade to literal text and every issue is recorded as a
// Problem, so editors keep a renderable tree while the user types.
type Parser struct {
	source   []rune
	tokens   []Token
	pos      int
	problems []Problem
	logger   *zap.Logger
}

// NewParser creates a parser over a token stream. The original source is
// needed to degrade malformed constructs back to their raw text.
func NewParser(tokens []Token, source string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldTokens, len(tokens)))
	return &Parser{
		source: []rune(source),
		tokens: tokens,
		pos:    0,
		logger: logger,
	}
}

// ParseSource tokenizes and parses in one step
func ParseSource(source string, logger *zap.Logger) (*RootNode, []Problem) {
	lexer := NewLexer(source, logger)
	parser := NewParser(lexer.Tokenize(), source, logger)
	return parser.Parse()
}

// Parse consumes the token stream and returns the best-effort AST together
// with all problems found
func (p *Parser) Parse() (*RootNode, []Problem) {
	p.logger.Debug(LogMsgParserStart)

	var children []Node
	for !p.isAtEnd() {
		tok := p.current()
		if tok.IsEOF() {
			break
		}
		children = append(children, p.parseToken(tok))
		p.advance()
	}

	root := NewRootNode(children, Span{Start: 0, End: len(p.source)})
	p.logger.Debug(LogMsgParserEnd,
		zap.Int(LogFieldNodes, len(children)),
		zap.Int(LogFieldProblems, len(p.problems)))
	return root, p.problems
}

// parseToken builds the AST node for a single construct token
func (p *Parser) parseToken(tok Token) Node {
	switch tok.Type {
	case TokenTypeComment:
		return NewCommentNode(tok.Value, tok.Span)
	case TokenTypeSlot:
		return p.parseSlot(tok)
	case TokenTypeBrace:
		return p.parseBrace(tok)
	case TokenTypeReference:
		return p.parseReference(tok)
	case TokenTypeExprBlock:
		return p.parseExprBlock(tok)
	case TokenTypeStrayAt:
		p.warn(ErrMsgStrayAt, tok.Span)
		return NewTextNode(tok.Value, tok.Span)
	default:
		return NewTextNode(tok.Value, tok.Span)
	}
}

// parseSlot validates a {{ ... }} token into a SlotNode
func (p *Parser) parseSlot(tok Token) Node {
	if !tok.Closed {
		p.fail(ErrMsgUnclosedSlot, tok.Span)
		return p.rawTextNode(tok.Span)
	}

	name, _ := trimSpan(tok.Value, tok.InnerStart())
	if name == "" {
		p.fail(ErrMsgEmptySlotName, tok.Span)
		return p.rawTextNode(tok.Span)
	}
	if !IsSlotIdentifier(name) {
		p.fail(fmt.Sprintf("%s: %q", ErrMsgInvalidSlotName, name), tok.Span)
		return p.rawTextNode(tok.Span)
	}
	return NewSlotNode(name, tok.Span)
}

// parseBrace decides between inline options and a tag-expression reference
func (p *Parser) parseBrace(tok Token) Node {
	if !tok.Closed {
		p.fail(ErrMsgUnterminatedGroup, tok.Span)
		return p.rawTextNode(tok.Span)
	}

	if hasTopLevelPipe(tok.Value) {
		segs := splitSegments(tok.Value, tok.InnerStart(), CharPipe, false)
		alts := make([]InlineAlternative, 0, len(segs))
		for _, seg := range segs {
			span := Span{Start: seg.Start, End: seg.Start + len([]rune(seg.Text))}
			if seg.Text == "" {
				p.fail(ErrMsgEmptyAlternative, span)
			}
			alts = append(alts, InlineAlternative{Text: seg.Text, Span: span})
		}
		return NewInlineOptionsNode(alts, tok.Span)
	}

	expr, problems := ParseTagExpression(tok.Value, tok.InnerStart())
	if len(problems) > 0 {
		p.problems = append(p.problems, problems...)
		return p.rawTextNode(tok.Span)
	}
	return NewReferenceNode(expr, "", false, false, tok.Span)
}

// parseReference validates an @Name / @"Lib:Name" token
func (p *Parser) parseReference(tok Token) Node {
	if tok.Quoted && !tok.Closed {
		p.fail(ErrMsgUnterminatedRef, tok.Span)
		return p.rawTextNode(tok.Span)
	}

	name := tok.Value
	library := ""
	nameStart := tok.InnerStart()

	if tok.Quoted {
		if idx := strings.IndexRune(name, CharColon); idx >= 0 {
			library = name[:idx]
			name = name[idx+1:]
			if library == "" {
				p.fail(ErrMsgEmptyLibQualifier, tok.Span)
				return p.rawTextNode(tok.Span)
			}
			nameStart += len([]rune(library)) + 1
		}
	}
	if name == "" {
		p.fail(ErrMsgEmptyRefName, tok.Span)
		return p.rawTextNode(tok.Span)
	}

	nameSpan := Span{Start: nameStart, End: nameStart + len([]rune(name))}
	return NewReferenceNode(NewBaseExpr(name, nameSpan), library, true, tok.Quoted, tok.Span)
}

// parseExprBlock parses [[ operand | stage | ... ]]
func (p *Parser) parseExprBlock(tok Token) Node {
	if !tok.Closed {
		p.fail(ErrMsgUnclosedBlock, tok.Span)
		return p.rawTextNode(tok.Span)
	}

	segs := splitSegments(tok.Value, tok.InnerStart(), CharPipe, true)

	operand, operandQuoted, ok := p.parseBlockOperand(segs[0], tok.Span)
	if !ok {
		return p.rawTextNode(tok.Span)
	}

	var stages []Stage
	for _, seg := range segs[1:] {
		stage, problems := parseStage(seg.Text, seg.Start)
		p.problems = append(p.problems, problems...)
		stages = append(stages, stage)
	}

	return NewExprBlockNode(operand, operandQuoted, stages, tok.Span)
}

// parseBlockOperand parses the first segment of an expression block:
// either a quoted literal or a bare tag expression
func (p *Parser) parseBlockOperand(seg segment, blockSpan Span) (TagExpr, bool, bool) {
	text, span := trimSpan(seg.Text, seg.Start)
	if text == "" {
		p.fail(ErrMsgEmptyReference, blockSpan)
		return TagExpr{}, false, false
	}

	runes := []rune(text)
	if runes[0] == CharDoubleQuote {
		if len(runes) < 2 || runes[len(runes)-1] != CharDoubleQuote {
			p.fail(ErrMsgMalformedOperand, span)
			return TagExpr{}, false, false
		}
		content := string(runes[1 : len(runes)-1])
		if content == "" {
			p.fail(ErrMsgEmptyRefName, span)
			return TagExpr{}, false, false
		}
		contentSpan := Span{Start: span.Start + 1, End: span.End - 1}
		return NewBaseExpr(content, contentSpan), true, true
	}

	expr, problems := ParseTagExpression(seg.Text, seg.Start)
	if len(problems) > 0 {
		p.problems = append(p.problems, problems...)
		return TagExpr{}, false, false
	}
	return expr, false, true
}

// Helper methods

// current returns the token at the current position
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return NewEOFToken(len(p.source))
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// isAtEnd returns true when the token stream is exhausted
func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens)
}

// rawTextNode degrades a span back to its literal source text
func (p *Parser) rawTextNode(span Span) Node {
	return NewTextNode(string(p.source[span.Start:span.End]), span)
}

// fail records an error-severity syntax problem
func (p *Parser) fail(message string, span Span) {
	p.logger.Warn(LogMsgParseProblem,
		zap.String(LogFieldMessage, message),
		zap.Int(LogFieldSpan, span.Start))
	p.problems = append(p.problems, NewProblem(ProblemKindSyntax, message, span))
}

// warn records a warning-severity syntax problem
func (p *Parser) warn(message string, span Span) {
	p.logger.Warn(LogMsgParseProblem,
		zap.String(LogFieldMessage, message),
		zap.Int(LogFieldSpan, span.Start))
	p.problems = append(p.problems, NewWarning(ProblemKindSyntax, message, span))
}
