package internal

// TokenType represents the type of a lexical token
type TokenType string

// Token type constants
const (
	TokenTypeText      TokenType = "TEXT"
	TokenTypeComment   TokenType = "COMMENT"
	TokenTypeSlot      TokenType = "SLOT"
	TokenTypeBrace     TokenType = "BRACE"
	TokenTypeReference TokenType = "REFERENCE"
	TokenTypeExprBlock TokenType = "EXPR_BLOCK"
	TokenTypeStrayAt   TokenType = "STRAY_AT"
	TokenTypeEOF       TokenType = "EOF"
)

// NodeType identifies AST node types
type NodeType int

// Node type constants
const (
	NodeTypeRoot NodeType = iota
	NodeTypeText
	NodeTypeComment
	NodeTypeSlot
	NodeTypeInlineOptions
	NodeTypeReference
	NodeTypeExprBlock
)

// Node type string names for debugging
const (
	NodeTypeNameRoot          = "ROOT"
	NodeTypeNameText          = "TEXT"
	NodeTypeNameComment       = "COMMENT"
	NodeTypeNameSlot          = "SLOT"
	NodeTypeNameInlineOptions = "INLINE_OPTIONS"
	NodeTypeNameReference     = "REFERENCE"
	NodeTypeNameExprBlock     = "EXPR_BLOCK"
)

// String returns the string representation of the node type
func (n NodeType) String() string {
	switch n {
	case NodeTypeRoot:
		return NodeTypeNameRoot
	case NodeTypeText:
		return NodeTypeNameText
	case NodeTypeComment:
		return NodeTypeNameComment
	case NodeTypeSlot:
		return NodeTypeNameSlot
	case NodeTypeInlineOptions:
		return NodeTypeNameInlineOptions
	case NodeTypeReference:
		return NodeTypeNameReference
	case NodeTypeExprBlock:
		return NodeTypeNameExprBlock
	default:
		return NodeTypeNameRoot
	}
}

// Tag-expression term operators
type TagOp int

// Tag operator constants
const (
	TagOpBase TagOp = iota // first term of an expression
	TagOpUnion
	TagOpExclude
)

// Pipeline stage names recognized by the parser
const (
	StageSome         = "some"
	StageExcludeGroup = "excludeGroup"
	StageAssign       = "assign"
)

// Character constants
const (
	CharComment      = '#'
	CharBraceOpen    = '{'
	CharBraceClose   = '}'
	CharBracketOpen  = '['
	CharBracketClose = ']'
	CharPipe         = '|'
	CharAt           = '@'
	CharColon        = ':'
	CharPlus         = '+'
	CharMinus        = '-'
	CharUnderscore   = '_'
	CharHyphen       = '-'
	CharParenOpen    = '('
	CharParenClose   = ')'
	CharComma        = ','
	CharDoubleQuote  = '"'
	CharSpace        = ' '
	CharTab          = '\t'
	CharNewline      = '\n'
	CharCarriageRet  = '\r'
)

// String markers for multi-character delimiters
const (
	StrSlotOpen   = "{{"
	StrSlotClose  = "}}"
	StrBlockOpen  = "[["
	StrBlockClose = "]]"
)

// Debug string display limits
const (
	MaxStringDisplayLength = 40
	TruncatedStringLength  = 37
	TruncationSuffix       = "..."
)

// Log message constants
const (
	LogMsgLexerCreated   = "lexer created"
	LogMsgTokenizerStart = "starting tokenization"
	LogMsgTokenizerEnd   = "tokenization complete"
	LogMsgParserCreated  = "parser created"
	LogMsgParserStart    = "starting parse"
	LogMsgParserEnd      = "parse complete"
	LogMsgParseProblem   = "parse problem recorded"
)

// Log field name constants
const (
	LogFieldSource   = "source_len"
	LogFieldTokens   = "tokens"
	LogFieldNodes    = "nodes"
	LogFieldProblems = "problems"
	LogFieldMessage  = "message"
	LogFieldSpan     = "span_start"
)

// Problem severity levels reported by the parser
type ProblemSeverity string

// Problem severity constants
const (
	ProblemError   ProblemSeverity = "error"
	ProblemWarning ProblemSeverity = "warning"
)

// Problem kind constants, mirrored by the public diagnostic kinds
const (
	ProblemKindSyntax             = "syntax"
	ProblemKindUnknownReference   = "unknown_reference"
	ProblemKindUnknownLibrary     = "unknown_library"
	ProblemKindAmbiguousReference = "ambiguous_reference"
	ProblemKindEmptyGroup         = "empty_group"
	ProblemKindUnboundSlot        = "unbound_slot"
)

// Problem is a span-annotated diagnostic produced during parsing or
// validation. Parsing never fails outright; problems accumulate instead.
type Problem struct {
	Severity   ProblemSeverity
	Kind       string
	Message    string
	Span       Span
	Suggestion string
}

// NewProblem creates an error-severity problem
func NewProblem(kind, message string, span Span) Problem {
	return Problem{
		Severity: ProblemError,
		Kind:     kind,
		Message:  message,
		Span:     span,
	}
}

// NewWarning creates a warning-severity problem
func NewWarning(kind, message string, span Span) Problem {
	return Problem{
		Severity: ProblemWarning,
		Kind:     kind,
		Message:  message,
		Span:     span,
	}
}

// Character classification helpers

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpaceRune(r rune) bool {
	return r == CharSpace || r == CharTab || r == CharNewline || r == CharCarriageRet
}

func isIdentStart(r rune) bool {
	return isLetter(r) || r == CharUnderscore
}

func isIdentPart(r rune) bool {
	return isLetter(r) || isDigit(r) || r == CharUnderscore
}

func isRefNamePart(r rune) bool {
	return isIdentPart(r) || r == CharHyphen
}

// IsSlotIdentifier reports whether s is a valid slot identifier:
// [A-Za-z_][A-Za-z0-9_]*
func IsSlotIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
			continue
		}
		if !isIdentPart(r) {
			return false
		}
	}
	return true
}
