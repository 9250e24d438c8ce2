package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLexer_Tokenize_Text(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "empty string",
			input: "",
			expected: []Token{
				{Type: TokenTypeEOF, Span: Span{Start: 0, End: 0}},
			},
		},
		{
			name:  "plain text",
			input: "Hello, world!",
			expected: []Token{
				{Type: TokenTypeText, Value: "Hello, world!", Span: Span{Start: 0, End: 13}},
				{Type: TokenTypeEOF, Span: Span{Start: 13, End: 13}},
			},
		},
		{
			name:  "multiline text",
			input: "Line 1\nLine 2",
			expected: []Token{
				{Type: TokenTypeText, Value: "Line 1\nLine 2", Span: Span{Start: 0, End: 13}},
				{Type: TokenTypeEOF, Span: Span{Start: 13, End: 13}},
			},
		},
		{
			name:  "single bracket is text",
			input: "[x] checklist",
			expected: []Token{
				{Type: TokenTypeText, Value: "[x] checklist", Span: Span{Start: 0, End: 13}},
				{Type: TokenTypeEOF, Span: Span{Start: 13, End: 13}},
			},
		},
		{
			name:  "closing brace alone is text",
			input: "a }} b",
			expected: []Token{
				{Type: TokenTypeText, Value: "a }} b", Span: Span{Start: 0, End: 6}},
				{Type: TokenTypeEOF, Span: Span{Start: 6, End: 6}},
			},
		},
		{
			name:  "unicode text offsets count runes",
			input: "héllo {{x}}",
			expected: []Token{
				{Type: TokenTypeText, Value: "héllo ", Span: Span{Start: 0, End: 6}},
				{Type: TokenTypeSlot, Value: "x", Span: Span{Start: 6, End: 11}, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 11, End: 11}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input, zap.NewNop())
			assertTokenStream(t, tt.expected, lexer.Tokenize())
		})
	}
}

func TestLexer_Tokenize_Comments(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "comment to end of line",
			input: "pre # note\npost",
			expected: []Token{
				{Type: TokenTypeText, Value: "pre ", Span: Span{Start: 0, End: 4}},
				{Type: TokenTypeComment, Value: " note", Span: Span{Start: 4, End: 10}},
				{Type: TokenTypeText, Value: "\npost", Span: Span{Start: 10, End: 15}},
				{Type: TokenTypeEOF, Span: Span{Start: 15, End: 15}},
			},
		},
		{
			name:  "comment at end of input",
			input: "# only",
			expected: []Token{
				{Type: TokenTypeComment, Value: " only", Span: Span{Start: 0, End: 6}},
				{Type: TokenTypeEOF, Span: Span{Start: 6, End: 6}},
			},
		},
		{
			name:  "empty comment",
			input: "#\nx",
			expected: []Token{
				{Type: TokenTypeComment, Value: "", Span: Span{Start: 0, End: 1}},
				{Type: TokenTypeText, Value: "\nx", Span: Span{Start: 1, End: 3}},
				{Type: TokenTypeEOF, Span: Span{Start: 3, End: 3}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input, zap.NewNop())
			assertTokenStream(t, tt.expected, lexer.Tokenize())
		})
	}
}

func TestLexer_Tokenize_Slots(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "closed slot",
			input: "{{ name }}",
			expected: []Token{
				{Type: TokenTypeSlot, Value: " name ", Span: Span{Start: 0, End: 10}, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 10, End: 10}},
			},
		},
		{
			name:  "unclosed slot runs to end of input",
			input: "{{ name",
			expected: []Token{
				{Type: TokenTypeSlot, Value: " name", Span: Span{Start: 0, End: 7}, Closed: false},
				{Type: TokenTypeEOF, Span: Span{Start: 7, End: 7}},
			},
		},
		{
			name:  "newline cuts an open slot",
			input: "{{ na\nme }}",
			expected: []Token{
				{Type: TokenTypeSlot, Value: " na", Span: Span{Start: 0, End: 5}, Closed: false},
				{Type: TokenTypeText, Value: "\nme }}", Span: Span{Start: 5, End: 11}},
				{Type: TokenTypeEOF, Span: Span{Start: 11, End: 11}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input, zap.NewNop())
			assertTokenStream(t, tt.expected, lexer.Tokenize())
		})
	}
}

func TestLexer_Tokenize_Braces(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "inline options",
			input: "{red|blue}",
			expected: []Token{
				{Type: TokenTypeBrace, Value: "red|blue", Span: Span{Start: 0, End: 10}, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 10, End: 10}},
			},
		},
		{
			name:  "tag reference",
			input: "{Hair Color}",
			expected: []Token{
				{Type: TokenTypeBrace, Value: "Hair Color", Span: Span{Start: 0, End: 12}, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 12, End: 12}},
			},
		},
		{
			name:  "unterminated brace",
			input: "{Color",
			expected: []Token{
				{Type: TokenTypeBrace, Value: "Color", Span: Span{Start: 0, End: 6}, Closed: false},
				{Type: TokenTypeEOF, Span: Span{Start: 6, End: 6}},
			},
		},
		{
			name:  "nested braces stay interior",
			input: "{a {b} c}",
			expected: []Token{
				{Type: TokenTypeBrace, Value: "a {b} c", Span: Span{Start: 0, End: 9}, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 9, End: 9}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input, zap.NewNop())
			assertTokenStream(t, tt.expected, lexer.Tokenize())
		})
	}
}

func TestLexer_Tokenize_References(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "bare reference",
			input: "@Hair",
			expected: []Token{
				{Type: TokenTypeReference, Value: "Hair", Span: Span{Start: 0, End: 5}, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 5, End: 5}},
			},
		},
		{
			name:  "bare reference with hyphen",
			input: "@hair-color x",
			expected: []Token{
				{Type: TokenTypeReference, Value: "hair-color", Span: Span{Start: 0, End: 11}, Closed: true},
				{Type: TokenTypeText, Value: " x", Span: Span{Start: 11, End: 13}},
				{Type: TokenTypeEOF, Span: Span{Start: 13, End: 13}},
			},
		},
		{
			name:  "quoted reference",
			input: `@"Hair Color"`,
			expected: []Token{
				{Type: TokenTypeReference, Value: "Hair Color", Span: Span{Start: 0, End: 13}, Quoted: true, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 13, End: 13}},
			},
		},
		{
			name:  "quoted reference with library qualifier",
			input: `@"Lib:Group"`,
			expected: []Token{
				{Type: TokenTypeReference, Value: "Lib:Group", Span: Span{Start: 0, End: 12}, Quoted: true, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 12, End: 12}},
			},
		},
		{
			name:  "unterminated quoted reference",
			input: `@"Untermina`,
			expected: []Token{
				{Type: TokenTypeReference, Value: "Untermina", Span: Span{Start: 0, End: 11}, Quoted: true, Closed: false},
				{Type: TokenTypeEOF, Span: Span{Start: 11, End: 11}},
			},
		},
		{
			name:  "at sign before whitespace is stray",
			input: "email me @ home",
			expected: []Token{
				{Type: TokenTypeText, Value: "email me ", Span: Span{Start: 0, End: 9}},
				{Type: TokenTypeStrayAt, Value: "@", Span: Span{Start: 9, End: 10}},
				{Type: TokenTypeText, Value: " home", Span: Span{Start: 10, End: 15}},
				{Type: TokenTypeEOF, Span: Span{Start: 15, End: 15}},
			},
		},
		{
			name:  "at sign at end of input is stray",
			input: "ping @",
			expected: []Token{
				{Type: TokenTypeText, Value: "ping ", Span: Span{Start: 0, End: 5}},
				{Type: TokenTypeStrayAt, Value: "@", Span: Span{Start: 5, End: 6}},
				{Type: TokenTypeEOF, Span: Span{Start: 6, End: 6}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input, zap.NewNop())
			assertTokenStream(t, tt.expected, lexer.Tokenize())
		})
	}
}

func TestLexer_Tokenize_ExprBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "block with stage",
			input: `[[ "Tag" | some ]]`,
			expected: []Token{
				{Type: TokenTypeExprBlock, Value: ` "Tag" | some `, Span: Span{Start: 0, End: 18}, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 18, End: 18}},
			},
		},
		{
			name:  "closing marker inside quotes is interior",
			input: `[[ "a]]b" | some ]]`,
			expected: []Token{
				{Type: TokenTypeExprBlock, Value: ` "a]]b" | some `, Span: Span{Start: 0, End: 19}, Closed: true},
				{Type: TokenTypeEOF, Span: Span{Start: 19, End: 19}},
			},
		},
		{
			name:  "unclosed block",
			input: `[[ "Tag" | some`,
			expected: []Token{
				{Type: TokenTypeExprBlock, Value: ` "Tag" | some`, Span: Span{Start: 0, End: 15}, Closed: false},
				{Type: TokenTypeEOF, Span: Span{Start: 15, End: 15}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input, zap.NewNop())
			assertTokenStream(t, tt.expected, lexer.Tokenize())
		})
	}
}

func TestLexer_Tokenize_Mixed(t *testing.T) {
	input := "{{name}} and {a|b} @Ref # done"
	expected := []Token{
		{Type: TokenTypeSlot, Value: "name", Span: Span{Start: 0, End: 8}, Closed: true},
		{Type: TokenTypeText, Value: " and ", Span: Span{Start: 8, End: 13}},
		{Type: TokenTypeBrace, Value: "a|b", Span: Span{Start: 13, End: 18}, Closed: true},
		{Type: TokenTypeText, Value: " ", Span: Span{Start: 18, End: 19}},
		{Type: TokenTypeReference, Value: "Ref", Span: Span{Start: 19, End: 23}, Closed: true},
		{Type: TokenTypeText, Value: " ", Span: Span{Start: 23, End: 24}},
		{Type: TokenTypeComment, Value: " done", Span: Span{Start: 24, End: 30}},
		{Type: TokenTypeEOF, Span: Span{Start: 30, End: 30}},
	}

	lexer := NewLexer(input, zap.NewNop())
	assertTokenStream(t, expected, lexer.Tokenize())
}

func TestSpan_Contains(t *testing.T) {
	span := Span{Start: 3, End: 8}

	assert.False(t, span.Contains(3), "cursor before first rune is outside")
	assert.True(t, span.Contains(4))
	assert.True(t, span.Contains(8), "cursor just past the span still counts")
	assert.False(t, span.Contains(9))
}

func assertTokenStream(t *testing.T, expected, actual []Token) {
	t.Helper()
	require.Equal(t, len(expected), len(actual), "token count mismatch: %v", actual)
	for i, exp := range expected {
		act := actual[i]
		assert.Equal(t, exp.Type, act.Type, "token %d type mismatch", i)
		assert.Equal(t, exp.Value, act.Value, "token %d value mismatch", i)
		assert.Equal(t, exp.Span, act.Span, "token %d span mismatch", i)
		assert.Equal(t, exp.Closed, act.Closed, "token %d closed flag mismatch", i)
		assert.Equal(t, exp.Quoted, act.Quoted, "token %d quoted flag mismatch", i)
	}
}
