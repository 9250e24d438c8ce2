package internal

import (
	"fmt"
	"strings"
)

// Node is the interface all AST nodes implement
type Node interface {
	// Type returns the node type identifier
	Type() NodeType
	// Span returns the node's source span in rune offsets
	Span() Span
	// String returns a human-readable representation for debugging
	String() string
	// Source returns the canonical source form of the node
	Source() string
}

// RootNode is the top-level container for an AST
type RootNode struct {
	Children []Node
	span     Span
}

// Type returns NodeTypeRoot
func (n *RootNode) Type() NodeType {
	return NodeTypeRoot
}

// Span returns the span of the whole source
func (n *RootNode) Span() Span {
	return n.span
}

// String returns a string representation of the root node
func (n *RootNode) String() string {
	var sb strings.Builder
	sb.WriteString("RootNode{\n")
	for i, child := range n.Children {
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", i, child.String()))
	}
	sb.WriteString("}")
	return sb.String()
}

// Source reconstructs the canonical source of the whole template
func (n *RootNode) Source() string {
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.Source())
	}
	return sb.String()
}

// NewRootNode creates a new root node
func NewRootNode(children []Node, span Span) *RootNode {
	return &RootNode{
		Children: children,
		span:     span,
	}
}

// TextNode represents literal text copied verbatim to output
type TextNode struct {
	span    Span
	Content string
}

// Type returns NodeTypeText
func (n *TextNode) Type() NodeType {
	return NodeTypeText
}

// Span returns the source span
func (n *TextNode) Span() Span {
	return n.span
}

// String returns a string representation
func (n *TextNode) String() string {
	content := n.Content
	if len(content) > MaxStringDisplayLength {
		content = content[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("TextNode{%q @ %s}", content, n.span)
}

// Source returns the literal text
func (n *TextNode) Source() string {
	return n.Content
}

// NewTextNode creates a new text node
func NewTextNode(content string, span Span) *TextNode {
	return &TextNode{
		span:    span,
		Content: content,
	}
}

// CommentNode represents a '#' comment running to end of line. Comments
// emit nothing when rendered but keep their span for highlighting.
type CommentNode struct {
	span    Span
	Content string // text after '#', verbatim
}

// Type returns NodeTypeComment
func (n *CommentNode) Type() NodeType {
	return NodeTypeComment
}

// Span returns the source span
func (n *CommentNode) Span() Span {
	return n.span
}

// String returns a string representation
func (n *CommentNode) String() string {
	return fmt.Sprintf("CommentNode{%q @ %s}", n.Content, n.span)
}

// Source returns the comment including its '#'
func (n *CommentNode) Source() string {
	return string(CharComment) + n.Content
}

// NewCommentNode creates a new comment node
func NewCommentNode(content string, span Span) *CommentNode {
	return &CommentNode{
		span:    span,
		Content: content,
	}
}

// SlotNode represents a {{ name }} placeholder filled at render time
type SlotNode struct {
	span Span
	Name string
}

// Type returns NodeTypeSlot
func (n *SlotNode) Type() NodeType {
	return NodeTypeSlot
}

// Span returns the source span
func (n *SlotNode) Span() Span {
	return n.span
}

// String returns a string representation
func (n *SlotNode) String() string {
	return fmt.Sprintf("SlotNode{%s @ %s}", n.Name, n.span)
}

// Source returns the canonical slot form
func (n *SlotNode) Source() string {
	return StrSlotOpen + " " + n.Name + " " + StrSlotClose
}

// NewSlotNode creates a new slot node
func NewSlotNode(name string, span Span) *SlotNode {
	return &SlotNode{
		span: span,
		Name: name,
	}
}

// InlineAlternative is one |-delimited literal inside an inline options
// construct, kept verbatim
type InlineAlternative struct {
	Text string
	Span Span
}

// InlineOptionsNode represents {a|b|c}: one alternative is drawn at render
type InlineOptionsNode struct {
	span         Span
	Alternatives []InlineAlternative
}

// Type returns NodeTypeInlineOptions
func (n *InlineOptionsNode) Type() NodeType {
	return NodeTypeInlineOptions
}

// Span returns the source span
func (n *InlineOptionsNode) Span() Span {
	return n.span
}

// String returns a string representation
func (n *InlineOptionsNode) String() string {
	return fmt.Sprintf("InlineOptionsNode{%d alternatives @ %s}", len(n.Alternatives), n.span)
}

// Source returns the canonical inline options form
func (n *InlineOptionsNode) Source() string {
	texts := make([]string, len(n.Alternatives))
	for i, alt := range n.Alternatives {
		texts[i] = alt.Text
	}
	return string(CharBraceOpen) + strings.Join(texts, string(CharPipe)) + string(CharBraceClose)
}

// NewInlineOptionsNode creates a new inline options node
func NewInlineOptionsNode(alternatives []InlineAlternative, span Span) *InlineOptionsNode {
	return &InlineOptionsNode{
		span:         span,
		Alternatives: alternatives,
	}
}

// TagTerm is one operand of a tag expression
type TagTerm struct {
	Op   TagOp
	Name string
	Span Span
}

// TagExpr is a left-associative chain of union/exclusion terms over the
// shared group-name/tag namespace
type TagExpr struct {
	Terms []TagTerm
}

// IsEmpty reports whether the expression has no terms
func (e TagExpr) IsEmpty() bool {
	return len(e.Terms) == 0
}

// Base returns the first term's name, the common single-tag case
func (e TagExpr) Base() string {
	if len(e.Terms) == 0 {
		return ""
	}
	return e.Terms[0].Name
}

// Span returns the source range from the first term to the last
func (e TagExpr) Span() Span {
	if len(e.Terms) == 0 {
		return Span{}
	}
	return Span{Start: e.Terms[0].Span.Start, End: e.Terms[len(e.Terms)-1].Span.End}
}

// String returns the canonical expression text, e.g. "Hair + Eyes - anime"
func (e TagExpr) String() string {
	var sb strings.Builder
	for i, term := range e.Terms {
		if i > 0 {
			if term.Op == TagOpExclude {
				sb.WriteString(" - ")
			} else {
				sb.WriteString(" + ")
			}
		}
		sb.WriteString(term.Name)
	}
	return sb.String()
}

// NewBaseExpr creates a single-term expression for a plain name reference
func NewBaseExpr(name string, span Span) TagExpr {
	return TagExpr{Terms: []TagTerm{{Op: TagOpBase, Name: name, Span: span}}}
}

// ReferenceNode represents a group reference, either the @Name form or the
// {TagExpr} form. Library is the optional qualifier from @"Lib:Name".
type ReferenceNode struct {
	span       Span
	Expr       TagExpr
	Library    string
	AtForm     bool
	QuotedForm bool
}

// Type returns NodeTypeReference
func (n *ReferenceNode) Type() NodeType {
	return NodeTypeReference
}

// Span returns the source span
func (n *ReferenceNode) Span() Span {
	return n.span
}

// String returns a string representation
func (n *ReferenceNode) String() string {
	if n.Library != "" {
		return fmt.Sprintf("ReferenceNode{%s:%s @ %s}", n.Library, n.Expr.String(), n.span)
	}
	return fmt.Sprintf("ReferenceNode{%s @ %s}", n.Expr.String(), n.span)
}

// Source returns the canonical reference form
func (n *ReferenceNode) Source() string {
	if !n.AtForm {
		return string(CharBraceOpen) + n.Expr.String() + string(CharBraceClose)
	}
	name := n.Expr.Base()
	if n.Library != "" {
		return fmt.Sprintf("@%q", n.Library+string(CharColon)+name)
	}
	if n.QuotedForm || NeedsRefQuoting(name) {
		return fmt.Sprintf("@%q", name)
	}
	return string(CharAt) + name
}

// NewReferenceNode creates a new group reference node
func NewReferenceNode(expr TagExpr, library string, atForm, quotedForm bool, span Span) *ReferenceNode {
	return &ReferenceNode{
		span:       span,
		Expr:       expr,
		Library:    library,
		AtForm:     atForm,
		QuotedForm: quotedForm,
	}
}

// NeedsRefQuoting reports whether a name cannot be written in the bare
// @Name form
func NeedsRefQuoting(name string) bool {
	if name == "" {
		return true
	}
	for i, r := range name {
		if i == 0 && !isIdentStart(r) {
			return true
		}
		if i > 0 && !isRefNamePart(r) {
			return true
		}
	}
	return false
}

// Stage is one pipeline step inside an expression block
type Stage struct {
	Name string
	Args []string
	Span Span
}

// Source returns the canonical stage form
func (s Stage) Source() string {
	if len(s.Args) == 0 {
		return s.Name
	}
	quoted := make([]string, len(s.Args))
	for i, arg := range s.Args {
		quoted[i] = fmt.Sprintf("%q", arg)
	}
	return s.Name + string(CharParenOpen) + strings.Join(quoted, ", ") + string(CharParenClose)
}

// ExprBlockNode represents [[ operand | stage | ... ]]
type ExprBlockNode struct {
	span          Span
	Operand       TagExpr
	OperandQuoted bool
	Stages        []Stage
}

// Type returns NodeTypeExprBlock
func (n *ExprBlockNode) Type() NodeType {
	return NodeTypeExprBlock
}

// Span returns the source span
func (n *ExprBlockNode) Span() Span {
	return n.span
}

// String returns a string representation
func (n *ExprBlockNode) String() string {
	return fmt.Sprintf("ExprBlockNode{%s, %d stages @ %s}", n.Operand.String(), len(n.Stages), n.span)
}

// Source returns the canonical expression block form
func (n *ExprBlockNode) Source() string {
	var sb strings.Builder
	sb.WriteString(StrBlockOpen + " ")
	if n.OperandQuoted {
		sb.WriteString(fmt.Sprintf("%q", n.Operand.Base()))
	} else {
		sb.WriteString(n.Operand.String())
	}
	for _, stage := range n.Stages {
		sb.WriteString(" " + string(CharPipe) + " ")
		sb.WriteString(stage.Source())
	}
	sb.WriteString(" " + StrBlockClose)
	return sb.String()
}

// NewExprBlockNode creates a new expression block node
func NewExprBlockNode(operand TagExpr, operandQuoted bool, stages []Stage, span Span) *ExprBlockNode {
	return &ExprBlockNode{
		span:          span,
		Operand:       operand,
		OperandQuoted: operandQuoted,
		Stages:        stages,
	}
}
