package internal

import (
	"fmt"
)

// segment is a |-delimited piece of a construct interior, with the rune
// offset where it starts in the full source
type segment struct {
	Text  string
	Start int
}

// splitSegments splits interior text on sep at brace depth zero. When
// respectQuotes is set, separators inside double-quoted strings are
// ignored. Always returns at least one segment.
func splitSegments(text string, base int, sep rune, respectQuotes bool) []segment {
	runes := []rune(text)
	var segs []segment
	segStart := 0
	depth := 0
	inQuote := false

	for i, r := range runes {
		if respectQuotes && r == CharDoubleQuote {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}
		switch r {
		case CharBraceOpen:
			depth++
		case CharBraceClose:
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				segs = append(segs, segment{Text: string(runes[segStart:i]), Start: base + segStart})
				segStart = i + 1
			}
		}
	}
	segs = append(segs, segment{Text: string(runes[segStart:]), Start: base + segStart})
	return segs
}

// trimSpan trims surrounding whitespace and returns the trimmed text with
// its absolute span
func trimSpan(text string, base int) (string, Span) {
	runes := []rune(text)
	start := 0
	for start < len(runes) && isSpaceRune(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && isSpaceRune(runes[end-1]) {
		end--
	}
	return string(runes[start:end]), Span{Start: base + start, End: base + end}
}

// ParseTagExpression parses interior text like "Hair + Eyes - anime" into
// a TagExpr. The `+` and `-` operators must be surrounded by whitespace so
// hyphenated tag names (e.g. "hair-color") stay intact. Terms keep their
// surrounding text verbatim apart from whitespace trimming.
func ParseTagExpression(text string, base int) (TagExpr, []Problem) {
	runes := []rune(text)
	var expr TagExpr
	var problems []Problem

	fullSpan := Span{Start: base, End: base + len(runes)}
	termStart := 0
	op := TagOpBase

	flush := func(end int, nextOp TagOp) {
		raw := string(runes[termStart:end])
		name, span := trimSpan(raw, base+termStart)
		if name == "" {
			if len(expr.Terms) == 0 && nextOp == TagOpBase && end == len(runes) {
				problems = append(problems, NewProblem(ProblemKindSyntax, ErrMsgEmptyReference, fullSpan))
			} else {
				problems = append(problems, NewProblem(ProblemKindSyntax, ErrMsgEmptyTagTerm, span))
			}
		} else {
			expr.Terms = append(expr.Terms, TagTerm{Op: op, Name: name, Span: span})
		}
		op = nextOp
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if (r == CharPlus || r == CharMinus) &&
			i > 0 && isSpaceRune(runes[i-1]) &&
			i+1 < len(runes) && isSpaceRune(runes[i+1]) {
			nextOp := TagOpUnion
			if r == CharMinus {
				nextOp = TagOpExclude
			}
			flush(i, nextOp)
			termStart = i + 1
		}
	}
	flush(len(runes), TagOpBase)

	return expr, problems
}

// stageArity maps recognized stage names to their required argument count
var stageArity = map[string]int{
	StageSome:         0,
	StageExcludeGroup: 1,
	StageAssign:       1,
}

// parseStage parses one pipeline stage like `assign("name")` from interior
// text. The stage is returned even when problems are found so the AST
// stays best-effort.
func parseStage(text string, base int) (Stage, []Problem) {
	name, span := trimSpan(text, base)
	stage := Stage{Span: span}
	var problems []Problem

	if name == "" {
		problems = append(problems, NewProblem(ProblemKindSyntax, ErrMsgEmptyStage, span))
		return stage, problems
	}

	runes := []rune(name)
	i := 0
	for i < len(runes) && isIdentPart(runes[i]) {
		i++
	}
	stage.Name = string(runes[:i])
	if stage.Name == "" {
		problems = append(problems, NewProblem(ProblemKindSyntax, ErrMsgMalformedStage, span))
		return stage, problems
	}

	rest := runes[i:]
	if len(rest) > 0 {
		args, ok := parseStageArgs(rest)
		if !ok {
			problems = append(problems, NewProblem(ProblemKindSyntax,
				fmt.Sprintf("%s: %q", ErrMsgMalformedStage, stage.Name), span))
			return stage, problems
		}
		stage.Args = args
	}

	arity, known := stageArity[stage.Name]
	if !known {
		problems = append(problems, NewProblem(ProblemKindSyntax,
			fmt.Sprintf("%s: %q", ErrMsgUnknownStage, stage.Name), span))
		return stage, problems
	}
	if len(stage.Args) != arity {
		problems = append(problems, NewProblem(ProblemKindSyntax,
			fmt.Sprintf("%s: %q expects %d", ErrMsgStageArity, stage.Name, arity), span))
		return stage, problems
	}
	if stage.Name == StageAssign && !IsSlotIdentifier(stage.Args[0]) {
		problems = append(problems, NewProblem(ProblemKindSyntax, ErrMsgInvalidAssignName, span))
	}

	return stage, problems
}

// parseStageArgs parses `("a", "b")` into its quoted argument list
func parseStageArgs(runes []rune) ([]string, bool) {
	i := 0
	skipWS := func() {
		for i < len(runes) && isSpaceRune(runes[i]) {
			i++
		}
	}

	skipWS()
	if i >= len(runes) || runes[i] != CharParenOpen {
		return nil, false
	}
	i++

	var args []string
	skipWS()
	if i < len(runes) && runes[i] == CharParenClose {
		i++ // empty argument list
	} else {
		for {
			skipWS()
			if i >= len(runes) || runes[i] != CharDoubleQuote {
				return nil, false
			}
			i++
			argStart := i
			for i < len(runes) && runes[i] != CharDoubleQuote {
				i++
			}
			if i >= len(runes) {
				return nil, false
			}
			args = append(args, string(runes[argStart:i]))
			i++ // closing quote
			skipWS()
			if i < len(runes) && runes[i] == CharComma {
				i++
				continue
			}
			if i < len(runes) && runes[i] == CharParenClose {
				i++
				break
			}
			return nil, false
		}
	}

	skipWS()
	if i != len(runes) {
		return nil, false
	}
	return args, true
}

// hasTopLevelPipe reports whether interior text contains a '|' at brace
// depth zero, which distinguishes inline options from a tag expression
func hasTopLevelPipe(text string) bool {
	depth := 0
	for _, r := range text {
		switch r {
		case CharBraceOpen:
			depth++
		case CharBraceClose:
			if depth > 0 {
				depth--
			}
		case CharPipe:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

