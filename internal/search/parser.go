package search

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokEnd tokenKind = iota
	tokWord
	tokQuoted
	tokRegex
	tokColumns // c:>3, c:2..5, c:1,4
	tokOr
	tokNot
	tokOpen
	tokClose
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// ParseError reports where in the query parsing failed.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Msg, e.Pos+1)
}

func errorAt(pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// columnPrefix starts a column number selector.
const columnPrefix = "c:"

// lex splits a query into tokens. Quotes and regexes must be closed.
func lex(query string) ([]token, error) {
	var tokens []token
	i := 0
	for {
		for i < len(query) && (query[i] == ' ' || query[i] == '\t') {
			i++
		}
		if i == len(query) {
			return append(tokens, token{kind: tokEnd, pos: i}), nil
		}

		start := i
		switch query[i] {
		case '(':
			tokens = append(tokens, token{tokOpen, "(", start})
			i++
		case ')':
			tokens = append(tokens, token{tokClose, ")", start})
			i++
		case '|':
			tokens = append(tokens, token{tokOr, "|", start})
			i++
		case '-':
			tokens = append(tokens, token{tokNot, "-", start})
			i++
		case '"':
			end := strings.IndexByte(query[i+1:], '"')
			if end < 0 {
				return nil, errorAt(start, "unclosed quote")
			}
			tokens = append(tokens, token{tokQuoted, query[i+1 : i+1+end], start})
			i += end + 2
		case '/':
			pattern, n, ok := scanRegex(query[i+1:])
			if !ok {
				return nil, errorAt(start, "unclosed regex")
			}
			tokens = append(tokens, token{tokRegex, pattern, start})
			i += n + 1
		default:
			for i < len(query) && !strings.ContainsRune(" \t|()", rune(query[i])) {
				i++
			}
			word := query[start:i]
			if selector, ok := strings.CutPrefix(word, columnPrefix); ok {
				tokens = append(tokens, token{tokColumns, selector, start})
			} else {
				tokens = append(tokens, token{tokWord, word, start})
			}
		}
	}
}

// scanRegex reads a pattern up to the closing slash, unescaping \/. It
// returns the pattern and the number of bytes used, the slash included.
func scanRegex(s string) (string, int, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '/':
			b.WriteByte('/')
			i++
		case s[i] == '/':
			return b.String(), i + 1, true
		default:
			b.WriteByte(s[i])
		}
	}
	return "", 0, false
}

// parser is a recursive descent parser over the tokens of a query:
//
//	query := or
//	or    := and { "|" and }
//	and   := unary { unary }
//	unary := "-" unary | term
//	term  := word | "quoted" | /regex/ | c:selector | "(" or ")"
type parser struct {
	tokens []token
	pos    int
}

// ParseQuery parses a column query. An empty query matches every column.
func ParseQuery(query string) (FilterExpr, error) {
	tokens, err := lex(query)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if p.peek().kind == tokEnd {
		return AlwaysMatchExpr{}, nil
	}

	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEnd {
		return nil, errorAt(tok.pos, "unexpected %q", tok.text)
	}
	return expr, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEnd {
		p.pos++
	}
	return tok
}

func (p *parser) or() (FilterExpr, error) {
	expr, err := p.and()
	for err == nil && p.peek().kind == tokOr {
		p.advance()
		var right FilterExpr
		if right, err = p.and(); err == nil {
			expr = NewOrExpr(expr, right)
		}
	}
	return expr, err
}

func (p *parser) and() (FilterExpr, error) {
	expr, err := p.unary()
	for err == nil {
		switch p.peek().kind {
		case tokEnd, tokOr, tokClose:
			return expr, nil
		}
		var right FilterExpr
		if right, err = p.unary(); err == nil {
			expr = NewAndExpr(expr, right)
		}
	}
	return nil, err
}

func (p *parser) unary() (FilterExpr, error) {
	if p.peek().kind != tokNot {
		return p.term()
	}
	p.advance()
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	return NewNotExpr(expr), nil
}

func (p *parser) term() (FilterExpr, error) {
	tok := p.advance()
	switch tok.kind {
	case tokWord:
		return NewFuzzyExpr(tok.text), nil
	case tokQuoted:
		return NewTextExpr(tok.text), nil
	case tokRegex:
		expr, err := NewRegexExpr(tok.text)
		if err != nil {
			return nil, errorAt(tok.pos, "%v", err)
		}
		return expr, nil
	case tokColumns:
		return parseColumnSelector(tok)
	case tokOpen:
		expr, err := p.or()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.kind != tokClose {
			return nil, errorAt(tok.pos, "missing closing parenthesis")
		}
		return expr, nil
	case tokEnd:
		return nil, errorAt(tok.pos, "unexpected end of query")
	default:
		return nil, errorAt(tok.pos, "unexpected %q", tok.text)
	}
}

// comparisons is ordered so two character operators are tried first.
var comparisons = []ComparisonOp{OpNotEqual, OpGreaterEqual, OpLessEqual, OpGreater, OpLess, OpEqual}

// parseColumnSelector parses what follows c:. Column numbers are model
// indexes, so they follow the data and not the on-screen order:
//
//	c:3      column 3
//	c:>=3    a comparison
//	c:2..5   an inclusive range
//	c:1,4,7  a list of the above
func parseColumnSelector(tok token) (FilterExpr, error) {
	if tok.text == "" {
		return nil, errorAt(tok.pos, "missing column number")
	}

	var expr FilterExpr
	for part := range strings.SplitSeq(tok.text, ",") {
		next, err := parseColumnPart(part)
		if err != nil {
			return nil, errorAt(tok.pos, "%v", err)
		}
		if expr == nil {
			expr = next
		} else {
			expr = NewOrExpr(expr, next)
		}
	}
	return expr, nil
}

func parseColumnPart(part string) (FilterExpr, error) {
	if from, to, ok := strings.Cut(part, ".."); ok {
		lo, err := columnNumber(from)
		if err != nil {
			return nil, err
		}
		hi, err := columnNumber(to)
		if err != nil {
			return nil, err
		}
		return NewColumnRange(lo, hi), nil
	}

	op := OpEqual
	for _, candidate := range comparisons {
		if rest, ok := strings.CutPrefix(part, string(candidate)); ok {
			op, part = candidate, rest
			break
		}
	}
	n, err := columnNumber(part)
	if err != nil {
		return nil, err
	}
	return NewIndexFilter(op, n), nil
}

func columnNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid column number %q", s)
	}
	return n, nil
}
