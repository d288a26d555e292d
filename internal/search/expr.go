package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Column is what a query is matched against: a model column and its header.
type Column struct {
	Index  int
	Header string
}

// FilterExpr represents a filter expression that can match columns
type FilterExpr interface {
	Matches(c Column) bool
	String() string
}

// FuzzyExpr matches headers containing the term's characters in order,
// ignoring case
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(c Column) bool {
	return fuzzy.MatchFold(e.term, c.Header)
}

// Rank is the match distance of the header, lower is closer; -1 when it
// does not match.
func (e *FuzzyExpr) Rank(c Column) int {
	return fuzzy.RankMatchFold(e.term, c.Header)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("Fuzzy(%q)", e.term)
}

// TextExpr matches headers containing the exact text, ignoring case
type TextExpr struct {
	text string
}

func NewTextExpr(text string) *TextExpr {
	return &TextExpr{text: strings.ToLower(text)}
}

func (e *TextExpr) Matches(c Column) bool {
	return strings.Contains(strings.ToLower(c.Header), e.text)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("Text(%q)", e.text)
}

// RegexExpr matches headers against a case insensitive regular expression
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex %q: %w", pattern, err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(c Column) bool {
	return e.re.MatchString(c.Header)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("Regex(/%s/)", e.pattern)
}

// ComparisonOp represents comparison operators
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "!="
	OpGreater      ComparisonOp = ">"
	OpGreaterEqual ComparisonOp = ">="
	OpLess         ComparisonOp = "<"
	OpLessEqual    ComparisonOp = "<="
)

func (op ComparisonOp) compare(a, b int) bool {
	switch op {
	case OpNotEqual:
		return a != b
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	default:
		return a == b
	}
}

// IndexFilter matches columns by model index, as in c:>3
type IndexFilter struct {
	op    ComparisonOp
	value int
}

func NewIndexFilter(op ComparisonOp, value int) *IndexFilter {
	return &IndexFilter{op: op, value: value}
}

func (e *IndexFilter) Matches(c Column) bool {
	return e.op.compare(c.Index, e.value)
}

func (e *IndexFilter) String() string {
	return fmt.Sprintf("Column(%s%d)", e.op, e.value)
}

// ColumnRange matches model indexes from..to inclusive, as in c:2..5
type ColumnRange struct {
	from, to int
}

// NewColumnRange returns the range in ascending order.
func NewColumnRange(from, to int) *ColumnRange {
	return &ColumnRange{from: min(from, to), to: max(from, to)}
}

func (e *ColumnRange) Matches(c Column) bool {
	return c.Index >= e.from && c.Index <= e.to
}

func (e *ColumnRange) String() string {
	return fmt.Sprintf("Columns(%d..%d)", e.from, e.to)
}

// AlwaysMatchExpr matches every column, the result of an empty query
type AlwaysMatchExpr struct{}

func (AlwaysMatchExpr) Matches(Column) bool { return true }
func (AlwaysMatchExpr) String() string      { return "All" }

// AndExpr matches when both sides match
type AndExpr struct {
	left, right FilterExpr
}

func NewAndExpr(left, right FilterExpr) *AndExpr {
	return &AndExpr{left: left, right: right}
}

func (e *AndExpr) Matches(c Column) bool {
	return e.left.Matches(c) && e.right.Matches(c)
}

func (e *AndExpr) String() string {
	return fmt.Sprintf("And(%s, %s)", e.left, e.right)
}

// OrExpr matches when either side matches
type OrExpr struct {
	left, right FilterExpr
}

func NewOrExpr(left, right FilterExpr) *OrExpr {
	return &OrExpr{left: left, right: right}
}

func (e *OrExpr) Matches(c Column) bool {
	return e.left.Matches(c) || e.right.Matches(c)
}

func (e *OrExpr) String() string {
	return fmt.Sprintf("Or(%s, %s)", e.left, e.right)
}

// NotExpr inverts its operand
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(c Column) bool {
	return !e.expr.Matches(c)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("Not(%s)", e.expr)
}
