// Package search finds grid columns by their header with a small query
// language: bare words match fuzzily, "quoted" text exactly, /regex/ by
// pattern and c:>3, c:2..5 or c:1,4 by column number. Words are ANDed, | ORs
// and - negates.
package search

import (
	"cmp"
	"slices"
)

// Match is a column found by FindColumns
type Match struct {
	Column
	// Rank is the sum of the fuzzy distances, lower is closer
	Rank int
}

// FindColumns returns the columns whose header matches query, closest
// match first. headers is indexed by model column.
func FindColumns(query string, headers []string) ([]Match, error) {
	expr, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}

	terms := fuzzyTerms(expr)
	var matches []Match
	for i, header := range headers {
		c := Column{Index: i, Header: header}
		if !expr.Matches(c) {
			continue
		}
		matches = append(matches, Match{Column: c, Rank: rank(terms, c)})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
	return matches, nil
}

// rank adds up the distances of the fuzzy terms that match c. Terms under
// an OR may not match; they add nothing.
func rank(terms []*FuzzyExpr, c Column) int {
	total := 0
	for _, term := range terms {
		if r := term.Rank(c); r > 0 {
			total += r
		}
	}
	return total
}

// fuzzyTerms collects the fuzzy terms outside of negations
func fuzzyTerms(expr FilterExpr) []*FuzzyExpr {
	switch e := expr.(type) {
	case *FuzzyExpr:
		return []*FuzzyExpr{e}
	case *AndExpr:
		return append(fuzzyTerms(e.left), fuzzyTerms(e.right)...)
	case *OrExpr:
		return append(fuzzyTerms(e.left), fuzzyTerms(e.right)...)
	default:
		return nil
	}
}
