// Package query preprocesses user questions before embedding.
package query

import "strings"

// expansion pairs an abbreviation token with the phrase appended when the
// token appears in a query. A slice keeps iteration order deterministic,
// which a map would not.
type expansion struct {
	abbrev string
	phrase string
}

// Common abbreviations in the Romanian academic context. Matching is
// case-insensitive and substring-based; the expansions inject the full
// vocabulary the corpus chunks actually use, which improves embedding
// recall for terse queries like "camin?" or "bursa FSE".
var expansions = []expansion{
	{"fse", "Facultatea de Științe Economice"},
	{"ulbs", "Universitatea Lucian Blaga Sibiu"},
	{"licenta", "lucrare de licență"},
	{"master", "lucrare de master disertație"},
	{"camin", "cămin dormitor cazare"},
	{"bursa", "bursă financiară"},
	{"erasmus", "erasmus mobilitate internațională"},
	{"orar", "orar program cursuri"},
	{"restanta", "restanță examen"},
	{"sesiune", "sesiune examen"},
	{"admitere", "admitere înmatriculare"},
	{"taxa", "taxă școlarizare"},
}

// Expand appends the expansion phrase of every abbreviation found in the
// query. The original query text is kept verbatim as the first piece; the
// function never rewrites it.
func Expand(q string) string {
	lower := strings.ToLower(q)

	terms := []string{q}
	for _, e := range expansions {
		if e.abbrev == "" {
			continue
		}
		if strings.Contains(lower, e.abbrev) {
			terms = append(terms, e.phrase)
		}
	}

	if len(terms) == 1 {
		return q
	}
	return strings.Join(terms, " ")
}
