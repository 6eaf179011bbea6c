package search

import (
	"math"
	"strings"
	"unicode"
)

// Ranking is a weighted union of independent signals. Scores are relative,
// not normalized; several signals firing at once can sum above 1.0.
const (
	weightExact    = 1.0
	weightPrefix   = 0.8
	weightContains = 0.5

	// Alternate names rank slightly below the primary name.
	weightAltExact    = 0.9
	weightAltPrefix   = 0.7
	weightAltContains = 0.4

	// Initialism matches ("vsc" for "Visual Studio Code").
	weightInitialismExact  = 0.85
	weightInitialismPrefix = 0.65
)

// ScoreApp ranks an application against a query. Higher is better; zero
// means no signal matched.
func ScoreApp(app App, query string) float64 {
	q := strings.ToLower(query)
	name := strings.ToLower(app.Name)

	score := scoreName(name, q)

	best := 0.0
	for _, alt := range app.AlternateNames {
		altLower := strings.ToLower(alt)
		var s float64
		switch {
		case altLower == q:
			s = weightAltExact
		case strings.HasPrefix(altLower, q):
			s = weightAltPrefix
		case strings.Contains(altLower, q):
			s = weightAltContains
		}
		best = math.Max(best, s)
	}
	score += best

	score += scoreInitialism(app.Name, q)
	score += usageBoost(app.UsageCount)
	return score
}

// scoreName applies the exact/prefix/contains ladder. Signals stack: an
// exact match also satisfies prefix and contains.
func scoreName(name, query string) float64 {
	score := 0.0
	if name == query {
		score += weightExact
	}
	if strings.HasPrefix(name, query) {
		score += weightPrefix
	}
	if strings.Contains(name, query) {
		score += weightContains
	}
	return score
}

// scoreInitialism compares the query against the first letters of each
// word in the name. Only evaluated for queries of two or more lowercase
// letters; single characters match too many names to be a useful signal.
func scoreInitialism(name, query string) float64 {
	if len(query) < 2 || !isAllLowercaseLetters(query) {
		return 0
	}
	initials := initialsOf(name)
	if initials == query {
		return weightInitialismExact
	}
	if strings.HasPrefix(initials, query) {
		return weightInitialismPrefix
	}
	return 0
}

// initialsOf collects the lowercased first letter of each word, splitting
// on any non-alphanumeric rune.
func initialsOf(name string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		for _, r := range word {
			b.WriteRune(unicode.ToLower(r))
			break
		}
	}
	return b.String()
}

func isAllLowercaseLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// usageBoost rewards frequently launched applications logarithmically so
// heavy use cannot drown out textual relevance.
func usageBoost(count int64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Log10(float64(count)) / 10
}
