package model

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// defaultMaxFeatures caps the vectorizer vocabulary at the terms with
// the highest document frequency.
const defaultMaxFeatures = 100

// Vectorizer maps free text onto TF-IDF weighted term vectors. The
// vocabulary is fixed at fit time; unseen terms are ignored at
// transform time.
type Vectorizer struct {
	MaxFeatures int
	Vocabulary  map[string]int
	IDF         []float64
}

// NewVectorizer builds an unfitted vectorizer with the default
// vocabulary cap.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{MaxFeatures: defaultMaxFeatures}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Fit learns the vocabulary and inverse document frequencies from docs.
func (v *Vectorizer) Fit(docs []string) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	// Highest document frequency first; ties break alphabetically so a
	// refit on the same corpus yields the same vocabulary.
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// Smoothed IDF keeps terms present in every document from
		// zeroing out entirely.
		v.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Dim returns the width of transformed vectors.
func (v *Vectorizer) Dim() int {
	return len(v.IDF)
}

// Transform maps doc onto its L2-normalized TF-IDF vector.
func (v *Vectorizer) Transform(doc string) []float64 {
	out := make([]float64, len(v.IDF))
	tokens := tokenize(doc)
	if len(tokens) == 0 {
		return out
	}

	counts := make(map[int]int)
	for _, tok := range tokens {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, count := range counts {
		w := float64(count) * v.IDF[idx]
		out[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range counts {
			out[idx] /= norm
		}
	}
	return out
}
