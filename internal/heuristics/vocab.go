// Package heuristics implements the rule-based label and risk scoring
// engine. Vocabularies and weights are data tables; the scoring functions
// are single folds over matches so every verdict stays auditable.
package heuristics

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Vocabulary is a fixed keyword set matched case-insensitively as
// substrings. Matching counts each term at most once regardless of how
// often it occurs.
type Vocabulary struct {
	terms   []string
	matcher *ahocorasick.Matcher
}

// NewVocabulary builds a vocabulary from terms. Terms are normalized to
// lower case; empty terms are dropped.
func NewVocabulary(terms []string) *Vocabulary {
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			normalized = append(normalized, term)
		}
	}
	return &Vocabulary{
		terms:   normalized,
		matcher: ahocorasick.NewStringMatcher(normalized),
	}
}

// Count returns how many distinct vocabulary terms occur in text.
func (v *Vocabulary) Count(text string) int {
	if text == "" || len(v.terms) == 0 {
		return 0
	}
	return len(v.matcher.Match([]byte(strings.ToLower(text))))
}

// Contains reports whether any vocabulary term occurs in text.
func (v *Vocabulary) Contains(text string) bool {
	return v.Count(text) > 0
}

// Terms returns the normalized vocabulary terms.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Default vocabularies. Hand-tuned against the cartridge listings the
// system was built for; bilingual because the source mixes Portuguese
// listings with English seller boilerplate.
var (
	// SuspiciousTerms indicate counterfeit, grey-market or non-original
	// goods.
	SuspiciousTerms = []string{
		"genérico", "cópia", "compatível", "recondicionado", "usado",
		"refurbished", "remanufactured", "compatible", "generic",
		"não original", "alternativo", "substituto", "imitação",
		"falso", "fake", "replica", "copia", "compativel",
	}

	// OriginalityTerms indicate a first-party or authentic listing.
	OriginalityTerms = []string{
		"original", "oficial", "genuíno", "autêntico", "lacrado",
		"novo", "novo lacrado", "garantia", "nota fiscal", "certificado",
	}

	// TrustedSellerTerms mark storefronts treated as trustworthy.
	TrustedSellerTerms = []string{
		"amazon", "amazon.com.br", "hp", "hp brasil", "oficial",
	}

	// SuspiciousSellerTerms mark generic third-party storefronts.
	SuspiciousSellerTerms = []string{
		"marketplace", "terceiros", "vendedor externo", "loja genérica",
	}
)

// Vocabularies bundles the four keyword tables the engine scores with.
type Vocabularies struct {
	Suspicious        *Vocabulary
	Originality       *Vocabulary
	TrustedSellers    *Vocabulary
	SuspiciousSellers *Vocabulary
}

// DefaultVocabularies builds the default keyword tables.
func DefaultVocabularies() *Vocabularies {
	return &Vocabularies{
		Suspicious:        NewVocabulary(SuspiciousTerms),
		Originality:       NewVocabulary(OriginalityTerms),
		TrustedSellers:    NewVocabulary(TrustedSellerTerms),
		SuspiciousSellers: NewVocabulary(SuspiciousSellerTerms),
	}
}
