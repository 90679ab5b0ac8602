// Package moderation masks configured words in outgoing message text
// before persistence, using an Aho-Corasick automaton over a normalized
// view of the input.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type Moderator struct {
	matcher     *goahocorasick.Machine
	maskedChar  rune
	hasPatterns bool
}

// NewModerator builds the automaton from the word list. An empty list
// yields a pass-through moderator.
func NewModerator(words []string, maskedChar rune) (*Moderator, error) {
	if len(words) == 0 {
		return &Moderator{maskedChar: maskedChar}, nil
	}

	patterns := make([][]rune, len(words))
	for i, word := range words {
		patterns[i] = normalize([]rune(word))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: m, maskedChar: maskedChar, hasPatterns: true}, nil
}

// Mask replaces every matched span with the masking character, mapping
// hits on the normalized text back to the original rune positions so
// spacing and unmatched punctuation survive.
func (m *Moderator) Mask(original string) string {
	if !m.hasPatterns {
		return original
	}

	origRunes := []rune(original)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))
	for i, r := range origRunes {
		clean := unicode.ToLower(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, clean)
		origIdx = append(origIdx, i)
	}
	if len(norm) == 0 {
		return original
	}

	spans := m.matcher.MultiPatternSearch(norm, false)
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			origRunes[i] = m.maskedChar
		}
	}
	return string(origRunes)
}

func normalize(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := unicode.ToLower(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, clean)
	}
	return out
}

// isNoise identifies characters ignored during matching, so words split
// by punctuation or spacing still match.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
