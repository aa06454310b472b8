package iso3166

import "strings"

// trigramSize is the window width used for similarity scoring.
const trigramSize = 3

// trigramSet is the set of overlapping 3-rune windows of a normalized
// string. Normalized text is ASCII letters and whitespace, so runes
// and grapheme clusters coincide.
type trigramSet map[string]struct{}

// newTrigramSet slides a 3-rune window over s and collects the distinct
// windows. Strings shorter than 3 runes yield an empty set.
func newTrigramSet(s string) trigramSet {
	rs := []rune(s)
	if len(rs) < trigramSize {
		return nil
	}
	set := make(trigramSet, len(rs)-trigramSize+1)
	for i := 0; i <= len(rs)-trigramSize; i++ {
		set[string(rs[i:i+trigramSize])] = struct{}{}
	}
	return set
}

// jaccard is |a ∩ b| / |a ∪ b|. When either set is empty the union
// carries no information and the score is 0 — including the degenerate
// both-empty case, which would otherwise divide by zero.
func jaccard(a, b trigramSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for g := range small {
		if _, ok := large[g]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(a)+len(b)-inter)
}

// Similarity scores how alike two strings are on a [0,1] scale using
// the Jaccard coefficient of their trigram sets. Both inputs are run
// through Normalize first, so case, accents, and punctuation do not
// affect the score. Symmetric: Similarity(a, b) == Similarity(b, a).
//
// Inputs that normalize to fewer than 3 runes have no trigrams and
// score 0 against everything, themselves included.
func Similarity(a, b string) float64 {
	return jaccard(newTrigramSet(Normalize(a)), newTrigramSet(Normalize(b)))
}

// WordSimilarity scores candidate against the best-matching single
// whitespace-separated word of phrase. Multi-word targets like
// "West Virginia" match a one-word query such as "Virginia" at full
// strength instead of being penalized by the phrase's length.
// A phrase with no words scores 0.
func WordSimilarity(candidate, phrase string) float64 {
	cand := newTrigramSet(Normalize(candidate))
	best := 0.0
	for _, w := range strings.Fields(Normalize(phrase)) {
		if s := jaccard(cand, newTrigramSet(w)); s > best {
			best = s
		}
	}
	return best
}

// bestWordScore is the precomputed-index form of WordSimilarity used by
// the resolver: candidate's trigram set against each word set of a
// dataset entry.
func bestWordScore(cand trigramSet, words []trigramSet) float64 {
	best := 0.0
	for _, w := range words {
		if s := jaccard(cand, w); s > best {
			best = s
		}
	}
	return best
}

// wordTrigramSets normalizes s and returns the trigram set of each of
// its words. Words too short to produce trigrams are skipped; they can
// never contribute a nonzero score.
func wordTrigramSets(s string) []trigramSet {
	words := strings.Fields(Normalize(s))
	sets := make([]trigramSet, 0, len(words))
	for _, w := range words {
		if set := newTrigramSet(w); len(set) > 0 {
			sets = append(sets, set)
		}
	}
	return sets
}
