package textgen

import (
	"math/rand"
	"strings"
)

// rhymeTable maps common word endings to plausible-looking replacement
// endings used when mutating a keyword into a distractor. No table ending is
// a suffix of another, so at most one entry matches any word.
var rhymeTable = map[string]string{
	"tion": "sion",
	"ment": "ness",
	"ical": "ological",
	"ity":  "ism",
	"ing":  "ed",
	"ous":  "ive",
	"ance": "ence",
	"able": "ible",
}

// caseFlip toggles the case of the keyword's first letter. A capitalized
// keyword comes back lowercased and vice versa, so the distractor reads as a
// near-miss of the original.
func caseFlip(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	if startsUpper(word) {
		return strings.ToLower(string(runes[:1])) + string(runes[1:])
	}
	return capitalize(word)
}

// suffixMutation derives a distractor by altering the keyword's ending. The
// mutation is picked from a small fixed set using the supplied source so
// seeded runs are reproducible.
func suffixMutation(rng *rand.Rand, word string) string {
	switch rng.Intn(5) {
	case 0:
		return word + "s"
	case 1:
		return word + "ing"
	case 2:
		return word + "ed"
	case 3:
		if len(word) > 1 {
			return word[:len(word)-1] + "y"
		}
		return word + "y"
	default:
		return word + "ly"
	}
}

// endingSwap replaces a known word ending using rhymeTable, falling back to
// reversing the word when no ending matches. The fallback is deliberately
// absurd but keeps the option count intact for very short or unusual words.
func endingSwap(word string) string {
	lower := strings.ToLower(word)
	for ending, replacement := range rhymeTable {
		if strings.HasSuffix(lower, ending) {
			return word[:len(word)-len(ending)] + replacement
		}
	}
	return reverseWord(word)
}

func reverseWord(word string) string {
	runes := []rune(word)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// optionsDistinct reports whether the options are pairwise distinct.
// Comparison is case-sensitive: a case flip of the correct answer is a
// deliberate near-miss distractor, not a duplicate. Questions that cannot
// field four distinct options are dropped by the caller rather than padded
// with filler the student could use to eliminate answers.
func optionsDistinct(options []string) bool {
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		key := strings.TrimSpace(opt)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
	}
	return true
}
