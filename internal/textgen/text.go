package textgen

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	sentenceDelimRE = regexp.MustCompile(`[.!?]+`)
	blankLineRE     = regexp.MustCompile(`\n\s*\n`)
	nonWordRE       = regexp.MustCompile(`[^a-zA-Z0-9'-]+`)
)

// stopwords filtered out of keyword candidates and frequency ranking.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "about": {}, "after": {},
	"all": {}, "also": {}, "as": {}, "at": {}, "be": {}, "because": {},
	"been": {}, "before": {}, "being": {}, "between": {}, "both": {},
	"but": {}, "by": {}, "can": {}, "could": {}, "did": {}, "do": {},
	"does": {}, "doing": {}, "down": {}, "during": {}, "each": {},
	"few": {}, "for": {}, "from": {}, "further": {}, "had": {}, "has": {},
	"have": {}, "having": {}, "he": {}, "her": {}, "here": {}, "hers": {},
	"him": {}, "his": {}, "how": {}, "i": {}, "if": {}, "in": {},
	"into": {}, "is": {}, "it": {}, "its": {}, "just": {}, "me": {},
	"more": {}, "most": {}, "my": {}, "no": {}, "nor": {}, "not": {},
	"now": {}, "of": {}, "off": {}, "on": {}, "once": {}, "only": {},
	"or": {}, "other": {}, "our": {}, "out": {}, "over": {}, "own": {},
	"same": {}, "she": {}, "should": {}, "so": {}, "some": {}, "such": {},
	"than": {}, "that": {}, "the": {}, "their": {}, "them": {}, "then": {},
	"there": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"through": {}, "to": {}, "too": {}, "under": {}, "until": {}, "up": {},
	"very": {}, "was": {}, "we": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "while": {}, "who": {}, "whom": {},
	"why": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
	"yours": {},
}

// SplitSentences splits text on sentence delimiters (. ! ?) and returns the
// trimmed, non-empty fragments in document order.
func SplitSentences(text string) []string {
	parts := sentenceDelimRE.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// splitParagraphs splits text into blank-line separated blocks.
func splitParagraphs(text string) []string {
	parts := blankLineRE.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

func isStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// tokenize lowercases text and strips non-word characters, returning the
// remaining tokens in order.
func tokenize(text string) []string {
	raw := nonWordRE.Split(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, "'-")
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// rankByFrequency counts token occurrences, skipping stopwords and tokens of
// four characters or fewer, and returns terms ordered by descending count.
// Ties keep first-appearance order so results are deterministic.
func rankByFrequency(tokens []string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, t := range tokens {
		if len(t) <= 4 || isStopword(t) {
			continue
		}
		if _, ok := counts[t]; !ok {
			firstSeen[t] = i
		}
		counts[t]++
	}

	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})
	return terms
}

// truncate shortens s to at most limit runes, appending an ellipsis when
// anything was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// stripLeadingArticle removes a leading "the", "a" or "an" from a term.
func stripLeadingArticle(term string) string {
	lower := strings.ToLower(term)
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(lower, article) {
			return strings.TrimSpace(term[len(article):])
		}
	}
	return term
}

// capitalize upper-cases the first rune of a word.
func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// startsUpper reports whether the first rune of a word is upper case.
func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}
