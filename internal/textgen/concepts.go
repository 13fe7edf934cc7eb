package textgen

import (
	"regexp"
	"strings"
)

// Concept is a (term, definition, context) triple extracted from document
// text. Application and Characteristics are optional enrichments used by the
// flashcard templates when present. Concepts are transient: they live for a
// single synthesis call and are never persisted.
type Concept struct {
	Term            string
	Definition      string
	Context         string
	Application     string
	Characteristics string
}

const (
	maxConcepts      = 10
	minSentenceChars = 30
	minTermChars     = 3
	maxTermChars     = 50
	minDefChars      = 10
	contextChars     = 200
)

// Definitional sentence patterns, tried in order; the first match wins for a
// sentence and the remaining patterns are not consulted.
var (
	// <subject> is/are/means/refers to/defined as <predicate>
	copulaPatternRE = regexp.MustCompile(
		`(?i)^(.{2,60}?)\s+(?:is|are|means|refers\s+to|(?:is\s+)?defined\s+as)\s+(.+)$`,
	)
	// <label>: <value>
	labelPatternRE = regexp.MustCompile(`^([^:]{2,60}):\s*(.+)$`)
	// The <subject> is/are <predicate>
	theSubjectPatternRE = regexp.MustCompile(`(?i)^The\s+(.+?)\s+(?:is|are)\s+(.+)$`)
)

// ExtractConcepts scans text for definitional sentences and returns up to
// ten concepts. When no sentence matches a definitional pattern it falls
// back to frequency-based term extraction. It never fails: empty or
// unusable input yields an empty slice.
func ExtractConcepts(text string) []Concept {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	concepts := make([]Concept, 0, maxConcepts)
	for i, sentence := range sentences {
		if len(sentence) < minSentenceChars {
			continue
		}

		concept, ok := matchDefinition(sentence)
		if !ok {
			continue
		}

		concept.Context = contextWindow(sentences, i)
		concepts = append(concepts, concept)
		if len(concepts) >= maxConcepts {
			return concepts
		}
	}

	if len(concepts) == 0 {
		concepts = frequencyConcepts(text, sentences)
	}

	if len(concepts) > maxConcepts {
		concepts = concepts[:maxConcepts]
	}
	return concepts
}

// matchDefinition tries the definitional patterns against one sentence.
// A match is accepted only when the extracted term and predicate satisfy the
// length bounds; malformed matches are skipped, not reported.
func matchDefinition(sentence string) (Concept, bool) {
	for _, re := range []*regexp.Regexp{copulaPatternRE, labelPatternRE, theSubjectPatternRE} {
		m := re.FindStringSubmatch(sentence)
		if m == nil {
			continue
		}

		term := stripLeadingArticle(strings.TrimSpace(m[1]))
		definition := strings.TrimSpace(m[2])
		if len(term) < minTermChars || len(term) > maxTermChars {
			continue
		}
		if len(definition) < minDefChars {
			continue
		}

		return Concept{Term: term, Definition: definition}, true
	}
	return Concept{}, false
}

// contextWindow joins the matched sentence with its immediate neighbors and
// truncates the result.
func contextWindow(sentences []string, i int) string {
	parts := make([]string, 0, 3)
	if i > 0 {
		parts = append(parts, sentences[i-1])
	}
	parts = append(parts, sentences[i])
	if i+1 < len(sentences) {
		parts = append(parts, sentences[i+1])
	}
	return truncate(strings.Join(parts, ". "), contextChars)
}

// frequencyConcepts is the fallback path when no definitional sentence was
// found: rank terms by frequency and anchor each to the first sentence that
// mentions it.
func frequencyConcepts(text string, sentences []string) []Concept {
	terms := rankByFrequency(tokenize(text))
	if len(terms) > maxConcepts {
		terms = terms[:maxConcepts]
	}

	concepts := make([]Concept, 0, len(terms))
	for _, term := range terms {
		sentence := firstSentenceContaining(sentences, term)
		if sentence == "" || len(sentence) < minDefChars {
			continue
		}
		concepts = append(concepts, Concept{
			Term:       capitalize(term),
			Definition: sentence,
			Context:    truncate(sentence, contextChars),
		})
	}
	return concepts
}

func firstSentenceContaining(sentences []string, term string) string {
	needle := strings.ToLower(term)
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), needle) {
			return s
		}
	}
	return ""
}
