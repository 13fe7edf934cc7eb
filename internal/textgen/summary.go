package textgen

import "strings"

const (
	summarySentences      = 3
	minSummarySentenceLen = 20
)

// importanceMarkers flag sentences the author signposted as central.
var importanceMarkers = []string{
	"important", "key", "main", "primary", "essential",
	"crucial", "significant", "fundamental",
}

// GenerateSummary produces an extractive summary: up to three sentences the
// text itself marks as important, or the opening sentences when no marker
// appears. Empty input yields an empty summary.
func GenerateSummary(text string) string {
	usable := make([]string, 0, 16)
	for _, s := range SplitSentences(text) {
		if len(s) >= minSummarySentenceLen {
			usable = append(usable, s)
		}
	}
	if len(usable) == 0 {
		return ""
	}

	picked := make([]string, 0, summarySentences)
	for _, s := range usable {
		if !containsMarker(s) {
			continue
		}
		picked = append(picked, s)
		if len(picked) >= summarySentences {
			break
		}
	}

	if len(picked) == 0 {
		n := summarySentences
		if len(usable) < n {
			n = len(usable)
		}
		picked = usable[:n]
	}

	return strings.Join(picked, ". ") + "."
}

func containsMarker(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, marker := range importanceMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
