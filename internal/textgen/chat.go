package textgen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	maxChatKeywords     = 5
	relevantSentences   = 3
	contextPreviewChars = 500
)

// knowledgeEntry pairs a message predicate with a canned reply. Entries are
// consulted in order and the first match wins.
type knowledgeEntry struct {
	matches  func(string) bool
	response string
}

// knowledgeTable answers common study questions when no document context is
// available. Kept deliberately small; anything document-specific goes
// through the context path.
var knowledgeTable = []knowledgeEntry{
	{
		matches:  messageHasAny("hello", "hi there", "hey"),
		response: "Hello! I'm your study assistant. Ask me about any topic you're working on and I'll do my best to help.",
	},
	{
		matches:  messageHasAny("flashcard"),
		response: "Flashcards work best in short, frequent sessions. Generate a deck from one of your documents and review the cards as they come due.",
	},
	{
		matches:  messageHasAny("quiz"),
		response: "Quizzes are generated from your documents. Open a document and request a quiz to test yourself on its content.",
	},
	{
		matches:  messageHasAny("summary", "summarize"),
		response: "I can summarize any of your uploaded documents. Open one and ask for a summary.",
	},
	{
		matches:  messageHasAny("how do i study", "study tips", "how to study"),
		response: "Spaced repetition beats cramming: review material in short sessions spread over days, and test yourself actively instead of rereading.",
	},
}

// topicAnswer pairs a topic word with a short canned explanation for
// subjects the extractive path handles poorly. Like knowledgeTable, the
// entries are consulted in order and the first match wins, so a message
// touching several topics always gets the same reply.
type topicAnswer struct {
	topic  string
	answer string
}

// topicAnswers apply only when both the message and the document mention
// the topic, so the reply stays grounded in the user's material.
var topicAnswers = []topicAnswer{
	{"refraction", "Refraction is the bending of light as it passes from one medium into another, caused by the change in the light's speed."},
	{"reflection", "Reflection is the bouncing of light off a surface, with the angle of incidence equal to the angle of reflection."},
	{"rainbow", "A rainbow forms when sunlight is refracted, internally reflected, and dispersed by water droplets, separating it into its component colors."},
	{"interference", "Interference occurs when two waves overlap: they reinforce each other where crests align and cancel where a crest meets a trough."},
	{"diffraction", "Diffraction is the bending and spreading of waves as they pass around an obstacle or through a narrow opening."},
}

var definitionIntentRE = regexp.MustCompile(`(?i)(?:what\s+is|what\s+are|define|explain)\s+(?:the\s+|an?\s+)?([a-zA-Z][a-zA-Z\s-]{1,40}?)[\s?.!]*$`)

// Respond produces a chat reply for message, optionally grounded in document
// context. It never fails; when nothing matches it falls back to a generic
// prompt for more detail. Pure string processing, suitable as the fallback
// behind the remote model.
func Respond(message, context string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return "Ask me anything about your study material and I'll do my best to help."
	}

	if strings.TrimSpace(context) == "" {
		return respondGeneral(message)
	}
	return respondWithContext(message, context)
}

// respondGeneral handles messages with no document selected.
func respondGeneral(message string) string {
	for _, entry := range knowledgeTable {
		if entry.matches(message) {
			return entry.response
		}
	}
	return "I can help best when a document is selected. Upload or open one, then ask me about its content."
}

// respondWithContext grounds the reply in the supplied document text. The
// intent checks go from most to least specific; topic overrides run first
// because the extractive paths below produce weak answers for them.
func respondWithContext(message, context string) string {
	lowerMsg := strings.ToLower(message)
	lowerCtx := strings.ToLower(context)

	for _, ta := range topicAnswers {
		if strings.Contains(lowerMsg, ta.topic) && strings.Contains(lowerCtx, ta.topic) {
			return ta.answer
		}
	}

	keywords := chatKeywords(message)
	relevant := relevantContent(context, keywords)

	switch {
	case definitionIntentRE.MatchString(message):
		if def := findDefinition(message, relevant); def != "" {
			return def
		}
		return fmt.Sprintf("Based on the document: %s", truncate(relevant, contextPreviewChars))

	case strings.HasPrefix(lowerMsg, "how") || strings.HasPrefix(lowerMsg, "why") ||
		strings.HasPrefix(lowerMsg, "when") || messageHasAny("how ", "why ", "when ")(lowerMsg):
		reply := fmt.Sprintf("Here is what the document says: %s", truncate(relevant, contextPreviewChars))
		if len(keywords) > 0 {
			reply += fmt.Sprintf(" Would you like me to go deeper on %q?", keywords[0])
		}
		return reply

	case strings.Contains(lowerMsg, "summar"):
		if s := GenerateSummary(relevant); s != "" {
			return s
		}
		return truncate(relevant, contextPreviewChars)

	case strings.Contains(lowerMsg, "example") || strings.Contains(lowerMsg, "application"):
		subject := "this topic"
		if len(keywords) > 0 {
			subject = keywords[0]
		}
		return fmt.Sprintf("The document covers %s here: %s", subject, truncate(relevant, contextPreviewChars))

	default:
		reply := fmt.Sprintf("From the document: %s", truncate(relevant, contextPreviewChars))
		return reply + " Let me know if you want me to elaborate on any part."
	}
}

// chatKeywords extracts up to five distinct content words from the message.
func chatKeywords(message string) []string {
	keywords := make([]string, 0, maxChatKeywords)
	seen := make(map[string]struct{})
	for _, t := range tokenize(message) {
		if len(t) <= 3 || isStopword(t) {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		keywords = append(keywords, t)
		if len(keywords) >= maxChatKeywords {
			break
		}
	}
	return keywords
}

// relevantContent scores each context sentence by how many keyword
// occurrences it contains and returns the top three in document order. With
// no keywords or no scoring sentence it falls back to the document opening.
func relevantContent(context string, keywords []string) string {
	sentences := SplitSentences(context)
	if len(keywords) == 0 || len(sentences) == 0 {
		return truncate(context, contextPreviewChars)
	}

	type scored struct {
		sentence string
		score    int
		pos      int
	}
	hits := make([]scored, 0, len(sentences))
	for i, s := range sentences {
		lower := strings.ToLower(s)
		score := 0
		for _, kw := range keywords {
			score += strings.Count(lower, kw)
		}
		if score > 0 {
			hits = append(hits, scored{sentence: s, score: score, pos: i})
		}
	}
	if len(hits) == 0 {
		return truncate(context, contextPreviewChars)
	}

	// Keep the best three but present them in document order.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > relevantSentences {
		hits = hits[:relevantSentences]
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	parts := make([]string, len(hits))
	for i, h := range hits {
		parts[i] = h.sentence
	}
	return strings.Join(parts, ". ")
}

// findDefinition extracts the asked-about term from the message and looks
// for a definitional sentence about it in the relevant content.
func findDefinition(message, relevant string) string {
	m := definitionIntentRE.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	term := strings.TrimSpace(m[1])
	if term == "" {
		return ""
	}

	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b\s+(?:is|are|refers\s+to|means)\s+(.+)`)
	if err != nil {
		return ""
	}
	for _, s := range SplitSentences(relevant) {
		if sub := re.FindStringSubmatch(s); sub != nil {
			return fmt.Sprintf("%s is %s.", capitalize(term), strings.TrimSpace(sub[1]))
		}
	}
	return ""
}

// messageHasAny builds a case-insensitive substring predicate.
func messageHasAny(needles ...string) func(string) bool {
	return func(message string) bool {
		lower := strings.ToLower(message)
		for _, n := range needles {
			if strings.Contains(lower, n) {
				return true
			}
		}
		return false
	}
}
