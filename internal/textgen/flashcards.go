package textgen

import (
	"fmt"
	"strings"
)

// CardPair is a synthesized question/answer pair. Both sides are non-empty.
type CardPair struct {
	Question string
	Answer   string
}

const minCardSentenceChars = 20

// GenerateFlashcards synthesizes up to count flashcards from text. Concepts
// drive the first cards through a fixed four-template rotation; when the
// text yields fewer concepts than requested, the remainder is topped up from
// raw sentences. The result may be shorter than count when the source
// material is too sparse; that is degraded output, not an error.
func GenerateFlashcards(text string, count int) []CardPair {
	if count <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	cards := make([]CardPair, 0, count)
	for i, concept := range ExtractConcepts(text) {
		if len(cards) >= count {
			break
		}
		cards = append(cards, conceptCard(concept, i%4))
	}

	if len(cards) < count {
		cards = append(cards, sentenceCards(text, count-len(cards), len(cards))...)
	}

	return cards
}

// conceptCard renders one concept through the template selected by the
// concept's position in the rotation.
func conceptCard(c Concept, template int) CardPair {
	switch template {
	case 0:
		return CardPair{
			Question: fmt.Sprintf("What is %s?", c.Term),
			Answer:   c.Definition,
		}
	case 1:
		answer := c.Context
		if answer == "" {
			answer = c.Definition
		}
		return CardPair{
			Question: fmt.Sprintf("In what context is %s discussed?", c.Term),
			Answer:   answer,
		}
	case 2:
		answer := c.Application
		if answer == "" {
			answer = c.Definition
		}
		return CardPair{
			Question: fmt.Sprintf("How is %s applied or used?", c.Term),
			Answer:   answer,
		}
	default:
		answer := c.Characteristics
		if answer == "" {
			answer = c.Definition
		}
		return CardPair{
			Question: fmt.Sprintf("What are the key characteristics of %s?", c.Term),
			Answer:   answer,
		}
	}
}

// sentenceCards tops up the deck from raw sentences: each sentence of at
// least 20 characters contributes one card keyed on a representative word
// near the sentence midpoint, phrased through a rotation indexed by the
// card's output position.
func sentenceCards(text string, needed, startPos int) []CardPair {
	if needed <= 0 {
		return nil
	}

	cards := make([]CardPair, 0, needed)
	for _, sentence := range SplitSentences(text) {
		if len(cards) >= needed {
			break
		}
		if len(sentence) < minCardSentenceChars {
			continue
		}

		keyword := midpointKeyword(sentence)
		if keyword == "" {
			continue
		}

		pos := startPos + len(cards)
		cards = append(cards, CardPair{
			Question: sentenceQuestion(keyword, pos%4),
			Answer:   sentence,
		})
	}
	return cards
}

func sentenceQuestion(keyword string, template int) string {
	switch template {
	case 0:
		return fmt.Sprintf("What does the material say about %q?", keyword)
	case 1:
		return fmt.Sprintf("What point is made regarding %q?", keyword)
	case 2:
		return fmt.Sprintf("Why is %q significant in this material?", keyword)
	default:
		return fmt.Sprintf("What should you remember about %q?", keyword)
	}
}

// midpointKeyword picks the word longer than four characters closest to the
// middle of the sentence, or "" when no word qualifies.
func midpointKeyword(sentence string) string {
	words := strings.Fields(sentence)
	if len(words) == 0 {
		return ""
	}

	mid := len(words) / 2
	best := ""
	bestDist := len(words) + 1
	for i, w := range words {
		clean := strings.Trim(w, ",;:()\"'")
		if len(clean) <= 4 || isStopword(clean) {
			continue
		}
		dist := i - mid
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			best, bestDist = clean, dist
		}
	}
	return best
}
