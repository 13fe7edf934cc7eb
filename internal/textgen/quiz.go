package textgen

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/MuhammadAhmed-503/study-buddy/internal/domain"
)

const (
	minSegmentChars      = 50
	minQuizSentenceChars = 20
	quizAnswerChars      = 80
)

// quiz question strategies, rotated by output position.
const (
	strategyFillBlank = iota
	strategyDefinition
	strategyContext
	strategyComprehension
)

// GenerateQuiz synthesizes up to count four-option questions from text.
// Questions are built from text segments (paragraphs when the text has
// usable ones, sentences otherwise) cycled in order, each rendered through
// the strategy selected by its output position. The supplied rng drives
// option shuffling and distractor mutation; callers pin it in tests.
//
// Fewer than count questions come back when the text cannot support more.
func GenerateQuiz(rng *rand.Rand, text string, count int) []domain.QuizQuestion {
	if count <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	segments := quizSegments(text)
	if len(segments) == 0 {
		return nil
	}

	questions := make([]domain.QuizQuestion, 0, count)
	misses := 0
	for i := 0; len(questions) < count; i++ {
		segment := segments[i%len(segments)]
		q, ok := buildQuestion(rng, segment, len(questions)%4)
		if !ok {
			misses++
			if misses >= len(segments) {
				break
			}
			continue
		}
		misses = 0
		q.ID = fmt.Sprintf("q%d", len(questions)+1)
		questions = append(questions, q)
	}
	return questions
}

// quizSegments prefers paragraphs so consecutive questions draw on distinct
// parts of the document; short or unstructured text falls back to sentences.
func quizSegments(text string) []string {
	paragraphs := splitParagraphs(text)
	usable := paragraphs[:0]
	for _, p := range paragraphs {
		if len(p) >= minSegmentChars {
			usable = append(usable, p)
		}
	}
	if len(usable) > 1 {
		return usable
	}
	return SplitSentences(text)
}

// buildQuestion renders one segment through one strategy. It reports false
// when the segment lacks a usable sentence or enough keywords, which lets
// the caller move on to the next segment.
func buildQuestion(rng *rand.Rand, segment string, strategy int) (domain.QuizQuestion, bool) {
	sentence := firstUsableSentence(segment)
	if sentence == "" {
		return domain.QuizQuestion{}, false
	}

	keywords := sentenceKeywords(sentence)
	if len(keywords) < 2 {
		return domain.QuizQuestion{}, false
	}

	var question, correct, explanation string
	var distractors []string

	switch strategy {
	case strategyFillBlank:
		kw := keywords[0]
		blanked, ok := blankOut(sentence, kw)
		if !ok {
			return domain.QuizQuestion{}, false
		}
		question = fmt.Sprintf("Fill in the blank: %s", blanked)
		correct = kw
		distractors = []string{
			caseFlip(kw),
			suffixMutation(rng, kw),
			endingSwap(kw),
		}
		explanation = fmt.Sprintf("The original sentence reads: %s", truncate(sentence, contextChars))

	case strategyDefinition:
		kw, alt := keywords[0], keywords[1]
		question = fmt.Sprintf("Which option best describes %q as used in the text?", kw)
		correct = "the concept mentioned in the given context"
		distractors = []string{
			fmt.Sprintf("a type of %s", alt),
			fmt.Sprintf("the opposite of %s", kw),
			fmt.Sprintf("a synonym for %s", alt),
		}
		explanation = fmt.Sprintf("%q appears in: %s", kw, truncate(sentence, contextChars))

	case strategyContext:
		kw := keywords[0]
		question = fmt.Sprintf("What does the text state about %q?", kw)
		correct = truncate(sentence, quizAnswerChars)
		distractors = []string{
			"The text states the opposite of this",
			"This is not mentioned in the text",
			"The text only partially addresses this topic",
		}
		explanation = fmt.Sprintf("Taken directly from the source: %s", truncate(sentence, contextChars))

	default:
		kw := keywords[0]
		question = fmt.Sprintf("Which statement best reflects how the text treats %q?", kw)
		correct = fmt.Sprintf("The text discusses %s as described", kw)
		distractors = []string{
			fmt.Sprintf("The text argues against %s entirely", kw),
			fmt.Sprintf("The text never mentions %s", kw),
			fmt.Sprintf("The text dismisses %s as irrelevant", kw),
		}
		explanation = fmt.Sprintf("See: %s", truncate(sentence, contextChars))
	}

	options, correctIdx, ok := assembleOptions(rng, correct, distractors)
	if !ok {
		return domain.QuizQuestion{}, false
	}
	return domain.QuizQuestion{
		Question:    question,
		Options:     options,
		Correct:     correctIdx,
		Explanation: explanation,
	}, true
}

// assembleOptions shuffles the four options and locates the correct answer's
// post-shuffle index. It reports false when the options are not pairwise
// distinct (a suffix mutation can occasionally reproduce another option);
// such questions are dropped by the caller rather than padded.
func assembleOptions(rng *rand.Rand, correct string, distractors []string) ([]string, int, bool) {
	options := append([]string{correct}, distractors...)
	if !optionsDistinct(options) {
		return nil, 0, false
	}

	for i := len(options) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		options[i], options[j] = options[j], options[i]
	}

	correctIdx := 0
	for i, opt := range options {
		if opt == correct {
			correctIdx = i
			break
		}
	}
	return options, correctIdx, true
}

func firstUsableSentence(segment string) string {
	for _, s := range SplitSentences(segment) {
		if len(s) >= minQuizSentenceChars {
			return s
		}
	}
	return ""
}

// sentenceKeywords extracts candidate keywords from one sentence, scored by
// length with a bonus for capitalization (proper nouns and sentence-initial
// terms tend to be the subject). Ties keep appearance order.
func sentenceKeywords(sentence string) []string {
	words := strings.Fields(sentence)
	type candidate struct {
		word  string
		score int
		pos   int
	}

	seen := make(map[string]struct{})
	candidates := make([]candidate, 0, len(words))
	for i, w := range words {
		clean := strings.Trim(w, ".,;:()\"'!?")
		if len(clean) <= 3 || isStopword(clean) {
			continue
		}
		key := strings.ToLower(clean)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		score := len(clean)
		if startsUpper(clean) {
			score += 5
		}
		candidates = append(candidates, candidate{word: clean, score: score, pos: i})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].pos < candidates[j].pos
	})

	keywords := make([]string, len(candidates))
	for i, c := range candidates {
		keywords[i] = c.word
	}
	return keywords
}

// blankOut replaces every whole-word occurrence of keyword in the sentence
// with a blank marker, case-insensitively.
func blankOut(sentence, keyword string) (string, bool) {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	if err != nil {
		return "", false
	}
	blanked := re.ReplaceAllString(sentence, "_____")
	if blanked == sentence {
		return "", false
	}
	return blanked, true
}
