package openai

import "fmt"

// Document text is truncated before prompting so one oversized upload cannot
// blow the model's context window.
const maxPromptDocumentChars = 12000

const summarySystemPrompt = "You are a study assistant. Summarize the provided study material " +
	"accurately and concisely. Respond with plain prose only, no headings and no markdown."

const flashcardSystemPrompt = "You are a study assistant that writes flashcards. " +
	"Respond ONLY with a JSON array, no prose and no markdown fences. " +
	"Each element must be an object with exactly two string fields: \"question\" and \"answer\"."

const quizSystemPrompt = "You are a study assistant that writes multiple-choice quizzes. " +
	"Respond ONLY with a JSON array, no prose and no markdown fences. " +
	"Each element must be an object with fields: \"question\" (string), " +
	"\"options\" (array of exactly 4 strings), \"correct\" (integer index 0-3 of the right option), " +
	"and \"explanation\" (string)."

const chatSystemPrompt = "You are a helpful study assistant. Answer the student's question " +
	"using the provided study material when it is relevant. Be concise and accurate."

func summaryUserPrompt(text string) string {
	return fmt.Sprintf("Summarize the following study material in 3 to 5 sentences:\n\n%s",
		truncateForPrompt(text))
}

func flashcardUserPrompt(text string, count int) string {
	return fmt.Sprintf("Create exactly %d flashcards from the following study material:\n\n%s",
		count, truncateForPrompt(text))
}

func quizUserPrompt(text string, count int) string {
	return fmt.Sprintf("Create exactly %d quiz questions from the following study material:\n\n%s",
		count, truncateForPrompt(text))
}

func chatUserPrompt(message, documentText string) string {
	if documentText == "" {
		return message
	}
	return fmt.Sprintf("Study material:\n%s\n\nStudent question: %s",
		truncateForPrompt(documentText), message)
}

func truncateForPrompt(text string) string {
	runes := []rune(text)
	if len(runes) <= maxPromptDocumentChars {
		return text
	}
	return string(runes[:maxPromptDocumentChars])
}
