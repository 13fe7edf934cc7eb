// Package textgen implements the local heuristic content-generation engine.
// It synthesizes flashcards, multiple-choice quizzes, extractive summaries,
// and chat replies from raw document text using regular-expression pattern
// matching, word-frequency analysis, and templated question construction.
//
// The package is the guaranteed fallback behind the remote model client:
// every function here is pure string processing, never performs I/O, and
// never returns an error. Output quality is best-effort by design; callers
// that need model-quality output should go through the generation package,
// which tries the remote path first.
//
// Randomness (distractor mutation, option shuffling) is always drawn from a
// caller-supplied *rand.Rand so tests can pin exact outcomes.
package textgen
