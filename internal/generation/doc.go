// Package generation provides the boundary between the application core and
// the content-generation backends. It defines one interface for synthesizing
// summaries, flashcards, quizzes, and chat replies from document text, with
// two implementations behind it: a remote LLM client and the local heuristic
// engine. The fallback generator composes the two so callers always get a
// result, degrading from model output to heuristic output when the remote
// path is unavailable or misbehaves.
package generation
