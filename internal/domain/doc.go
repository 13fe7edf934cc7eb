// Package domain contains the core business entities and validation rules
// for the StudyBuddy application: users, uploaded documents, and the study
// content generated from them (summaries, flashcards, quizzes, chat turns).
package domain
