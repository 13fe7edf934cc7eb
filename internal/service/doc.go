// Package service provides application-level services for managing
// documents, generated study content, chat, and spaced-repetition reviews.
// Services own business rules and transaction boundaries; persistence
// details live in the store layer and content generation behind the
// generation.Generator interface.
package service
