// Package openai implements the remote generation.Generator on top of the
// OpenAI chat-completions API. Any endpoint speaking the same wire format
// works through the BaseURL option, which is how self-hosted or proxy
// deployments are pointed at.
//
// The client asks the model for strict JSON, strips markdown code fences
// the models like to wrap responses in, and normalizes quiz question IDs to
// q1..qN regardless of what the model invented. Malformed items are dropped
// rather than failing the whole response; an entirely unusable response
// surfaces as generation.ErrInvalidResponse so the fallback path can take
// over.
package openai
