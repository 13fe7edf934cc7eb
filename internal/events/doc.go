// Package events decouples the services that request background work from
// the task machinery that performs it. The document service emits a
// TaskRequestEvent when an upload needs content generation; a handler in the
// task package turns the event into a queued task. Neither side imports the
// other.
package events
