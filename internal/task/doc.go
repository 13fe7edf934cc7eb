// Package task implements background task processing: a persistent queue of
// document-generation jobs drained by a worker pool, with crash recovery and
// stuck-task detection. Tasks are saved before they are queued, so a restart
// picks up whatever was in flight.
package task
