// Package api contains the HTTP handlers, request/response models, and
// error mapping for the study buddy REST API.
package api
