package domain

import "errors"

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrAccessDenied indicates the request origin is not allow-listed
	ErrAccessDenied = errors.New("origin not allowed")
	// ErrRateLimited indicates the widget rate limit was exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrUpstreamRateLimited indicates the model endpoint returned 429
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	// ErrQuotaExhausted indicates the model endpoint returned 402
	ErrQuotaExhausted = errors.New("upstream credits exhausted")
	// ErrUpstream indicates any other upstream failure
	ErrUpstream = errors.New("upstream model failure")
	// ErrConfigMissing indicates missing server configuration, e.g. upstream credentials
	ErrConfigMissing = errors.New("server configuration missing")
)
