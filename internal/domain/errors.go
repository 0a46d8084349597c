package domain

import "errors"

var (
	// ErrInvalidRequest signals a malformed search request (empty query, unknown strategy).
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidFilter signals a malformed filter (bad date range, unrecognized option).
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrRetrievalFailed signals that the lexical path could not retrieve candidates.
	ErrRetrievalFailed = errors.New("retrieval failed")
	// ErrStoreUnavailable signals that the document store is unreachable.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingTimeout signals that an embedding call exceeded its deadline.
	ErrEmbeddingTimeout = errors.New("embedding timed out")
)
