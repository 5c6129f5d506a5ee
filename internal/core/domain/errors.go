package domain

import "errors"

// Domain errors represent pipeline failures with defined handling
// policies. These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientContent indicates an extraction yielded too little
	// text to be useful. Callers treat it as "try the next candidate",
	// never as fatal.
	ErrInsufficientContent = errors.New("insufficient content")

	// ErrUnsupportedKind indicates no extractor handles the document kind.
	ErrUnsupportedKind = errors.New("unsupported document kind")

	// ErrIndexNotBuilt indicates retrieval was attempted before the
	// vector index was built. This is a caller-ordering bug and is
	// returned loudly rather than masked.
	ErrIndexNotBuilt = errors.New("index not built")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Indexing and retrieval are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the language model is not configured.
	// Article sections fall back to deterministic templates.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrSearchUnavailable indicates the web search provider is not
	// configured. Source collection is disabled without it.
	ErrSearchUnavailable = errors.New("web search provider unavailable")
)
