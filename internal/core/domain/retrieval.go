package domain

// RetrievalResult is a single nearest-neighbour hit for a query,
// produced per retrieval and discarded afterwards.
type RetrievalResult struct {
	// Record is the matched source record.
	Record SourceRecord

	// Distance is the L2 distance between query and record embeddings.
	Distance float64

	// Similarity is the distance converted to (0,1] via 1/(1+distance).
	Similarity float64

	// Confident is true when Similarity meets the confidence threshold.
	Confident bool
}

// Confidence labels attached to query results.
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// QueryResult is the outcome of one retrieval-augmented question.
type QueryResult struct {
	// Question is the question as asked.
	Question string

	// Answer is the generated text, or a templated refusal when the
	// confidence gate failed, or an in-band error string when the
	// language model failed.
	Answer string

	// Sources lists the metadata of the records used as context.
	Sources []SourceMetadata

	// Confidence is "high" or "low".
	Confidence string

	// ValidationPassed is false when the confidence gate refused to
	// answer. A false value always carries a refusal in Answer, never
	// generated content.
	ValidationPassed bool
}
