// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): web search, content extraction, embedding,
// vector search, language models, images, and storage.
package driven
