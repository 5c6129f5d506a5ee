// Package extractors provides implementations of the Extractor interface
// for the document kinds the collector encounters on the web. Each
// extractor fetches a URL and pulls out clean text for a specific kind.
//
// Extractors are registered with the Registry at startup.
package extractors
