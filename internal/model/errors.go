package model

import "errors"

// Error taxonomy. Document-level failures abort the whole run; claim-level
// failures downgrade that claim's verdict to unverifiable and the report
// still completes for all other claims.
var (
	// ErrUnreadablePDF means the input file is corrupt, encrypted, scanned
	// without a text layer, or otherwise yields no usable text. Fatal for the document.
	ErrUnreadablePDF = errors.New("unreadable PDF")

	// ErrExtractionFailure means claim extraction failed for every chunk of the
	// document, or the model output could not be parsed. Fatal for the document.
	ErrExtractionFailure = errors.New("claim extraction failed")

	// ErrSearchUnavailable means the search provider errored or rate-limited.
	// Local to one claim.
	ErrSearchUnavailable = errors.New("search unavailable")

	// ErrAdjudicationFailure means the verification model call failed or
	// returned unusable output. Local to one claim.
	ErrAdjudicationFailure = errors.New("adjudication failed")

	// ErrModelUnavailable means the language model provider is unreachable
	// (auth, rate limit, network). Propagates as whichever stage called it.
	ErrModelUnavailable = errors.New("model unavailable")
)
