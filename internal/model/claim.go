package model

// Claim represents a discrete, checkable factual statement extracted from a document
type Claim struct {
	Text     string    `json:"text"`               // The claim exactly as stated in the document
	Type     ClaimType `json:"type"`               // Category of the claim
	Entities []string  `json:"entities,omitempty"` // Key entities involved (companies, people, places)
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeStatistic  ClaimType = "statistic"  // Percentages, counts, rates
	ClaimTypeDate       ClaimType = "date"       // Specific dates and timelines
	ClaimTypeFinancial  ClaimType = "financial"  // Revenue, prices, market caps, valuations
	ClaimTypeTechnical  ClaimType = "technical"  // Specifications and measurements
	ClaimTypeScientific ClaimType = "scientific" // Research findings
	ClaimTypeHistorical ClaimType = "historical" // Historical events with specific details
)

// KnownClaimTypes lists every recognized claim type in verification
// priority order (financial claims go stale fastest)
var KnownClaimTypes = []ClaimType{
	ClaimTypeFinancial,
	ClaimTypeStatistic,
	ClaimTypeDate,
	ClaimTypeTechnical,
	ClaimTypeScientific,
	ClaimTypeHistorical,
}

// IsValid reports whether the claim type is one of the recognized categories
func (t ClaimType) IsValid() bool {
	for _, known := range KnownClaimTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Priority returns the verification ordering rank for the type (lower goes first)
func (t ClaimType) Priority() int {
	for i, known := range KnownClaimTypes {
		if t == known {
			return i
		}
	}
	return len(KnownClaimTypes)
}

// Document is the ordered page-level text extracted from a PDF.
// It is immutable once built and discarded after claim extraction.
type Document struct {
	File  string   `json:"file"`  // Source file path
	Pages []string `json:"pages"` // Text per page, in page order
}

// TotalLen returns the combined character length of all pages
func (d Document) TotalLen() int {
	total := 0
	for _, p := range d.Pages {
		total += len(p)
	}
	return total
}

// SearchResult is one ranked result snippet returned by a search provider
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
