package model

// VerdictStatus is the outcome of checking one claim against search evidence
type VerdictStatus string

const (
	// StatusVerified means multiple independent credible sources corroborate the claim as stated
	StatusVerified VerdictStatus = "verified"
	// StatusInaccurate means sources address the claim but the stated value differs
	// from what they report; CorrectValue must be populated
	StatusInaccurate VerdictStatus = "inaccurate"
	// StatusFalse means no relevant sources exist or sources directly contradict the claim
	StatusFalse VerdictStatus = "false"
	// StatusUnverifiable means a system error (search or model failure) prevented
	// adjudication. Never conflated with an evidence-based "false".
	StatusUnverifiable VerdictStatus = "unverifiable"
)

// Confidence grades how strongly the evidence supports the verdict
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Source is one cited source backing a verdict
type Source struct {
	Title     string        `json:"title"`
	URL       string        `json:"url"`
	Relevance string        `json:"relevance"`
	Authority AuthorityTier `json:"-"` // Local classification, not part of the output contract
}

// Verdict is the immutable result of adjudicating a single claim
type Verdict struct {
	Claim        Claim         `json:"-"`
	Status       VerdictStatus `json:"status"`
	Explanation  string        `json:"explanation"`
	CorrectValue *string       `json:"correct_value"`
	Confidence   Confidence    `json:"confidence"`
	Sources      []Source      `json:"sources"`
	IsMyth       bool          `json:"is_myth,omitempty"`     // Matched a known debunked myth
	IsOutdated   bool          `json:"is_outdated,omitempty"` // Data was correct once but has since changed
}

// ReportEntry is the externally visible JSON shape for one claim.
// This exact field set and value domains are the compatibility contract
// for downstream consumers.
type ReportEntry struct {
	Claim        string        `json:"claim"`
	ClaimType    ClaimType     `json:"claim_type"`
	Entities     []string      `json:"entities"`
	Status       VerdictStatus `json:"status"`
	Explanation  string        `json:"explanation"`
	CorrectValue *string       `json:"correct_value"`
	Confidence   Confidence    `json:"confidence"`
	Sources      []Source      `json:"sources"`
	IsMyth       bool          `json:"is_myth,omitempty"`
	IsOutdated   bool          `json:"is_outdated,omitempty"`
}

// Entry flattens the verdict into its report form
func (v Verdict) Entry() ReportEntry {
	entities := v.Claim.Entities
	if entities == nil {
		entities = []string{}
	}
	sources := v.Sources
	if sources == nil {
		sources = []Source{}
	}
	return ReportEntry{
		Claim:        v.Claim.Text,
		ClaimType:    v.Claim.Type,
		Entities:     entities,
		Status:       v.Status,
		Explanation:  v.Explanation,
		CorrectValue: v.CorrectValue,
		Confidence:   v.Confidence,
		Sources:      sources,
		IsMyth:       v.IsMyth,
		IsOutdated:   v.IsOutdated,
	}
}

// AuthorityTier classifies how authoritative a source is when weighing
// conflicting evidence
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Government, official filings, academic institutions
	TierSecondary AuthorityTier = 2 // Reputable news outlets, encyclopedias, fact-check sites
	TierTertiary  AuthorityTier = 3 // Blogs, forums, everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// ValidationResult contains the result of checking a cited source URL
type ValidationResult struct {
	URL          string        `json:"url"`
	IsAccessible bool          `json:"is_accessible"`
	StatusCode   int           `json:"status_code,omitempty"`
	RedirectURL  string        `json:"redirect_url,omitempty"`
	Authority    AuthorityTier `json:"authority"`
	Error        string        `json:"error,omitempty"`
}
