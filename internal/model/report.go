package model

import "time"

// Report is the complete fact-check result for one document.
// Verdicts preserve the claim extractor's emission order.
type Report struct {
	ID        string    `json:"id"`         // Unique run identifier
	File      string    `json:"file"`       // Source PDF path
	Pages     int       `json:"pages"`      // Page count of the source document
	CheckedAt time.Time `json:"checked_at"` // When the check completed

	Verdicts []Verdict     `json:"-"`
	Claims   []ReportEntry `json:"claims"`

	Stats Stats `json:"stats"`

	Validation []ValidationResult `json:"validation,omitempty"` // Source URL checks, if enabled
}

// Stats summarizes verdict counts for the document
type Stats struct {
	Total        int `json:"total"`
	Verified     int `json:"verified"`
	Inaccurate   int `json:"inaccurate"`
	False        int `json:"false"`
	Unverifiable int `json:"unverifiable"`
	Myths        int `json:"myths_detected"`
	Outdated     int `json:"outdated_detected"`
}

// BuildStats tallies verdict counts
func BuildStats(verdicts []Verdict) Stats {
	stats := Stats{Total: len(verdicts)}
	for _, v := range verdicts {
		switch v.Status {
		case StatusVerified:
			stats.Verified++
		case StatusInaccurate:
			stats.Inaccurate++
		case StatusUnverifiable:
			stats.Unverifiable++
		default:
			stats.False++
		}
		if v.IsMyth {
			stats.Myths++
		}
		if v.IsOutdated {
			stats.Outdated++
		}
	}
	return stats
}
