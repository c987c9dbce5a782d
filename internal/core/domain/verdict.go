package domain

// CoverageStatus is the oracle's classification of a query.
type CoverageStatus string

// Available coverage statuses.
const (
	StatusCovered CoverageStatus = "covered"
	StatusPartial CoverageStatus = "partial"
	StatusGap     CoverageStatus = "gap"
)

// IsValid returns true if the status is recognised.
func (s CoverageStatus) IsValid() bool {
	switch s {
	case StatusCovered, StatusPartial, StatusGap:
		return true
	default:
		return false
	}
}

// Points returns the status contribution to the coverage score.
func (s CoverageStatus) Points() int {
	switch s {
	case StatusCovered:
		return 100
	case StatusPartial:
		return 50
	default:
		return 0
	}
}

// Label returns the upper-case label used in reports.
func (s CoverageStatus) Label() string {
	switch s {
	case StatusCovered:
		return "COVERED"
	case StatusPartial:
		return "PARTIAL"
	case StatusGap:
		return "GAP"
	default:
		return "UNKNOWN"
	}
}

// CoverageVerdict is the oracle's judgement of whether content answers a query.
// Nullable fields are nil when the oracle returned null or omitted them.
type CoverageVerdict struct {
	Query            string         `json:"query"`
	Status           CoverageStatus `json:"status"`
	Confidence       float64        `json:"confidence"`
	Evidence         *string        `json:"evidence"`
	EvidenceLocation *string        `json:"evidence_location"`
	GapDescription   *string        `json:"gap_description"`
	Recommendation   string         `json:"recommendation"`
}
