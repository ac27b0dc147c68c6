package memory

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Provenance tags with a known default confidence. Any other tag is
// accepted and falls back to the neutral default.
const (
	ProvenanceUser = "user"
	ProvenanceWeb  = "web"
)

var defaultConfidence = map[string]float64{
	ProvenanceUser: 0.2,
	ProvenanceWeb:  0.8,
}

const fallbackConfidence = 0.5

// Fact is a single remembered statement. Facts are never physically
// removed; Deleted marks them excluded from matching while keeping the
// record for audit.
type Fact struct {
	ID         string         `json:"id"`
	Subject    string         `json:"subject"`
	Value      string         `json:"value"`
	Provenance string         `json:"provenance"`
	Confidence float64        `json:"confidence"`
	AddedAt    time.Time      `json:"added_at"`
	Notes      *string        `json:"notes"`
	Tags       []string       `json:"tags"`
	Deleted    bool           `json:"deleted"`
	Metadata   map[string]any `json:"metadata"`
	DeletedAt  *time.Time     `json:"deleted_at,omitempty"`
}

// FactDetails carries the optional fields of a new fact. The zero value
// is valid: a nil Confidence selects the provenance default.
type FactDetails struct {
	Confidence *float64
	Notes      *string
	Tags       []string
	Metadata   map[string]any
}

// NewFact builds a fact with a fresh ID and creation timestamp. An
// explicit confidence wins; otherwise user-stated facts get 0.2,
// web-derived facts 0.8, and anything else 0.5.
func NewFact(subject, value, provenance string, d FactDetails) *Fact {
	confidence := fallbackConfidence
	if c, ok := defaultConfidence[provenance]; ok {
		confidence = c
	}
	if d.Confidence != nil {
		confidence = *d.Confidence
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	metadata := d.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return &Fact{
		ID:         uuid.NewString(),
		Subject:    strings.TrimSpace(subject),
		Value:      strings.TrimSpace(value),
		Provenance: provenance,
		Confidence: confidence,
		AddedAt:    time.Now().UTC(),
		Notes:      d.Notes,
		Tags:       tags,
		Metadata:   metadata,
	}
}
