package analyzers

import (
	"context"

	"github.com/mmo-observer/mmo_uploader/models"
)

// StubAnalyzer stands in for the vision model and always returns the same
// inspection.
type StubAnalyzer struct{}

func NewStubAnalyzer() *StubAnalyzer {
	return &StubAnalyzer{}
}

func (a *StubAnalyzer) Analyze(_ context.Context, _ []byte) (models.AnalysisResult, error) {
	angle := 32.0
	dimensions := "Height ~3.2m, Width ~5.0m (rough estimate)"
	confidence := 0.78
	return models.AnalysisResult{
		Materials:    []string{"wood", "concrete"},
		Damage:       "minor",
		AngleDegrees: &angle,
		Dimensions:   &dimensions,
		Confidence:   &confidence,
		Summary:      "Wood framing on concrete slab; minor staining at base suggesting possible water ingress.",
	}, nil
}

var _ Analyzer = (*StubAnalyzer)(nil)
