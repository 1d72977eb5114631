package analyses

import (
	"testing"

	"github.com/jtgreer/vigil/internal/triage"
)

func TestResolveDocument(t *testing.T) {
	t.Run("degraded keeps safe default", func(t *testing.T) {
		doc := resolveDocument(nil, true)

		if doc.Label != triage.LabelUncertain {
			t.Errorf("label = %q, want uncertain", doc.Label)
		}
		if doc.OverallConfidence != 0 {
			t.Errorf("confidence = %v, want 0", doc.OverallConfidence)
		}
		if doc.Explanation != "" {
			t.Errorf("explanation = %q, want empty", doc.Explanation)
		}
		if len(doc.Features) != 0 {
			t.Errorf("features = %v, want empty", doc.Features)
		}
	})

	t.Run("model label is authoritative", func(t *testing.T) {
		raw := map[string]any{
			"classification": map[string]any{
				"label":              "RED",
				"risk_score":         85.0,
				"overall_confidence": 0.9,
			},
		}

		doc := resolveDocument(raw, false)

		if doc.Label != triage.LabelRed {
			t.Errorf("label = %q, want red", doc.Label)
		}
		if doc.RiskScore != 85 {
			t.Errorf("risk score = %v, want 85", doc.RiskScore)
		}
	})

	t.Run("missing label derived from features", func(t *testing.T) {
		raw := map[string]any{
			"classification": map[string]any{
				"overall_confidence": 0.9,
				"features": map[string]any{
					"discharge": map[string]any{"present": true, "type": "purulent"},
				},
			},
		}

		doc := resolveDocument(raw, false)

		if doc.Label != triage.LabelRed {
			t.Errorf("label = %q, want red from purulent discharge", doc.Label)
		}
		if doc.Explanation == "" {
			t.Error("derived explanation missing")
		}
	})

	t.Run("low confidence stays uncertain", func(t *testing.T) {
		raw := map[string]any{
			"classification": map[string]any{
				"label":              "green",
				"overall_confidence": 0.2,
			},
		}

		doc := resolveDocument(raw, false)

		// Explicit model label wins even at low confidence; derivation only
		// runs when the label is unusable.
		if doc.Label != triage.LabelGreen {
			t.Errorf("label = %q, want green", doc.Label)
		}
	})
}
