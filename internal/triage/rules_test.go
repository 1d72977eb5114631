package triage_test

import (
	"strings"
	"testing"

	"github.com/jtgreer/vigil/internal/triage"
)

func ptr[T any](v T) *T { return &v }

func feature(present bool) triage.FeatureValue {
	return triage.FeatureValue{Present: ptr(present)}
}

func TestScoreCapsAtHundred(t *testing.T) {
	features := map[string]triage.FeatureValue{
		triage.FeatureDischarge:    {Present: ptr(true), Type: ptr("purulent")},
		triage.FeatureRedness:      {Present: ptr(true), ExtentPercent: ptr(80.0)},
		triage.FeatureSwelling:     feature(true),
		triage.FeatureDressingLift: feature(true),
		triage.FeatureOpenWound:    feature(true),
	}

	if got := triage.Score(features); got != 100 {
		t.Errorf("score = %v, want 100", got)
	}
}

func TestEvaluateRedForPurulent(t *testing.T) {
	features := map[string]triage.FeatureValue{
		triage.FeatureDischarge: {Present: ptr(true), Type: ptr("Purulent")},
		triage.FeatureRedness:   feature(false),
		triage.FeatureSwelling:  feature(false),
	}

	label, _, explanation := triage.Evaluate(features, 0.9)

	if label != triage.LabelRed {
		t.Errorf("label = %q, want red", label)
	}
	if !strings.Contains(explanation, "Purulent") {
		t.Errorf("explanation = %q, want purulent mention", explanation)
	}
}

func TestEvaluateRedForExposedCatheter(t *testing.T) {
	features := map[string]triage.FeatureValue{
		triage.FeatureExposedCatheter: feature(true),
	}

	label, _, _ := triage.Evaluate(features, 0.9)

	if label != triage.LabelRed {
		t.Errorf("label = %q, want red", label)
	}
}

func TestEvaluateUncertainForLowConfidence(t *testing.T) {
	features := map[string]triage.FeatureValue{
		triage.FeatureDischarge: feature(false),
		triage.FeatureRedness:   feature(false),
	}

	label, _, _ := triage.Evaluate(features, 0.3)

	if label != triage.LabelUncertain {
		t.Errorf("label = %q, want uncertain", label)
	}
}

func TestEvaluateYellowFromRiskScore(t *testing.T) {
	features := map[string]triage.FeatureValue{
		triage.FeatureDischarge: feature(false),
		triage.FeatureRedness:   {Present: ptr(true), ExtentPercent: ptr(60.0)},
		triage.FeatureSwelling:  feature(true),
	}

	label, score, _ := triage.Evaluate(features, 0.9)

	if label != triage.LabelYellow {
		t.Errorf("label = %q, want yellow", label)
	}
	if score < 25 {
		t.Errorf("score = %v, want >= 25", score)
	}
}

func TestEvaluateGreenWhenClean(t *testing.T) {
	features := map[string]triage.FeatureValue{
		triage.FeatureRedness:  feature(false),
		triage.FeatureSwelling: feature(false),
	}

	label, score, _ := triage.Evaluate(features, 0.9)

	if label != triage.LabelGreen {
		t.Errorf("label = %q, want green", label)
	}
	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
}

func TestDerive(t *testing.T) {
	t.Run("fills label and score from features", func(t *testing.T) {
		doc := triage.Default()
		doc.OverallConfidence = 0.9
		doc.Features = map[string]triage.FeatureValue{
			triage.FeatureSwelling:   feature(true),
			triage.FeatureFluctuance: feature(true),
		}

		derived := triage.Derive(doc)

		if derived.Label != triage.LabelYellow {
			t.Errorf("label = %q, want yellow", derived.Label)
		}
		if derived.RiskScore != 35 {
			t.Errorf("score = %v, want 35", derived.RiskScore)
		}
		if derived.Explanation == "" {
			t.Error("explanation not filled")
		}
	})

	t.Run("keeps existing explanation", func(t *testing.T) {
		doc := triage.Default()
		doc.OverallConfidence = 0.9
		doc.Explanation = "model supplied rationale"

		derived := triage.Derive(doc)

		if derived.Explanation != "model supplied rationale" {
			t.Errorf("explanation = %q, want model supplied rationale", derived.Explanation)
		}
	})
}
