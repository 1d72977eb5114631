package triage

import (
	"fmt"
	"strings"
)

// Decision thresholds. Confidence below uncertainConfidence always yields
// an uncertain label; risk at or above yellowRisk escalates from green, and
// at or above redRisk from yellow.
const (
	uncertainConfidence = 0.5
	yellowRisk          = 25.0
	redRisk             = 60.0
	maxRisk             = 100.0
)

type featureRule struct {
	name   string
	weight float64
	// extentWeight adds weight proportional to extent_percent when present.
	extentWeight float64
	finding      string
}

// Ordered so explanations read consistently run to run.
var featureRules = []featureRule{
	{FeatureDischarge, 15, 0, "discharge"},
	{FeatureExposedCatheter, 30, 0, "exposed catheter"},
	{FeatureOpenWound, 25, 0, "open wound"},
	{FeatureRedness, 10, 0.25, "redness"},
	{FeatureSwelling, 15, 0, "swelling"},
	{FeatureFluctuance, 20, 0, "fluctuance"},
	{FeatureDressingLift, 10, 0, "lifted dressing"},
	{FeatureErythemaBorderSharp, 10, 0, "sharply bordered erythema"},
	{FeatureBruising, 5, 0, "bruising"},
	{FeatureCrusting, 5, 0, "crusting"},
}

const purulentWeight = 40.0

// Score computes the additive risk score for the detected features,
// capped at maxRisk. Purulent discharge outweighs other discharge types.
func Score(features map[string]FeatureValue) float64 {
	var score float64

	for _, rule := range featureRules {
		f, ok := features[rule.name]
		if !ok || !f.Detected() {
			continue
		}

		weight := rule.weight
		if rule.name == FeatureDischarge && isPurulent(f) {
			weight = purulentWeight
		}

		score += weight
		if rule.extentWeight > 0 && f.ExtentPercent != nil {
			score += rule.extentWeight * *f.ExtentPercent
		}
	}

	if score > maxRisk {
		return maxRisk
	}
	return score
}

// Evaluate derives a triage label, risk score, and explanation from the
// detected features and the model's overall confidence. Purulent discharge
// and an exposed catheter force red regardless of score; low confidence
// forces uncertain.
func Evaluate(features map[string]FeatureValue, confidence float64) (Label, float64, string) {
	score := Score(features)

	if confidence < uncertainConfidence {
		return LabelUncertain, score, "Model confidence too low for a reliable assessment; retake the photo with better lighting and focus."
	}

	if f, ok := features[FeatureDischarge]; ok && f.Detected() && isPurulent(f) {
		return LabelRed, score, "Purulent discharge detected; seek clinical review urgently."
	}

	if f, ok := features[FeatureExposedCatheter]; ok && f.Detected() {
		return LabelRed, score, "Exposed catheter detected; seek clinical review urgently."
	}

	findings := describeFindings(features)

	switch {
	case score >= redRisk:
		return LabelRed, score, fmt.Sprintf("%s detected; seek clinical review urgently.", findings)
	case score >= yellowRisk:
		return LabelYellow, score, fmt.Sprintf("%s detected; caution advised, monitor closely.", findings)
	default:
		return LabelGreen, score, "No concerning features detected."
	}
}

// Derive fills in the label, risk score, and (if empty) explanation of a
// normalized document from its own features. It is the fallback path for
// model responses that carry features but no usable label.
func Derive(doc Document) Document {
	label, score, explanation := Evaluate(doc.Features, doc.OverallConfidence)

	doc.Label = label
	doc.RiskScore = score
	if doc.Explanation == "" {
		doc.Explanation = explanation
	}

	return doc
}

func isPurulent(f FeatureValue) bool {
	return f.Type != nil && strings.EqualFold(strings.TrimSpace(*f.Type), "purulent")
}

func describeFindings(features map[string]FeatureValue) string {
	var found []string
	for _, rule := range featureRules {
		if f, ok := features[rule.name]; ok && f.Detected() {
			found = append(found, rule.finding)
		}
	}

	if len(found) == 0 {
		return "No features"
	}

	described := strings.Join(found, ", ")
	return strings.ToUpper(described[:1]) + described[1:]
}
