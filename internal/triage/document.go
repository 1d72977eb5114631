// Package triage implements the classification contract for catheter-site
// analysis results. It defines the normalized classification document, the
// total normalizer that converts untrusted model output into that document,
// and the decision rules that derive a triage label from detected features.
package triage

import "strings"

// Label is the triage classification assigned to an analyzed site photo.
type Label string

// Canonical triage labels. Input matching is case-insensitive; anything
// outside this set normalizes to LabelUncertain.
const (
	LabelRed       Label = "red"
	LabelYellow    Label = "yellow"
	LabelGreen     Label = "green"
	LabelUncertain Label = "uncertain"
)

// Feature names form a closed vocabulary. Keys outside this set are dropped
// during normalization.
const (
	FeatureRedness             = "redness"
	FeatureSwelling            = "swelling"
	FeatureDressingLift        = "dressing_lift"
	FeatureDischarge           = "discharge"
	FeatureExposedCatheter     = "exposed_catheter"
	FeatureOpenWound           = "open_wound"
	FeatureBruising            = "bruising"
	FeatureCrusting            = "crusting"
	FeatureErythemaBorderSharp = "erythema_border_sharp"
	FeatureFluctuance          = "fluctuance"
)

// FeatureValue carries the recognized observation fields for a single feature.
// Most features report via Present; erythema_border_sharp reports via Yes.
// Nil fields were not supplied by the model.
type FeatureValue struct {
	Present       *bool    `json:"present,omitempty"`
	Yes           *bool    `json:"yes,omitempty"`
	ExtentPercent *float64 `json:"extent_percent,omitempty"`
	Type          *string  `json:"type,omitempty"`
	Amount        *string  `json:"amount,omitempty"`
}

// Detected reports whether the feature was positively observed.
// An absent or nil-valued feature always reads as not detected.
func (f FeatureValue) Detected() bool {
	if f.Present != nil {
		return *f.Present
	}
	if f.Yes != nil {
		return *f.Yes
	}
	return false
}

// Document is the normalized classification summary for one analysis.
// Every persisted analysis carries a Document, even when the external
// model call failed (the default document stands in).
type Document struct {
	Label             Label                   `json:"label"`
	RiskScore         float64                 `json:"risk_score"`
	Explanation       string                  `json:"explanation"`
	OverallConfidence float64                 `json:"overall_confidence"`
	Features          map[string]FeatureValue `json:"features"`
}

// Default returns the safe fallback document used when the model response
// is missing or unusable: uncertain label, zero confidence, no features.
func Default() Document {
	return Document{
		Label:    LabelUncertain,
		Features: map[string]FeatureValue{},
	}
}

// ParseLabel matches s case-insensitively against the canonical labels,
// returning LabelUncertain for anything unrecognized.
func ParseLabel(s string) Label {
	switch Label(strings.ToLower(strings.TrimSpace(s))) {
	case LabelRed:
		return LabelRed
	case LabelYellow:
		return LabelYellow
	case LabelGreen:
		return LabelGreen
	case LabelUncertain:
		return LabelUncertain
	}
	return LabelUncertain
}
