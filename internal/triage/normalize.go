package triage

import (
	"math"
	"strconv"
	"strings"
)

// featureFields declares which observation fields each feature recognizes.
// Sub-fields outside a feature's set are dropped during normalization.
type featureFields struct {
	yes    bool // reports via "yes" instead of "present"
	extent bool
	typed  bool // discharge type/amount qualifiers
}

var vocabulary = map[string]featureFields{
	FeatureRedness:             {extent: true},
	FeatureSwelling:            {extent: true},
	FeatureDressingLift:        {},
	FeatureDischarge:           {typed: true},
	FeatureExposedCatheter:     {},
	FeatureOpenWound:           {},
	FeatureBruising:            {},
	FeatureCrusting:            {},
	FeatureErythemaBorderSharp: {yes: true},
	FeatureFluctuance:          {},
}

// Confidence word scale accepted from the model alongside numeric values.
var confidenceWords = map[string]float64{
	"very low":  0.1,
	"low":       0.25,
	"medium":    0.5,
	"high":      0.75,
	"very high": 0.9,
	"certain":   1.0,
}

// Normalize converts an untrusted raw model response into a Document.
// It is total: any input, including nil or a non-record value, produces a
// valid document. If raw carries a "classification" record it is used;
// otherwise raw itself is read as the classification record, which makes
// normalization a no-op over its own output. Unknown feature keys and
// unrecognized sub-fields are dropped.
func Normalize(raw any) Document {
	doc := Default()

	rec, ok := raw.(map[string]any)
	if !ok {
		return doc
	}

	if cls, ok := rec["classification"].(map[string]any); ok {
		rec = cls
	}

	if label, ok := rec["label"].(string); ok {
		doc.Label = ParseLabel(label)
	}
	if v, ok := numeric(rec["risk_score"]); ok {
		doc.RiskScore = v
	}
	if s, ok := rec["explanation"].(string); ok {
		doc.Explanation = s
	}
	doc.OverallConfidence = Confidence(rec["overall_confidence"])
	doc.Features = normalizeFeatures(rec["features"])

	return doc
}

// Confidence coerces an arbitrary value to a confidence in [0,1].
// Numeric values are clamped; word-scale strings ("low", "high", ...) map to
// fixed values; numeric strings are parsed then clamped; everything else is 0.
func Confidence(v any) float64 {
	switch val := v.(type) {
	case float64, float32, int, int32, int64:
		n, _ := numeric(val)
		return clamp(n, 0, 1)
	case string:
		key := strings.ToLower(strings.TrimSpace(val))
		if c, ok := confidenceWords[key]; ok {
			return c
		}
		if n, err := strconv.ParseFloat(key, 64); err == nil {
			return clamp(n, 0, 1)
		}
	}
	return 0
}

func normalizeFeatures(v any) map[string]FeatureValue {
	features := map[string]FeatureValue{}

	rec, ok := v.(map[string]any)
	if !ok {
		return features
	}

	for name, fields := range vocabulary {
		entry, ok := rec[name].(map[string]any)
		if !ok {
			continue
		}
		features[name] = normalizeFeature(entry, fields)
	}

	return features
}

func normalizeFeature(entry map[string]any, fields featureFields) FeatureValue {
	var f FeatureValue

	detected, ok := boolField(entry, "present")
	if !ok {
		detected, ok = boolField(entry, "yes")
	}
	if ok {
		if fields.yes {
			f.Yes = &detected
		} else {
			f.Present = &detected
		}
	}

	if fields.extent {
		if n, ok := numeric(entry["extent_percent"]); ok {
			extent := clamp(n, 0, 100)
			f.ExtentPercent = &extent
		}
	}

	if fields.typed {
		if s, ok := entry["type"].(string); ok {
			f.Type = &s
		}
		if s, ok := entry["amount"].(string); ok {
			f.Amount = &s
		}
	}

	return f
}

func boolField(rec map[string]any, key string) (bool, bool) {
	b, ok := rec[key].(bool)
	return b, ok
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
