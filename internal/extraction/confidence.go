package extraction

import "strings"

// Confidence scores are advisory metadata derived purely from the shape of
// an extracted value, never from the model itself. They do not gate whether
// a value is stored.
const (
	confidenceNone   = 0.0
	confidenceMedium = 0.60
	confidenceString = 0.75
	confidenceHigh   = 0.85
)

func boolConfidence(v *bool) float64 {
	if v == nil {
		return confidenceNone
	}
	return confidenceHigh
}

// intConfidence treats zero as "not specified": the extractor returns 0 for
// postings with no explicit experience phrase, so the value alone cannot
// distinguish "none required" from "unsaid".
func intConfidence(v *int) float64 {
	if v == nil || *v == 0 {
		return confidenceNone
	}
	return confidenceHigh
}

func stringConfidence(v *string) float64 {
	if v == nil {
		return confidenceNone
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" || strings.EqualFold(trimmed, "unknown") {
		return confidenceNone
	}
	return confidenceString
}

// listConfidence gives an explicitly-checked-but-empty list medium
// confidence: the model looked and found nothing, which is informative.
func listConfidence(v []string) float64 {
	if v == nil {
		return confidenceNone
	}
	if len(v) == 0 {
		return confidenceMedium
	}
	return confidenceHigh
}

func floatConfidence(v *float64) float64 {
	if v == nil {
		return confidenceNone
	}
	return confidenceHigh
}
