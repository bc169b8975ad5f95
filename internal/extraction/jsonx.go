package extraction

import (
	"encoding/json"
	"strconv"
	"strings"
)

// cleanModelOutput prepares raw LLM output for json.Unmarshal: it strips
// markdown code fences and cuts the first {...} span out of any leading or
// trailing commentary the model produced.
func cleanModelOutput(raw string) string {

	text := stripCodeFence(strings.TrimSpace(raw))

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		text = text[start : end+1]
	}
	return text
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	stripped := ""
	if idx := strings.Index(text, "\n"); idx != -1 {
		stripped = text[idx+1:]
	}
	if strings.HasSuffix(stripped, "```") {
		stripped = stripped[:strings.LastIndex(stripped, "```")]
	}
	return strings.TrimSpace(stripped)
}

// looseBool is a tri-state boolean that tolerates the string variants
// models emit ("true", "yes", "null", ...) in place of JSON literals.
type looseBool struct {
	Val *bool
}

func (b *looseBool) UnmarshalJSON(data []byte) error {

	// json.Unmarshal leaves a plain bool untouched on a null token, which
	// would read as an explicit false here
	if string(data) == "null" {
		b.Val = nil
		return nil
	}

	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		b.Val = &asBool
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		switch strings.ToLower(strings.TrimSpace(asString)) {
		case "true", "yes":
			b.Val = boolPtr(true)
		case "false", "no":
			b.Val = boolPtr(false)
		default:
			b.Val = nil
		}
		return nil
	}

	// null or anything unrecognized means "no signal", never an error
	b.Val = nil
	return nil
}

// looseInt tolerates numbers arriving as strings or floats.
type looseInt struct {
	Val *int
}

func (i *looseInt) UnmarshalJSON(data []byte) error {

	if string(data) == "null" {
		i.Val = nil
		return nil
	}

	var asFloat float64
	if err := json.Unmarshal(data, &asFloat); err == nil {
		v := int(asFloat)
		i.Val = &v
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if parsed, err := strconv.Atoi(strings.TrimSpace(asString)); err == nil {
			i.Val = &parsed
		}
		return nil
	}

	i.Val = nil
	return nil
}

// looseFloat tolerates numbers arriving as strings.
type looseFloat struct {
	Val *float64
}

func (f *looseFloat) UnmarshalJSON(data []byte) error {

	if string(data) == "null" {
		f.Val = nil
		return nil
	}

	var asFloat float64
	if err := json.Unmarshal(data, &asFloat); err == nil {
		f.Val = &asFloat
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(asString), 64); err == nil {
			f.Val = &parsed
		}
		return nil
	}

	f.Val = nil
	return nil
}

func boolPtr(v bool) *bool { return &v }
