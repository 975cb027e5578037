package judge

import (
	"encoding/json"
	"regexp"
	"strings"
)

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*\n?(.*?)\n?\\s*```")

// ExtractJSON pulls a JSON object or array out of model output that may
// carry preamble text or markdown code fences. Some models wrap their
// final JSON in explanatory prose even when asked not to.
func ExtractJSON(text string) string {
	stripped := strings.TrimSpace(text)

	// Fast path: already starts with { or [
	if strings.HasPrefix(stripped, "{") || strings.HasPrefix(stripped, "[") {
		return stripped
	}

	if m := codeFenceRe.FindStringSubmatch(stripped); m != nil {
		return strings.TrimSpace(m[1])
	}

	// Take everything from the first opening brace to the last closing one
	first := strings.IndexAny(stripped, "{[")
	if first >= 0 {
		candidate := stripped[first:]
		if last := strings.LastIndexAny(candidate, "}]"); last >= 0 {
			return candidate[:last+1]
		}
	}

	return stripped
}

// validator is implemented by all judge verdict types.
type validator interface {
	Validate() error
}

// decodeVerdict extracts and unmarshals a judge's final output into the
// given verdict type, then validates it.
func decodeVerdict(raw string, out validator) error {
	cleaned := ExtractJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return err
	}
	return out.Validate()
}
