package normalize

import "strings"

// extractArray slices the JSON array candidate out of noisy model text.
// The start is the first "[{" (or the first "[" when there is none); the
// end is the last "}]" after it (or the last "]").
func extractArray(text string) (string, error) {
	start := strings.Index(text, "[{")
	if start < 0 {
		start = strings.Index(text, "[")
	}
	if start < 0 {
		return "", &NormalizationError{Kind: NoArrayFound, Detail: "response contains no '['"}
	}

	rest := text[start:]
	if end := strings.LastIndex(rest, "}]"); end >= 0 {
		return rest[:end+2], nil
	}
	if end := strings.LastIndex(rest, "]"); end >= 0 {
		return rest[:end+1], nil
	}
	return "", &NormalizationError{Kind: NoArrayEnd, Detail: "array is never closed"}
}
