package candidate

import "strings"

// DecodeExperience decodes an experience entry that upstream serialised as
// "@{key1=value1; key2=value2}". Any entry that is not a string is returned
// unchanged, so decoding is idempotent.
func DecodeExperience(entry any) any {
	s, ok := entry.(string)
	if !ok {
		return entry
	}
	return DecodeExperienceString(s)
}

// DecodeExperienceString parses the "@{k=v; ...}" micro-format. The wrapping
// "@{" and "}" are optional. Pieces without "=" and pairs with an empty key
// or value are dropped; a value may itself contain "=".
func DecodeExperienceString(s string) map[string]string {
	body := strings.TrimSpace(s)
	body = strings.TrimPrefix(body, "@{")
	body = strings.TrimSuffix(body, "}")

	parsed := make(map[string]string)
	for _, piece := range strings.Split(body, ";") {
		key, value, found := strings.Cut(piece, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}

		parsed[key] = value
	}

	return parsed
}
