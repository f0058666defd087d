package util

import "net/url"

func TrimString(s string, length int) string {
	if len(s) <= length {
		return s
	}

	return s[:length]
}

// RedactURL blanks out the named query parameters so a URL can be logged
func RedactURL(rawURL string, parameters ...string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := parsed.Query()
	for _, parameter := range parameters {
		if query.Has(parameter) {
			query.Set(parameter, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
