package media

import "strings"

// ResolveURL produces the displayable URL for a stored asset value. Absolute
// URLs pass through verbatim; root-relative paths are joined onto the
// configured base URL; anything else is treated as a relative path.
func ResolveURL(baseURL, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	base := strings.TrimRight(baseURL, "/")
	if strings.HasPrefix(value, "/") {
		return base + value
	}
	return base + "/" + value
}
