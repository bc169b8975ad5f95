package linkedin

import (
	"net/url"
	"strings"
)

// NormalizeCompanyURL collapses every variant of a LinkedIn company URL
// (missing scheme, mixed-case host, trailing slashes, tracking parameters)
// into the canonical https://www.linkedin.com/company/<slug>/ form used as
// the company dedup key. It returns "" for anything that is not a LinkedIn
// company URL; malformed input never produces an error.
func NormalizeCompanyURL(raw string) string {

	stripped := strings.TrimSpace(raw)
	if stripped == "" {
		return ""
	}

	// the scheme, like the host, may arrive in any casing
	lowered := strings.ToLower(stripped)
	if !strings.HasPrefix(lowered, "http://") && !strings.HasPrefix(lowered, "https://") {
		stripped = "https://" + strings.TrimLeft(stripped, "/")
	}

	parsed, err := url.Parse(stripped)
	if err != nil {
		return ""
	}

	host := strings.ToLower(parsed.Host)
	if !strings.Contains(host, "linkedin.com") {
		return ""
	}

	var segments []string
	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	if len(segments) < 2 || segments[0] != "company" {
		return ""
	}

	slug := strings.Trim(segments[1], "/")
	if slug == "" {
		return ""
	}

	canonical := url.URL{
		Scheme: "https",
		Host:   "www.linkedin.com",
		Path:   "/company/" + slug + "/",
	}
	return canonical.String()
}
