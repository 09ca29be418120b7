package render

import "strings"

const uploadsPrefix = "/uploads/"

// AssetURLRewriter moves asset URLs between the absolute development
// form (http://localhost:1337/uploads/...) and the relative production
// form (/uploads/...). URLs that do not point at asset storage pass
// through untouched.
type AssetURLRewriter struct {
	// DevBase is the absolute origin assets live under in development.
	DevBase string
	// Dev selects the absolute form; production uses the relative form.
	Dev bool
}

func (r AssetURLRewriter) Rewrite(url string) string {
	if url == "" {
		return url
	}
	devBase := strings.TrimSuffix(r.DevBase, "/")

	if r.Dev {
		if strings.HasPrefix(url, uploadsPrefix) && devBase != "" {
			return devBase + url
		}
		return url
	}

	if devBase != "" && strings.HasPrefix(url, devBase+uploadsPrefix) {
		return strings.TrimPrefix(url, devBase)
	}
	return url
}
