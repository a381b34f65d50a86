package domain

import (
	"net/http"
	"path"
	"strings"
	"time"
)

// Visit is one recorded page load, feeding the SEO stats dashboard.
type Visit struct {
	ID         int64     `json:"id"`
	PageURL    string    `json:"page_url"`
	Referrer   string    `json:"referrer"`
	UserAgent  string    `json:"user_agent"`
	RemoteAddr string    `json:"-"`
	VisitedAt  time.Time `json:"visit_time"`
}

// PageCount is an aggregated visit count for one page.
type PageCount struct {
	PageURL string `json:"page_url"`
	Visits  int64  `json:"visits"`
}

// skippedPrefixes are request paths that are machine traffic, not page views.
var skippedPrefixes = []string{"/api", "/health", "/metrics"}

// skippedExtensions are static assets loaded alongside a page.
var skippedExtensions = map[string]struct{}{
	".js": {}, ".css": {}, ".map": {}, ".ico": {}, ".png": {}, ".jpg": {},
	".jpeg": {}, ".gif": {}, ".svg": {}, ".webp": {}, ".woff": {}, ".woff2": {},
	".ttf": {}, ".json": {}, ".txt": {}, ".mp4": {},
}

// ShouldRecordVisit is the single visit-logging policy: only successful GET
// page loads count, and API, probe, metrics, and asset requests never do.
func ShouldRecordVisit(method, requestPath string, status int) bool {
	if method != http.MethodGet {
		return false
	}
	if status >= http.StatusBadRequest {
		return false
	}
	for _, p := range skippedPrefixes {
		if requestPath == p || strings.HasPrefix(requestPath, p+"/") {
			return false
		}
	}
	if _, ok := skippedExtensions[strings.ToLower(path.Ext(requestPath))]; ok {
		return false
	}
	return true
}
