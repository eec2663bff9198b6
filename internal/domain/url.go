package domain

import (
	"net/url"
	"regexp"
	"strings"
)

// VideoRef is a platform-native video identifier recognized during
// normalization. It is what the thumbnail resolver keys its candidate chain
// on, and the only hostname knowledge the classifier relies on implicitly.
type VideoRef struct {
	Platform Platform
	ID       string
}

var (
	schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

	// YouTube identifier forms. The id charset is [A-Za-z0-9_-]; anything
	// after it (query, fragment, extra path) is noise.
	ytWatchRe  = regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]+)`)
	ytShortRe  = regexp.MustCompile(`(?:^|\.)youtu\.be$`)
	ytPathRe   = regexp.MustCompile(`^/(?:shorts|embed|live|v)/([A-Za-z0-9_-]+)`)
	ytShortIDs = regexp.MustCompile(`^/([A-Za-z0-9_-]+)`)

	// TikTok identifier forms: canonical /@user/video/<digits> and the
	// vm.tiktok.com/<code> short domain.
	ttVideoRe = regexp.MustCompile(`/video/(\d+)`)
	ttShortRe = regexp.MustCompile(`^(?:vm|vt)\.tiktok\.com$`)
	ttCodeRe  = regexp.MustCompile(`^/([A-Za-z0-9]+)`)
)

// Normalize canonicalizes raw user input into a well-formed absolute URL.
// It trims whitespace, defaults the scheme to https, and parses the result.
// No network access happens here.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", NewError(KindEmptyInput, "url is required")
	}

	if !schemeRe.MatchString(raw) {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", WrapError(KindMalformedURL, "invalid url", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", NewError(KindMalformedURL, "unsupported scheme: "+u.Scheme)
	}
	if u.Host == "" {
		return "", NewError(KindMalformedURL, "url has no hostname")
	}

	return u.String(), nil
}

// ExtractVideoRef pulls a platform-native video identifier out of a
// normalized URL. It returns nil when the URL carries no recognizable
// identifier; callers fall back to the catch-all platform.
func ExtractVideoRef(normalized string) *VideoRef {
	u, err := url.Parse(normalized)
	if err != nil {
		return nil
	}
	host := strings.ToLower(u.Hostname())

	switch {
	case hostMatches(host, "youtube.com"):
		if m := ytWatchRe.FindStringSubmatch(u.RequestURI()); m != nil {
			return &VideoRef{Platform: PlatformYouTube, ID: m[1]}
		}
		if m := ytPathRe.FindStringSubmatch(u.Path); m != nil {
			return &VideoRef{Platform: PlatformYouTube, ID: m[1]}
		}
	case ytShortRe.MatchString(host):
		if m := ytShortIDs.FindStringSubmatch(u.Path); m != nil {
			return &VideoRef{Platform: PlatformYouTube, ID: m[1]}
		}
	case ttShortRe.MatchString(host):
		if m := ttCodeRe.FindStringSubmatch(u.Path); m != nil {
			return &VideoRef{Platform: PlatformTikTok, ID: m[1]}
		}
	case hostMatches(host, "tiktok.com"):
		if m := ttVideoRe.FindStringSubmatch(u.Path); m != nil {
			return &VideoRef{Platform: PlatformTikTok, ID: m[1]}
		}
	}

	return nil
}

// hostMatches reports whether host is domain itself or a subdomain of it.
// A bare suffix check would also accept unrelated registrations like
// fakeyoutube.com.
func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// hostOf returns the lowercased hostname of a URL, or "" when unparseable.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
