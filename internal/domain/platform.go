package domain

import (
	"regexp"
	"strings"
)

// Platform is the enumerated source-site classification of a bookmark.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformReddit    Platform = "reddit"
	PlatformPinterest Platform = "pinterest"
	PlatformSnapchat  Platform = "snapchat"
	PlatformFacebook  Platform = "facebook"

	// PlatformWeb is the catch-all default. Any value missing, empty or
	// outside the enumeration collapses to it.
	PlatformWeb Platform = "web"
)

// Platforms lists every member of the enumeration, web last.
func Platforms() []Platform {
	return []Platform{
		PlatformYouTube,
		PlatformInstagram,
		PlatformTikTok,
		PlatformTwitter,
		PlatformLinkedIn,
		PlatformReddit,
		PlatformPinterest,
		PlatformSnapchat,
		PlatformFacebook,
		PlatformWeb,
	}
}

// Valid reports whether p is a member of the enumeration.
func (p Platform) Valid() bool {
	switch p {
	case PlatformYouTube, PlatformInstagram, PlatformTikTok, PlatformTwitter,
		PlatformLinkedIn, PlatformReddit, PlatformPinterest, PlatformSnapchat,
		PlatformFacebook, PlatformWeb:
		return true
	}
	return false
}

// ParsePlatform normalizes an arbitrary string into a Platform.
// Unknown or empty values collapse to PlatformWeb, so consumers never see a
// value outside the enumeration.
func ParsePlatform(s string) Platform {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if p.Valid() {
		return p
	}
	return PlatformWeb
}

// Classify maps a server-supplied platform string plus the identifier
// extracted at normalization time to exactly one Platform.
//
// Precedence: a valid server value wins; otherwise a recognized video
// identifier implies its platform; otherwise web. Classify is idempotent:
// feeding its own output back yields the same tag.
func Classify(serverValue string, ref *VideoRef) Platform {
	if serverValue != "" {
		if p := Platform(strings.ToLower(strings.TrimSpace(serverValue))); p.Valid() {
			return p
		}
	}
	if ref != nil && ref.Platform.Valid() && ref.Platform != PlatformWeb {
		return ref.Platform
	}
	return PlatformWeb
}

// HostRule maps a hostname pattern to a platform for best-effort local
// detection before the server has answered.
type HostRule struct {
	Platform Platform
	Pattern  *regexp.Regexp
}

// Detector performs hostname-based platform detection. It only informs the
// immediate client-side preview; the server remains authoritative for the
// stored platform tag.
type Detector struct {
	rules []HostRule
}

// defaultHostRules covers the canonical domains of every enumerated platform.
var defaultHostRules = []HostRule{
	{PlatformYouTube, regexp.MustCompile(`(^|\.)(youtube\.com|youtu\.be)$`)},
	{PlatformTikTok, regexp.MustCompile(`(^|\.)tiktok\.com$`)},
	{PlatformInstagram, regexp.MustCompile(`(^|\.)instagram\.com$`)},
	{PlatformTwitter, regexp.MustCompile(`(^|\.)(twitter\.com|x\.com)$`)},
	{PlatformLinkedIn, regexp.MustCompile(`(^|\.)linkedin\.com$`)},
	{PlatformReddit, regexp.MustCompile(`(^|\.)reddit\.com$`)},
	{PlatformPinterest, regexp.MustCompile(`(^|\.)(pinterest\.[a-z.]+|pin\.it)$`)},
	{PlatformSnapchat, regexp.MustCompile(`(^|\.)snapchat\.com$`)},
	{PlatformFacebook, regexp.MustCompile(`(^|\.)(facebook\.com|fb\.watch)$`)},
}

// NewDetector builds a detector from the given rules. Extra rules are
// consulted before the built-in table so a rules file can override it.
func NewDetector(extra []HostRule) *Detector {
	rules := make([]HostRule, 0, len(extra)+len(defaultHostRules))
	rules = append(rules, extra...)
	rules = append(rules, defaultHostRules...)
	return &Detector{rules: rules}
}

// Detect returns the platform implied by the URL's hostname, or web when no
// rule matches or the URL cannot be parsed.
func (d *Detector) Detect(rawURL string) Platform {
	host := hostOf(rawURL)
	if host == "" {
		return PlatformWeb
	}
	for _, rule := range d.rules {
		if rule.Pattern.MatchString(host) {
			return rule.Platform
		}
	}
	return PlatformWeb
}
