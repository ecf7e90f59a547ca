package cdpdoc

import "strings"

// Platform identifies one of the supported CDP vendors.
type Platform string

// Supported platforms.
const (
	Segment   Platform = "segment"
	MParticle Platform = "mparticle"
	Lytics    Platform = "lytics"
	Zeotap    Platform = "zeotap"
)

// Platforms returns all supported platforms in their canonical order.
// Crawls, corpus loading and platform identification all follow this order.
func Platforms() []Platform {
	return []Platform{Segment, MParticle, Lytics, Zeotap}
}

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	switch p {
	case Segment, MParticle, Lytics, Zeotap:
		return true
	}
	return false
}

// ParsePlatform parses a platform name case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", Errorf(EINVALID, "unknown platform %q", s)
	}
	return p, nil
}

// SeedURLs maps each platform to the documentation root a full crawl starts from.
var SeedURLs = map[Platform]string{
	Segment:   "https://segment.com/docs/",
	MParticle: "https://docs.mparticle.com/",
	Lytics:    "https://docs.lytics.com/",
	Zeotap:    "https://docs.zeotap.com/",
}

// LiveURLs maps each platform to the landing page scraped by live lookups.
var LiveURLs = map[Platform]string{
	Segment:   "https://segment.com/docs/?ref=nav",
	MParticle: "https://docs.mparticle.com/",
	Lytics:    "https://docs.lytics.com/",
	Zeotap:    "https://docs.zeotap.com/home/en-us/",
}

// platformKeywords lists the words that identify a platform in a question.
var platformKeywords = map[Platform][]string{
	Segment:   {"segment"},
	MParticle: {"mparticle"},
	Lytics:    {"lytics"},
	Zeotap:    {"zeotap"},
}

// IdentifyPlatform returns the first platform, in Platforms order, whose
// keyword occurs in the question. The bool is false if none matches.
func IdentifyPlatform(question string) (Platform, bool) {
	q := strings.ToLower(question)
	for _, p := range Platforms() {
		for _, kw := range platformKeywords[p] {
			if strings.Contains(q, kw) {
				return p, true
			}
		}
	}
	return "", false
}
