package scraper

import (
	"regexp"
)

// BlockDetector recognizes anti-bot walls and CAPTCHA challenges in a
// response body so the fetcher can retry instead of handing a block page
// to the extractors.
type BlockDetector struct {
	markers []*regexp.Regexp
}

// NewBlockDetector creates a new block detector
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{
		markers: []*regexp.Regexp{
			regexp.MustCompile(`(?i)access denied`),
			regexp.MustCompile(`(?i)unusual traffic`),
			regexp.MustCompile(`(?i)verify you are (a )?human`),
			regexp.MustCompile(`(?i)are you a robot`),
			regexp.MustCompile(`(?i)enter the characters you see below`),
			regexp.MustCompile(`(?i)captcha`),
			regexp.MustCompile(`(?i)checking your browser`),
			regexp.MustCompile(`(?i)enable javascript and cookies to continue`),
			regexp.MustCompile(`(?i)too many requests`),
			regexp.MustCompile(`(?i)request blocked`),
			regexp.MustCompile(`(?i)ddos protection by`),
		},
	}
}

// Blocked reports whether the body looks like a bot wall, along with the
// marker that matched.
func (d *BlockDetector) Blocked(body []byte) (bool, string) {
	for _, marker := range d.markers {
		if marker.Match(body) {
			return true, marker.String()
		}
	}
	return false, ""
}
