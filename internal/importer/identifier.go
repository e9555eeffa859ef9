package importer

import (
	"regexp"
	"strings"
)

// Ordered tower-number patterns: first match wins. Matching policy is data,
// not control flow, so the heuristics stay testable in isolation.
var towerNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\btorre\s*(?:no\.?\s*)?(\d+)`),
	regexp.MustCompile(`(?i)\bt-?(\d+)`),
	regexp.MustCompile(`^(\d{1,4})$`),
	regexp.MustCompile(`(?i)\bestructura\s*(\d+)`),
}

// ExtractTowerNumber pulls a tower number out of free text such as a KML
// placemark name ("Torre 15", "T-15", "T15", "015", "Torre No. 15" all yield
// "15"). Returns "" when no pattern matches; callers decide the fallback.
func ExtractTowerNumber(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	for _, re := range towerNumberPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return normalizeNumber(m[1])
		}
	}
	return ""
}

// normalizeNumber strips leading zeros so "015" and "15" resolve to the same
// natural key. All-zero input collapses to "0".
func normalizeNumber(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}
