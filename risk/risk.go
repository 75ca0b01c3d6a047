// Package risk derives a tool's risk level from its name. Classification is
// a pure function of the name prefix and holds no state, so every place that
// surfaces tool metadata computes the same label.
package risk

import "strings"

// Level is a tool risk classification.
type Level string

const (
	Safe     Level = "SAFE"
	Moderate Level = "MODERATE_RISK"
	High     Level = "HIGH_RISK"
)

// Levels lists every level from least to most risky.
var Levels = []Level{Safe, Moderate, High}

// Classify returns the level for a tool name. Matching is case-sensitive
// against the name prefix only.
func Classify(name string) Level {
	switch {
	case strings.HasPrefix(name, "delete_"):
		return High
	case strings.HasPrefix(name, "create_"), strings.HasPrefix(name, "update_"):
		return Moderate
	default:
		return Safe
	}
}

// Label renders the description prefix for a level, e.g. "[HIGH_RISK] ".
func Label(l Level) string {
	return "[" + string(l) + "] "
}

// Describe prefixes desc with the label of name's level.
func Describe(name, desc string) string {
	return Label(Classify(name)) + desc
}

// ParseLevel accepts a level by its canonical value or by its lowercase
// category name ("safe", "moderate_risk", "high_risk").
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}
	return "", false
}

// Category is the lowercase key used in resource URIs.
func (l Level) Category() string {
	return strings.ToLower(string(l))
}

// Group buckets names by level, preserving input order within each bucket.
func Group(names []string) map[Level][]string {
	out := make(map[Level][]string, len(Levels))
	for _, n := range names {
		l := Classify(n)
		out[l] = append(out[l], n)
	}
	return out
}
