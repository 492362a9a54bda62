package model

import (
	"fmt"
	"strings"
)

// Intent is a coarse classification of how likely a post is to be actionable.
type Intent string

const (
	IntentHigh   Intent = "High"
	IntentMedium Intent = "Medium"
	IntentLow    Intent = "Low"
)

func (i Intent) rank() int {
	switch i {
	case IntentHigh:
		return 2
	case IntentMedium:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether i is as strong as min.
func (i Intent) AtLeast(min Intent) bool {
	return i.rank() >= min.rank()
}

// ParseIntent accepts the tag names case-insensitively.
func ParseIntent(s string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return IntentHigh, nil
	case "medium":
		return IntentMedium, nil
	case "low", "":
		return IntentLow, nil
	default:
		return "", fmt.Errorf("unknown intent %q", s)
	}
}

// IntentRules holds the two ordered pattern lists used by Classify.
type IntentRules struct {
	High   []string
	Medium []string
}

// DefaultIntentRules returns the built-in pattern lists.
func DefaultIntentRules() IntentRules {
	return IntentRules{
		High: []string{
			"looking for", "recommend", "suggestion", "alternative to", "vs",
			"comparison", "review", "best", "help with", "how to", "pricing",
			"cost", "software",
		},
		Medium: []string{
			"issues with", "problem", "error", "question", "anyone used",
			"thoughts on", "experience with",
		},
	}
}

// Classify tests the lower-cased "title body" text against the High list, then
// the Medium list. Matching is plain substring containment.
func (r IntentRules) Classify(title, body string) Intent {
	text := strings.ToLower(title + " " + body)
	if containsAny(text, r.High) {
		return IntentHigh
	}
	if containsAny(text, r.Medium) {
		return IntentMedium
	}
	return IntentLow
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
