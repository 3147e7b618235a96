package domain

import "strings"

// RuleOrigin identifies where a rule came from
type RuleOrigin string

const (
	// OriginDefault rules ship built in and can only be tombstoned, never removed
	OriginDefault RuleOrigin = "default"

	// OriginUser rules are added or edited by the operator
	OriginUser RuleOrigin = "user"
)

// IsValid checks if the origin is a known value
func (o RuleOrigin) IsValid() bool {
	switch o {
	case OriginDefault, OriginUser:
		return true
	}
	return false
}

// Rule pairs a classification code with one or more literal substring patterns.
// A default rule whose MatchRules is empty is a tombstone: it is invisible to
// matching but keeps its row so reset-to-default can restore it.
type Rule struct {
	// ID is an opaque unique identifier
	ID string `json:"id" yaml:"id" mapstructure:"id"`

	// Code is the classification label, unique among active rules
	Code string `json:"code" yaml:"code" mapstructure:"code"`

	// MatchRules are literal substrings tried in order
	MatchRules []string `json:"matchRules" yaml:"matchRules" mapstructure:"matchRules"`

	// ThirtyD is the 30-day marker: "Y", "N" or empty
	ThirtyD string `json:"thirtyD,omitempty" yaml:"thirtyD,omitempty" mapstructure:"thirtyD"`

	// Origin records whether this is a built-in or a user rule
	Origin RuleOrigin `json:"origin" yaml:"origin" mapstructure:"origin"`
}

// Tombstoned reports whether the rule has been soft-deleted
func (r Rule) Tombstoned() bool {
	return len(r.MatchRules) == 0
}

// NormalizeMatchRules trims every pattern and drops empties, preserving order
func NormalizeMatchRules(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidThirtyD reports whether the marker is one of "Y", "N" or empty
func ValidThirtyD(v string) bool {
	return v == "Y" || v == "N" || v == ""
}

// RuleDraft carries the operator-supplied fields of a new rule
type RuleDraft struct {
	Code       string
	MatchRules []string
	ThirtyD    string
}

// RulePatch carries a partial update; nil fields are left untouched
type RulePatch struct {
	Code       *string
	MatchRules []string
	ThirtyD    *string
}

// MatchInfo describes which rule and pattern matched a filename
type MatchInfo struct {
	// RuleIndex is the position of the rule in evaluation order
	RuleIndex int `json:"ruleIndex"`

	// Code is the matching rule's classification code
	Code string `json:"code"`

	// ThirtyD is the matching rule's 30-day marker
	ThirtyD string `json:"thirtyD,omitempty"`

	// MatchedRule is the pattern that matched
	MatchedRule string `json:"matchedRule"`
}

// MatchResult is the outcome of evaluating a filename against the rule set
type MatchResult struct {
	Matched   bool       `json:"matched"`
	MatchInfo *MatchInfo `json:"matchInfo,omitempty"`
}
