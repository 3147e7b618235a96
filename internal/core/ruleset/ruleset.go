// Package ruleset manages the ordered classification rules and evaluates
// filenames against them. Defaults come first in their seeded order, then
// user rules in insertion order; matching is first-match-wins.
package ruleset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lzyyzznl/work-tools/internal/domain"
	"github.com/lzyyzznl/work-tools/internal/logger"
	"github.com/lzyyzznl/work-tools/internal/storage"
)

// configVersion stamps the persisted rule document
const configVersion = "1.0"

// RuleSet owns the ordered rules and their persistence
type RuleSet struct {
	rules []domain.Rule
	store storage.Store
	log   logger.Logger
}

// persistedConfig is the JSON shape stored under storage.KeyRules. Default
// and user rules are kept apart so reset-to-default stays possible.
type persistedConfig struct {
	Version string `json:"version"`
	Rules   struct {
		Default []domain.Rule `json:"default"`
		User    []domain.Rule `json:"user"`
	} `json:"rules"`
}

// New creates a rule set backed by the given store
func New(store storage.Store, log logger.Logger) *RuleSet {
	if log == nil {
		log = &logger.NullLogger{}
	}
	return &RuleSet{store: store, log: log}
}

// Load reads rules from the store. A missing key seeds the defaults and
// persists them; a corrupt or failing load falls back to the defaults
// without failing the caller.
func (rs *RuleSet) Load(ctx context.Context) error {
	data, err := rs.store.Get(ctx, storage.KeyRules)
	if errors.Is(err, domain.ErrKeyNotFound) {
		rs.rules = DefaultRules()
		return rs.Save(ctx)
	}
	if err != nil {
		rs.log.Warn("failed to load rules, using defaults", "error", err)
		rs.rules = DefaultRules()
		return nil
	}

	var cfg persistedConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		rs.log.Warn("stored rules are corrupt, using defaults", "error", err)
		rs.rules = DefaultRules()
		return nil
	}

	rs.rules = append(append([]domain.Rule{}, cfg.Rules.Default...), cfg.Rules.User...)
	return nil
}

// Save persists the current rules
func (rs *RuleSet) Save(ctx context.Context) error {
	var cfg persistedConfig
	cfg.Version = configVersion
	cfg.Rules.Default = rs.byOrigin(domain.OriginDefault)
	cfg.Rules.User = rs.byOrigin(domain.OriginUser)

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := rs.store.Set(ctx, storage.KeyRules, data); err != nil {
		return fmt.Errorf("failed to save rules: %w", err)
	}
	return nil
}

// Rules returns the rules in evaluation order
func (rs *RuleSet) Rules() []domain.Rule {
	out := make([]domain.Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Count returns the number of rules, tombstones included
func (rs *RuleSet) Count() int {
	return len(rs.rules)
}

func (rs *RuleSet) byOrigin(origin domain.RuleOrigin) []domain.Rule {
	var out []domain.Rule
	for _, r := range rs.rules {
		if r.Origin == origin {
			out = append(out, r)
		}
	}
	return out
}

// Get returns the rule with the given id
func (rs *RuleSet) Get(id string) (domain.Rule, error) {
	for _, r := range rs.rules {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Rule{}, domain.ErrRuleNotFound
}

// Match evaluates a filename against the rules in evaluation order and
// returns the first hit. The containment check is a case-sensitive literal
// substring test; no longest-match or best-match semantics apply.
func (rs *RuleSet) Match(filename string) domain.MatchResult {
	for i, rule := range rs.rules {
		// Tombstoned rules are invisible to matching
		if rule.Tombstoned() {
			continue
		}
		for _, pattern := range rule.MatchRules {
			if pattern != "" && strings.Contains(filename, pattern) {
				return domain.MatchResult{
					Matched: true,
					MatchInfo: &domain.MatchInfo{
						RuleIndex:   i,
						Code:        rule.Code,
						ThirtyD:     rule.ThirtyD,
						MatchedRule: pattern,
					},
				}
			}
		}
	}
	return domain.MatchResult{Matched: false}
}

// validate collects every violation of a draft, not just the first
func validate(code string, matchRules []string, thirtyD string) []string {
	var violations []string
	if strings.TrimSpace(code) == "" {
		violations = append(violations, "code cannot be empty")
	}
	if len(domain.NormalizeMatchRules(matchRules)) == 0 {
		violations = append(violations, "at least one non-empty match rule is required")
	}
	if !domain.ValidThirtyD(thirtyD) {
		violations = append(violations, `thirtyD marker must be "Y", "N" or empty`)
	}
	return violations
}

// codeInUse reports whether code belongs to another active rule. excludeID
// skips a specific rule; excludeDefaultCode skips default rules with that
// code (the case of a default being shadowed by its own edit).
func (rs *RuleSet) codeInUse(code, excludeID, excludeDefaultCode string) bool {
	for _, r := range rs.rules {
		if r.Code != code || r.Tombstoned() {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if excludeDefaultCode != "" && r.Code == excludeDefaultCode && r.Origin == domain.OriginDefault {
			continue
		}
		return true
	}
	return false
}

// Add validates and appends a user rule, then persists
func (rs *RuleSet) Add(ctx context.Context, draft domain.RuleDraft) (domain.Rule, error) {
	if violations := validate(draft.Code, draft.MatchRules, draft.ThirtyD); len(violations) > 0 {
		return domain.Rule{}, domain.NewValidationError(violations)
	}

	code := strings.TrimSpace(draft.Code)
	if rs.codeInUse(code, "", "") {
		return domain.Rule{}, &domain.DuplicateCodeError{Code: code}
	}

	rule := domain.Rule{
		ID:         "user-" + uuid.NewString(),
		Code:       code,
		MatchRules: domain.NormalizeMatchRules(draft.MatchRules),
		ThirtyD:    draft.ThirtyD,
		Origin:     domain.OriginUser,
	}
	rs.rules = append(rs.rules, rule)

	if err := rs.Save(ctx); err != nil {
		return rule, err
	}
	rs.log.Info("rule added", "code", rule.Code, "id", rule.ID)
	return rule, nil
}

// Update applies a patch to a rule. Editing a default rule never mutates it:
// a new user rule carrying the merged fields is appended and the default is
// tombstoned, which shadows it while keeping reset-to-default possible.
func (rs *RuleSet) Update(ctx context.Context, id string, patch domain.RulePatch) (domain.Rule, error) {
	idx := -1
	for i, r := range rs.rules {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.Rule{}, domain.ErrRuleNotFound
	}

	current := rs.rules[idx]
	merged := current
	if patch.Code != nil {
		merged.Code = strings.TrimSpace(*patch.Code)
	}
	if patch.MatchRules != nil {
		merged.MatchRules = domain.NormalizeMatchRules(patch.MatchRules)
	}
	if patch.ThirtyD != nil {
		merged.ThirtyD = *patch.ThirtyD
	}

	if violations := validate(merged.Code, merged.MatchRules, merged.ThirtyD); len(violations) > 0 {
		return domain.Rule{}, domain.NewValidationError(violations)
	}

	// Duplicate check excludes the rule being edited: by id for user rules,
	// by same-code default for a default being shadowed
	if current.Origin == domain.OriginDefault {
		if rs.codeInUse(merged.Code, "", current.Code) {
			return domain.Rule{}, &domain.DuplicateCodeError{Code: merged.Code}
		}
	} else {
		if rs.codeInUse(merged.Code, id, "") {
			return domain.Rule{}, &domain.DuplicateCodeError{Code: merged.Code}
		}
	}

	if current.Origin == domain.OriginDefault {
		override := merged
		override.ID = "user-" + uuid.NewString()
		override.Origin = domain.OriginUser
		rs.rules = append(rs.rules, override)

		// Tombstone the default in place
		rs.rules[idx].MatchRules = nil

		if err := rs.Save(ctx); err != nil {
			return override, err
		}
		rs.log.Info("default rule shadowed", "code", override.Code, "id", override.ID)
		return override, nil
	}

	rs.rules[idx] = merged
	if err := rs.Save(ctx); err != nil {
		return merged, err
	}
	rs.log.Info("rule updated", "code", merged.Code, "id", merged.ID)
	return merged, nil
}

// Delete tombstones a default rule and physically removes a user rule
func (rs *RuleSet) Delete(ctx context.Context, id string) error {
	for i, r := range rs.rules {
		if r.ID != id {
			continue
		}
		if r.Origin == domain.OriginDefault {
			rs.rules[i].MatchRules = nil
		} else {
			rs.rules = append(rs.rules[:i], rs.rules[i+1:]...)
		}
		return rs.Save(ctx)
	}
	return domain.ErrRuleNotFound
}

// ResetToDefault discards all rules and reseeds the built-in set
func (rs *RuleSet) ResetToDefault(ctx context.Context) error {
	rs.rules = DefaultRules()
	rs.log.Info("rules reset to defaults", "count", len(rs.rules))
	return rs.Save(ctx)
}
