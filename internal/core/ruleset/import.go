package ruleset

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lzyyzznl/work-tools/internal/domain"
)

// Row is the tabular shape exchanged with the spreadsheet codec: one rule
// per row, patterns joined with semicolons.
type Row struct {
	Code       string `json:"code"`
	MatchRules string `json:"matchRules"`
	ThirtyD    string `json:"thirtyD"`
}

// ImportStats accounts for what an import actually changed
type ImportStats struct {
	Added   int
	Updated int
	Skipped int
}

// SplitPatterns splits a semicolon-joined pattern cell, trimming each
// segment and dropping empties
func SplitPatterns(cell string) []string {
	return domain.NormalizeMatchRules(strings.Split(cell, ";"))
}

// JoinPatterns is the inverse of SplitPatterns
func JoinPatterns(patterns []string) string {
	return strings.Join(patterns, ";")
}

// ExportRows converts the active rules to tabular rows. Tombstones are
// skipped; they carry nothing worth exporting.
func (rs *RuleSet) ExportRows() []Row {
	var rows []Row
	for _, r := range rs.rules {
		if r.Tombstoned() {
			continue
		}
		rows = append(rows, Row{
			Code:       r.Code,
			MatchRules: JoinPatterns(r.MatchRules),
			ThirtyD:    r.ThirtyD,
		})
	}
	return rows
}

// ImportRows merges tabular rows into the rule set. A row whose code matches
// an existing active rule unions its patterns into that rule; the row counts
// as updated only when the union added a pattern or changed the thirtyD
// marker, else as skipped. Unknown codes become new user rules. Rows that
// fail validation are skipped.
func (rs *RuleSet) ImportRows(ctx context.Context, rows []Row) (ImportStats, error) {
	var stats ImportStats

	for _, row := range rows {
		code := strings.TrimSpace(row.Code)
		patterns := SplitPatterns(row.MatchRules)
		if len(validate(code, patterns, row.ThirtyD)) > 0 {
			stats.Skipped++
			continue
		}

		idx := rs.activeIndexByCode(code)
		if idx == -1 {
			rs.rules = append(rs.rules, domain.Rule{
				ID:         "user-" + uuid.NewString(),
				Code:       code,
				MatchRules: patterns,
				ThirtyD:    row.ThirtyD,
				Origin:     domain.OriginUser,
			})
			stats.Added++
			continue
		}

		existing := rs.rules[idx]
		union := append([]string{}, existing.MatchRules...)
		grew := false
		for _, p := range patterns {
			if !contains(union, p) {
				union = append(union, p)
				grew = true
			}
		}

		if !grew && existing.ThirtyD == row.ThirtyD {
			stats.Skipped++
			continue
		}

		if existing.Origin == domain.OriginDefault {
			// Merging into a default shadows it instead of mutating it
			rs.rules = append(rs.rules, domain.Rule{
				ID:         "user-" + uuid.NewString(),
				Code:       code,
				MatchRules: union,
				ThirtyD:    row.ThirtyD,
				Origin:     domain.OriginUser,
			})
			rs.rules[idx].MatchRules = nil
		} else {
			rs.rules[idx].MatchRules = union
			rs.rules[idx].ThirtyD = row.ThirtyD
		}
		stats.Updated++
	}

	if err := rs.Save(ctx); err != nil {
		return stats, err
	}
	rs.log.Info("rules imported",
		"added", stats.Added, "updated", stats.Updated, "skipped", stats.Skipped)
	return stats, nil
}

func (rs *RuleSet) activeIndexByCode(code string) int {
	for i, r := range rs.rules {
		if r.Code == code && !r.Tombstoned() {
			return i
		}
	}
	return -1
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Envelope is the version-stamped JSON export shape
type Envelope struct {
	Version    string        `json:"version"`
	ExportTime time.Time     `json:"exportTime"`
	Rules      []domain.Rule `json:"rules"`
}

// Export returns all rules, tombstones included, in an envelope
func (rs *RuleSet) Export() Envelope {
	return Envelope{
		Version:    configVersion,
		ExportTime: time.Now(),
		Rules:      rs.Rules(),
	}
}

// Import replaces the user rules with the user rules of the envelope while
// keeping the current defaults untouched
func (rs *RuleSet) Import(ctx context.Context, env Envelope) error {
	kept := rs.byOrigin(domain.OriginDefault)
	for _, r := range env.Rules {
		if r.Origin == domain.OriginUser {
			kept = append(kept, r)
		}
	}
	rs.rules = kept
	return rs.Save(ctx)
}
