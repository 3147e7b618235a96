package ruleset

import (
	"context"
	"testing"

	"github.com/lzyyzznl/work-tools/internal/domain"
)

func TestSplitPatterns(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a;b;c", []string{"a", "b", "c"}},
		{" a ; ;b;", []string{"a", "b"}},
		{"", nil},
		{";;;", nil},
		{"single", []string{"single"}},
	}

	for _, tt := range tests {
		got := SplitPatterns(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("SplitPatterns(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitPatterns(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestImportRows_AddsUnknownCodes(t *testing.T) {
	rs, _ := newTestRuleSet(t)
	ctx := context.Background()
	before := rs.Count()

	stats, err := rs.ImportRows(ctx, []Row{
		{Code: "NEW1", MatchRules: "p1;p2", ThirtyD: "Y"},
		{Code: "NEW2", MatchRules: "q1"},
	})
	if err != nil {
		t.Fatalf("ImportRows failed: %v", err)
	}
	if stats.Added != 2 || stats.Updated != 0 || stats.Skipped != 0 {
		t.Errorf("stats = %+v, want 2 added", stats)
	}
	if rs.Count() != before+2 {
		t.Errorf("rule count = %d, want %d", rs.Count(), before+2)
	}

	result := rs.Match("xx_p2_yy")
	if !result.Matched || result.MatchInfo.Code != "NEW1" {
		t.Errorf("imported rule not matching: %+v", result)
	}
}

func TestImportRows_UnionsIntoExistingUserRule(t *testing.T) {
	rs, _ := newTestRuleSet(t)
	ctx := context.Background()

	if _, err := rs.Add(ctx, domain.RuleDraft{Code: "U", MatchRules: []string{"a"}, ThirtyD: "N"}); err != nil {
		t.Fatal(err)
	}

	// New pattern appended, existing one not duplicated
	stats, err := rs.ImportRows(ctx, []Row{{Code: "U", MatchRules: "a;b", ThirtyD: "N"}})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Updated != 1 {
		t.Errorf("stats = %+v, want 1 updated", stats)
	}

	idx := rs.activeIndexByCode("U")
	got := rs.rules[idx].MatchRules
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("patterns after union = %v, want [a b]", got)
	}
}

func TestImportRows_SkipsWhenNothingChanges(t *testing.T) {
	rs, _ := newTestRuleSet(t)
	ctx := context.Background()

	if _, err := rs.Add(ctx, domain.RuleDraft{Code: "U", MatchRules: []string{"a"}, ThirtyD: "N"}); err != nil {
		t.Fatal(err)
	}

	stats, err := rs.ImportRows(ctx, []Row{{Code: "U", MatchRules: "a", ThirtyD: "N"}})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 1 || stats.Updated != 0 {
		t.Errorf("identical row must be skipped, stats = %+v", stats)
	}
}

func TestImportRows_FlagChangeCountsAsUpdate(t *testing.T) {
	rs, _ := newTestRuleSet(t)
	ctx := context.Background()

	if _, err := rs.Add(ctx, domain.RuleDraft{Code: "U", MatchRules: []string{"a"}, ThirtyD: "N"}); err != nil {
		t.Fatal(err)
	}

	stats, err := rs.ImportRows(ctx, []Row{{Code: "U", MatchRules: "a", ThirtyD: "Y"}})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Updated != 1 {
		t.Errorf("flag change must count as updated, stats = %+v", stats)
	}
}

func TestImportRows_MergingIntoDefaultShadowsIt(t *testing.T) {
	rs, _ := newTestRuleSet(t)
	ctx := context.Background()

	def := rs.Rules()[0]
	stats, err := rs.ImportRows(ctx, []Row{{
		Code:       def.Code,
		MatchRules: JoinPatterns(def.MatchRules) + ";brand-new",
		ThirtyD:    def.ThirtyD,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Updated != 1 {
		t.Errorf("stats = %+v, want 1 updated", stats)
	}

	ghost, err := rs.Get(def.ID)
	if err != nil {
		t.Fatal("default row must survive the merge")
	}
	if !ghost.Tombstoned() {
		t.Error("merged default must be tombstoned")
	}

	result := rs.Match("x brand-new x")
	if !result.Matched || result.MatchInfo.Code != def.Code {
		t.Errorf("shadowing user rule not matching: %+v", result)
	}
}

func TestImportRows_InvalidRowSkipped(t *testing.T) {
	rs, _ := newTestRuleSet(t)

	stats, err := rs.ImportRows(context.Background(), []Row{
		{Code: "", MatchRules: "a"},
		{Code: "OK", MatchRules: ";;"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Skipped != 2 || stats.Added != 0 {
		t.Errorf("invalid rows must be skipped, stats = %+v", stats)
	}
}

func TestExportRows_SkipsTombstones(t *testing.T) {
	rs, _ := newTestRuleSet(t)
	ctx := context.Background()

	def := rs.Rules()[0]
	if err := rs.Delete(ctx, def.ID); err != nil {
		t.Fatal(err)
	}

	for _, row := range rs.ExportRows() {
		if row.Code == def.Code {
			t.Errorf("tombstoned rule %s exported", def.Code)
		}
	}
}

func TestExportImport_JSONEnvelope(t *testing.T) {
	rs, _ := newTestRuleSet(t)
	ctx := context.Background()

	if _, err := rs.Add(ctx, domain.RuleDraft{Code: "KEEP", MatchRules: []string{"k"}}); err != nil {
		t.Fatal(err)
	}

	env := rs.Export()
	if env.Version == "" || len(env.Rules) != rs.Count() {
		t.Fatalf("bad envelope: %+v", env)
	}

	// Importing into a fresh set keeps its defaults and adopts user rules
	fresh, _ := newTestRuleSet(t)
	defaults := len(fresh.byOrigin(domain.OriginDefault))
	if err := fresh.Import(ctx, env); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(fresh.byOrigin(domain.OriginDefault)) != defaults {
		t.Error("import must keep current defaults")
	}
	if !fresh.Match("xxkxx").Matched {
		t.Error("imported user rule not active")
	}
}
