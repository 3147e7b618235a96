package ruleset

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lzyyzznl/work-tools/internal/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type defaultsDoc struct {
	Version string        `yaml:"version"`
	Rules   []domain.Rule `yaml:"rules"`
}

// DefaultRules returns a fresh copy of the built-in rule set. The seed
// document is embedded; a parse failure is a build defect, hence the panic.
func DefaultRules() []domain.Rule {
	var doc defaultsDoc
	if err := yaml.Unmarshal(defaultsYAML, &doc); err != nil {
		panic(fmt.Sprintf("embedded default rules are invalid: %v", err))
	}

	rules := make([]domain.Rule, len(doc.Rules))
	for i, r := range doc.Rules {
		r.Origin = domain.OriginDefault
		r.MatchRules = domain.NormalizeMatchRules(r.MatchRules)
		rules[i] = r
	}
	return rules
}
