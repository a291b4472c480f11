// Package settings loads the workflow configuration: the outcome rule table,
// the fallback classifier selection, and the validation vocabularies. The
// file format is YAML so operators can review rule changes in version control
// instead of editing them live in the CRM.
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"crmsync/internal/reconcile/rules"
	platformstrings "crmsync/pkg/platform/strings"
)

// Classifier selection values.
const (
	ClassifierLegacy = "legacy"
	ClassifierStrict = "strict"
)

// Settings is the full decoded configuration file.
type Settings struct {
	// Classifier selects the keyword fallback order: "legacy" preserves the
	// inherited precedence where "interested" shadows "not interested",
	// "strict" corrects it. Empty means legacy.
	Classifier string `yaml:"classifier"`

	// WonStage, when non-empty, enables account promotion for prospects
	// reconciled into this stage.
	WonStage string `yaml:"won_stage"`

	Validation Validation    `yaml:"validation"`
	Rules      []rules.Entry `yaml:"rules"`
}

// Validation lists the allowed vocabulary for rule statuses and stages. An
// empty list disables the corresponding check.
type Validation struct {
	Statuses []string `yaml:"statuses"`
	Stages   []string `yaml:"stages"`
}

// Load reads and validates a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// Default returns the built-in configuration used when no settings file is
// provided: the inherited outcome vocabulary with the legacy classifier.
func Default() *Settings {
	return &Settings{
		Classifier: ClassifierLegacy,
		WonStage:   "Account Won",
		Rules: []rules.Entry{
			{Outcome: "Initial Contact", Stage: "Outreach", Status: "Contacted", DayOffset: 7},
			{Outcome: "Follow-up", Stage: "Outreach", Status: "Follow-up", DayOffset: 7},
			{Outcome: "Interested", Stage: "Qualified", Status: "Interested", DayOffset: 3},
			{Outcome: "Not Interested", Stage: "Closed Lost", Status: "Not Interested", DayOffset: 90},
			{Outcome: "No Answer", Stage: "Outreach", Status: "No Answer", DayOffset: 7},
			{Outcome: "Account Won", Stage: "Account Won", Status: "Customer", DayOffset: 30},
		},
	}
}

func (s *Settings) validate() error {
	s.Validation.Statuses = platformstrings.DedupeAndTrim(s.Validation.Statuses)
	s.Validation.Stages = platformstrings.DedupeAndTrim(s.Validation.Stages)
	switch s.Classifier {
	case "", ClassifierLegacy, ClassifierStrict:
	default:
		return fmt.Errorf("unknown classifier %q", s.Classifier)
	}
	seen := make(map[string]bool, len(s.Rules))
	for i, e := range s.Rules {
		if e.Outcome == "" {
			return fmt.Errorf("rule %d: outcome is required", i)
		}
		if seen[e.Outcome] {
			return fmt.Errorf("rule %d: duplicate outcome %q", i, e.Outcome)
		}
		seen[e.Outcome] = true
		if len(s.Validation.Statuses) > 0 && e.Status != "" && !contains(s.Validation.Statuses, e.Status) {
			return fmt.Errorf("rule %q: status %q not in validation list", e.Outcome, e.Status)
		}
		if len(s.Validation.Stages) > 0 && e.Stage != "" && !contains(s.Validation.Stages, e.Stage) {
			return fmt.Errorf("rule %q: stage %q not in validation list", e.Outcome, e.Stage)
		}
	}
	return nil
}

// Table builds the rule lookup table from the configured entries.
func (s *Settings) Table() *rules.Table {
	return rules.NewTable(s.Rules)
}

// FallbackClassifier returns the configured keyword classifier.
func (s *Settings) FallbackClassifier() rules.Classifier {
	if s.Classifier == ClassifierStrict {
		return rules.StrictClassifier()
	}
	return rules.LegacyClassifier()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
