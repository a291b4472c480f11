package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmsync/internal/reconcile/rules"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSettings(t, `
classifier: strict
won_stage: Account Won
validation:
  statuses: [Contacted, Interested]
  stages: [Outreach, Qualified]
rules:
  - outcome: Initial Contact
    stage: Outreach
    status: Contacted
    day_offset: 7
  - outcome: Interested
    stage: Qualified
    status: Interested
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ClassifierStrict, s.Classifier)
	assert.Equal(t, "Account Won", s.WonStage)

	table := s.Table()
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 7, table.Lookup("initial contact").DayOffset)
	assert.Equal(t, rules.DefaultDayOffset, table.Lookup("Interested").DayOffset, "missing offset defaults")
}

func TestLoadRejectsUnknownClassifier(t *testing.T) {
	path := writeSettings(t, "classifier: creative\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown classifier")
}

func TestLoadRejectsDuplicateOutcomes(t *testing.T) {
	path := writeSettings(t, `
rules:
  - outcome: Interested
  - outcome: Interested
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate outcome")
}

func TestLoadEnforcesValidationLists(t *testing.T) {
	path := writeSettings(t, `
validation:
  statuses: [Contacted]
rules:
  - outcome: Interested
    status: Maybe Later
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in validation list")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.validate())
	assert.Equal(t, ClassifierLegacy, s.Classifier)
	assert.Positive(t, s.Table().Len())
}

func TestFallbackClassifierSelection(t *testing.T) {
	legacy := &Settings{}
	assert.Equal(t, "Interested", legacy.FallbackClassifier().Status("Not Interested"))

	strict := &Settings{Classifier: ClassifierStrict}
	assert.Equal(t, "Not Interested", strict.FallbackClassifier().Status("Not Interested"))
}
