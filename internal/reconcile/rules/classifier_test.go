package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyClassifier(t *testing.T) {
	c := LegacyClassifier()

	tests := []struct {
		outcome string
		want    string
	}{
		{"Scheduled follow-up call", "Follow-up"},
		{"Very interested, send proposal", "Interested"},
		{"Account Won!", "Customer"},
		{"initial contact made", "Contacted"},
		{"no answer, try again", "No Answer"},
		{"left voicemail", ""},
		{"", ""},
		// "interested" precedes "not interested" in the legacy order, so the
		// negated phrase still classifies as Interested
		{"Not Interested", "Interested"},
		{"disqualified after review", "Not Interested"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Status(tt.outcome), "outcome %q", tt.outcome)
	}
}

func TestStrictClassifierChecksNegationsFirst(t *testing.T) {
	c := StrictClassifier()

	assert.Equal(t, "Not Interested", c.Status("Not Interested"))
	assert.Equal(t, "Not Interested", c.Status("disqualified"))
	assert.Equal(t, "Interested", c.Status("very interested"))
}

func TestClassifierNormalizesBeforeMatching(t *testing.T) {
	c := LegacyClassifier()
	assert.Equal(t, "Follow-up", c.Status("  FOLLOW-UP NEEDED "))
}
