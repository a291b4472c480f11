package rules

import "strings"

// ClassifierRule binds a set of outcome keywords to the status assigned when
// the rule table itself yields no status.
type ClassifierRule struct {
	Keywords []string `yaml:"keywords"`
	Status   string   `yaml:"status"`
}

// Classifier is an ordered keyword scan over the normalized outcome text.
// Order is significant and is part of configuration, not incidental map
// iteration: the first rule whose keyword appears as a substring wins.
type Classifier []ClassifierRule

// Status returns the status bound to the first matching rule, or "" when no
// keyword matches.
func (c Classifier) Status(outcome string) string {
	text := normalize(outcome)
	if text == "" {
		return ""
	}
	for _, rule := range c {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(text, kw) {
				return rule.Status
			}
		}
	}
	return ""
}

// LegacyClassifier reproduces the precedence inherited from the spreadsheet
// CRM this engine replaced. Note that "interested" is checked before "not
// interested", so an outcome of "Not Interested" classifies as Interested.
// That misordering ships unchanged here; callers who want the corrected
// behavior select StrictClassifier instead.
func LegacyClassifier() Classifier {
	return Classifier{
		{Keywords: []string{"follow-up", "follow up"}, Status: "Follow-up"},
		{Keywords: []string{"interested"}, Status: "Interested"},
		{Keywords: []string{"not interested", "disqualified"}, Status: "Not Interested"},
		{Keywords: []string{"account won", "won"}, Status: "Customer"},
		{Keywords: []string{"initial contact"}, Status: "Contacted"},
		{Keywords: []string{"no answer", "not contacted"}, Status: "No Answer"},
	}
}

// StrictClassifier checks negated phrases before their positive substrings,
// so "Not Interested" classifies as Not Interested.
func StrictClassifier() Classifier {
	return Classifier{
		{Keywords: []string{"not interested", "disqualified"}, Status: "Not Interested"},
		{Keywords: []string{"follow-up", "follow up"}, Status: "Follow-up"},
		{Keywords: []string{"interested"}, Status: "Interested"},
		{Keywords: []string{"account won", "won"}, Status: "Customer"},
		{Keywords: []string{"initial contact"}, Status: "Contacted"},
		{Keywords: []string{"no answer", "not contacted"}, Status: "No Answer"},
	}
}
