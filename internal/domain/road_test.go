package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoadCascade_Explain(t *testing.T) {
	cascade := DefaultRoadCascade()

	tests := []struct {
		street    string
		wantClass RoadClass
		wantRule  string
	}{
		{"I-95", HighSpeed, RuleInterstate},
		{"I-95 N", HighSpeed, RuleInterstate},
		{"I 35", HighSpeed, RuleInterstate},
		{"I95", HighSpeed, RuleInterstate},
		{"i-95", HighSpeed, RuleInterstate},
		{"i 405 s", HighSpeed, RuleInterstate},
		{"Interstate 5", HighSpeed, RuleHighSpeedKW},
		{"Massachusetts Turnpike", HighSpeed, RuleHighSpeedKW},
		{"Pacific Coast Freeway", HighSpeed, RuleHighSpeedKW},
		{"Pomona Fwy", HighSpeed, RuleHighSpeedKW},
		{"Golden State Fwy", HighSpeed, RuleHighSpeedKW},
		{"Long Island Expy", HighSpeed, RuleHighSpeedKW},
		{"Cross Bronx Expwy", HighSpeed, RuleHighSpeedKW},
		{"New Jersey Tpke", HighSpeed, RuleHighSpeedKW},
		{"Pennsylvania Tpk", HighSpeed, RuleHighSpeedKW},
		{"Harbor Tunnel Fwy", HighSpeed, RuleHighSpeedKW},
		{"George Washington Bridge", MediumSpeed, RuleStructure},
		{"US-1", MediumSpeed, RuleUSStateRoute},
		{"US 101 S", MediumSpeed, RuleUSStateRoute},
		{"State Route 9", MediumSpeed, RuleUSStateRoute},
		{"CA-1", MediumSpeed, RuleStateCodeRoute},
		{"SR 99", MediumSpeed, RuleStateCodeRoute},
		{"FM 1960", MediumSpeed, RuleStateCodeRoute},
		{"Blue Ridge Pkwy", MediumSpeed, RuleMediumSpeedKW},
		{"Old Pike Rd", MediumSpeed, RuleMediumSpeedKW},
		{"Stockton Blvd", MediumSpeed, RuleMediumSpeedKW},
		{"Main Street", LowSpeed, RuleLowSpeedKW},
		{"W 11th St", LowSpeed, RuleLowSpeedKW},
		{"N 5th Ave", LowSpeed, RuleLowSpeedKW},
		{"Maple Ln", LowSpeed, RuleLowSpeedKW},
		{"Mission St", LowSpeed, RuleLowSpeedKW},
		{"Unnamed", RoadUnknown, RuleNone},
		{"", RoadUnknown, RuleNone},
		{"   ", RoadUnknown, RuleNone},
	}

	for _, tt := range tests {
		t.Run(tt.street, func(t *testing.T) {
			class, rule := cascade.Explain(tt.street)
			assert.Equal(t, tt.wantClass, class)
			assert.Equal(t, tt.wantRule, rule)
			assert.Equal(t, tt.wantClass, cascade.Classify(tt.street))
		})
	}
}

func TestMatchStateCodeRoute_DirectionalGuard(t *testing.T) {
	tests := []struct {
		street string
		fires  bool
	}{
		{"CA-1", true},
		{"TX 71", true},
		{"W 11th St", false},
		{"E 5 St", false},
		{"NE 2nd Ave", false},
		{"S. 3rd Street", false},
	}
	for _, tt := range tests {
		t.Run(tt.street, func(t *testing.T) {
			_, ok := matchStateCodeRoute(newRoadText(tt.street))
			assert.Equal(t, tt.fires, ok)
		})
	}
}

func TestMatchStructure_WithoutHighSpeedRule(t *testing.T) {
	var rules []RoadRule
	for _, r := range DefaultRoadRules() {
		if r.Name != RuleHighSpeedKW {
			rules = append(rules, r)
		}
	}
	cascade := NewRoadCascade(rules...)

	class, rule := cascade.Explain("Harbor Tunnel Fwy")
	assert.Equal(t, HighSpeed, class)
	assert.Equal(t, RuleStructure, rule)

	class, rule = cascade.Explain("Pomona Fwy")
	assert.Equal(t, RoadUnknown, class)
	assert.Equal(t, RuleNone, rule)
}

func TestKeywordSet_MatchesWordStart(t *testing.T) {
	set := KeywordSet{"pike"}
	assert.True(t, set.MatchIn(" old pike rd"))
	assert.False(t, set.MatchIn(" massachusetts turnpike"))
}

func TestRoadCascade_CustomRules(t *testing.T) {
	cascade := NewRoadCascade(keywordRule("lane_only", KeywordSet{"lane"}, LowSpeed))

	class, rule := cascade.Explain("Sunset Lane")
	assert.Equal(t, LowSpeed, class)
	assert.Equal(t, "lane_only", rule)

	class, rule = cascade.Explain("I-90")
	assert.Equal(t, RoadUnknown, class)
	assert.Equal(t, RuleNone, rule)
}
