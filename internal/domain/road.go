package domain

import (
	"regexp"
	"strings"
)

// RoadClass is the coarse speed class derived from a street name.
type RoadClass string

const (
	HighSpeed   RoadClass = "High_Speed"
	MediumSpeed RoadClass = "Medium_Speed"
	LowSpeed    RoadClass = "Low_Speed"
	RoadUnknown RoadClass = "Other/Unknown"
)

// RoadClasses lists every class in output order.
var RoadClasses = []RoadClass{HighSpeed, MediumSpeed, LowSpeed, RoadUnknown}

// RoadClassifier assigns a speed class to a street name.
type RoadClassifier interface {
	Classify(street string) RoadClass
}

// KeywordSet is matched word-initially: each keyword must appear right after a
// space in " " + lower(text), so "pike" hits "Old Pike Rd" but not "Turnpike".
type KeywordSet []string

// MatchIn reports whether any keyword starts a word in padded, which must be
// the lower-cased text with a leading space.
func (k KeywordSet) MatchIn(padded string) bool {
	for _, kw := range k {
		if strings.Contains(padded, " "+kw) {
			return true
		}
	}
	return false
}

var (
	HighSpeedKeywords = KeywordSet{
		"freeway", "fwy", "expressway", "expy", "expwy", "turnpike", "tpke", "tpk",
		"thruway", "throughway", "beltway", "tollway", "motorway", "interstate",
	}
	StructureKeywords = KeywordSet{"bridge", "tunnel", "crossing", "viaduct", "overpass"}
	// HighSpeedStructureKeywords upgrade a structure to High_Speed. The default
	// cascade already claims them in highspeed_keyword; the check matters for
	// cascades built without that rule.
	HighSpeedStructureKeywords = KeywordSet{"tpke", "tpk", "fwy", "expy", "expwy"}
	MediumSpeedKeywords        = KeywordSet{
		"parkway", "pkwy", "boulevard", "blvd", "artery", "pike", "highway", "hwy",
		"route", "rte", "causeway", "cswy", "skyway", "bypass", "byp", "connector",
	}
	LowSpeedKeywords = KeywordSet{
		"street", "st", "avenue", "ave", "road", "rd", "drive", "dr", "lane", "ln",
		"court", "ct", "way", "circle", "cir", "trail", "trl", "alley", "aly", "loop",
		"place", "pl", "terrace", "ter", "path", "square", "sq", "row",
	}
)

var (
	// interstateRe matches "I-95", "I 95", "I95" and "i-95" as a standalone token.
	interstateRe = regexp.MustCompile(`(?i)\bI[-\s]?\d+`)

	usRouteRe    = regexp.MustCompile(`(?i)\bUS[-\s]?\d+\b`)
	stateRouteRe = regexp.MustCompile(`(?i)\b(?:state\s+)?route\s*-?\s*\d+\b`)

	// stateCodeRouteRe matches short uppercase route codes such as "CA-1",
	// "SR 99" or "FM 1960". It also matches "W 11" in "W 11th St", which
	// directionalStreetRe rejects.
	stateCodeRouteRe = regexp.MustCompile(`\b[A-Z]{1,3}[-\s]?\d+`)

	// directionalStreetRe matches a compass prefix and a street number that is
	// either ordinal ("W 11th") or followed by a street type ("E 5 St").
	directionalStreetRe = regexp.MustCompile(
		`(?i)\b(?:[NS][EW]|[NSEW])\.?\s+\d+(?:(?:st|nd|rd|th)\b|\s+(?:st|street|ave|avenue|rd|road|dr|drive|pl|place|ct|court|ln|lane|way)\b)`)
)

// roadText carries the forms of a street name each rule needs.
type roadText struct {
	raw    string // trimmed, original case
	padded string // " " + lower(raw)
}

func newRoadText(s string) roadText {
	raw := strings.TrimSpace(s)
	return roadText{raw: raw, padded: " " + strings.ToLower(raw)}
}

// RoadRule is one step of the cascade. Match returns false when the rule does
// not fire and the next rule must be consulted.
type RoadRule struct {
	Name  string
	Match func(t roadText) (RoadClass, bool)
}

// Rule names, in cascade order.
const (
	RuleInterstate     = "interstate"
	RuleHighSpeedKW    = "highspeed_keyword"
	RuleStructure      = "structure"
	RuleUSStateRoute   = "us_state_route"
	RuleStateCodeRoute = "state_code_route"
	RuleMediumSpeedKW  = "mediumspeed_keyword"
	RuleLowSpeedKW     = "lowspeed_keyword"
	RuleNone           = "none"
)

func keywordRule(name string, set KeywordSet, class RoadClass) RoadRule {
	return RoadRule{Name: name, Match: func(t roadText) (RoadClass, bool) {
		return class, set.MatchIn(t.padded)
	}}
}

// DefaultRoadRules returns the cascade in priority order.
func DefaultRoadRules() []RoadRule {
	return []RoadRule{
		{Name: RuleInterstate, Match: func(t roadText) (RoadClass, bool) {
			return HighSpeed, interstateRe.MatchString(t.raw)
		}},
		keywordRule(RuleHighSpeedKW, HighSpeedKeywords, HighSpeed),
		{Name: RuleStructure, Match: matchStructure},
		{Name: RuleUSStateRoute, Match: func(t roadText) (RoadClass, bool) {
			return MediumSpeed, usRouteRe.MatchString(t.raw) || stateRouteRe.MatchString(t.raw)
		}},
		{Name: RuleStateCodeRoute, Match: matchStateCodeRoute},
		keywordRule(RuleMediumSpeedKW, MediumSpeedKeywords, MediumSpeed),
		keywordRule(RuleLowSpeedKW, LowSpeedKeywords, LowSpeed),
	}
}

func matchStructure(t roadText) (RoadClass, bool) {
	if !StructureKeywords.MatchIn(t.padded) {
		return "", false
	}
	if HighSpeedStructureKeywords.MatchIn(t.padded) {
		return HighSpeed, true
	}
	return MediumSpeed, true
}

// matchStateCodeRoute fires on short route codes unless the text reads as a
// directional numbered street.
func matchStateCodeRoute(t roadText) (RoadClass, bool) {
	if !stateCodeRouteRe.MatchString(t.raw) {
		return "", false
	}
	if directionalStreetRe.MatchString(t.raw) {
		return "", false
	}
	return MediumSpeed, true
}

// RoadCascade evaluates rules top to bottom; the first rule that fires decides.
type RoadCascade struct {
	rules []RoadRule
}

// NewRoadCascade builds a cascade from rules in priority order.
func NewRoadCascade(rules ...RoadRule) *RoadCascade {
	return &RoadCascade{rules: rules}
}

// DefaultRoadCascade is the cascade over DefaultRoadRules.
func DefaultRoadCascade() *RoadCascade {
	return NewRoadCascade(DefaultRoadRules()...)
}

// Explain classifies street and names the rule that decided it.
func (c *RoadCascade) Explain(street string) (RoadClass, string) {
	t := newRoadText(street)
	if t.raw == "" {
		return RoadUnknown, RuleNone
	}
	for _, r := range c.rules {
		if class, ok := r.Match(t); ok {
			return class, r.Name
		}
	}
	return RoadUnknown, RuleNone
}

func (c *RoadCascade) Classify(street string) RoadClass {
	class, _ := c.Explain(street)
	return class
}
