package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// WeatherGrouper maps a free-text weather condition to a closed set of groups.
type WeatherGrouper interface {
	Group(condition string) string
	// Groups lists every label Group can return.
	Groups() []string
}

// WeatherTaxonomy names a grouping policy. Taxonomies are alternatives and are
// never combined.
type WeatherTaxonomy string

const (
	// TaxonomyCoarse is the canonical seven-group keyword table.
	TaxonomyCoarse WeatherTaxonomy = "coarse"
	// TaxonomyExtended is the six-category regex table with a single
	// Other/Unknown fallback.
	TaxonomyExtended WeatherTaxonomy = "extended"
)

// Shared weather labels.
const (
	WeatherUnknown = "Unknown"
	WeatherOther   = "Other"
)

// Coarse groups.
const (
	WeatherRain   = "Rain"
	WeatherSnow   = "Snow"
	WeatherFog    = "Fog"
	WeatherStorm  = "Storm"
	WeatherClear  = "Clear"
	WeatherCloudy = "Cloudy"
)

// Extended categories.
const (
	WeatherExtreme           = "Extreme/Stormy Weather"
	WeatherWinter            = "Winter Weather"
	WeatherReducedVisibility = "Reduced Visibility"
	WeatherOtherUnknown      = "Other/Unknown"
)

// NewWeatherGrouper returns the grouper for a taxonomy. An empty name selects
// the coarse table.
func NewWeatherGrouper(t WeatherTaxonomy) (WeatherGrouper, error) {
	switch t {
	case "", TaxonomyCoarse:
		return CoarseWeatherGrouper(), nil
	case TaxonomyExtended:
		return ExtendedWeatherGrouper(), nil
	default:
		return nil, fmt.Errorf("unknown weather taxonomy %q", t)
	}
}

// KeywordRule assigns Group when any keyword is a substring of the lower-cased text.
type KeywordRule struct {
	Group    string
	Keywords []string
}

// KeywordWeatherGrouper evaluates keyword rules in order; first match wins.
type KeywordWeatherGrouper struct {
	rules []KeywordRule
}

// CoarseWeatherRules is the priority-ordered coarse table.
var CoarseWeatherRules = []KeywordRule{
	{Group: WeatherRain, Keywords: []string{"rain", "drizzle"}},
	{Group: WeatherSnow, Keywords: []string{"snow", "sleet"}},
	{Group: WeatherFog, Keywords: []string{"fog", "mist"}},
	{Group: WeatherStorm, Keywords: []string{"storm", "thunder"}},
	{Group: WeatherClear, Keywords: []string{"clear"}},
	{Group: WeatherCloudy, Keywords: []string{"cloud"}},
}

// CoarseWeatherGrouper returns the canonical keyword grouper.
func CoarseWeatherGrouper() *KeywordWeatherGrouper {
	return &KeywordWeatherGrouper{rules: CoarseWeatherRules}
}

func (g *KeywordWeatherGrouper) Group(condition string) string {
	text := strings.ToLower(strings.TrimSpace(condition))
	if text == "" {
		return WeatherUnknown
	}
	for _, rule := range g.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Group
			}
		}
	}
	return WeatherOther
}

func (g *KeywordWeatherGrouper) Groups() []string {
	out := make([]string, 0, len(g.rules)+2)
	for _, r := range g.rules {
		out = append(out, r.Group)
	}
	return append(out, WeatherOther, WeatherUnknown)
}

// RegexRule assigns Group when Pattern matches the condition text.
type RegexRule struct {
	Group   string
	Pattern *regexp.Regexp
}

// RegexWeatherGrouper evaluates compiled alternations in order; first match
// wins. Conditions that match nothing, empty ones included, get fallback.
type RegexWeatherGrouper struct {
	rules    []RegexRule
	fallback string
}

// ExtendedWeatherRules is the priority-ordered six-category table. Order
// matters: "Light Freezing Rain" is Rain and "Snow and Fog" is Reduced
// Visibility.
var ExtendedWeatherRules = []RegexRule{
	{Group: WeatherClear, Pattern: regexp.MustCompile(`(?i)(clear|fair|sunny)`)},
	{Group: WeatherCloudy, Pattern: regexp.MustCompile(`(?i)(overcast|mostly cloudy|partly cloudy|scattered clouds|cloudy)`)},
	{Group: WeatherReducedVisibility, Pattern: regexp.MustCompile(`(?i)(fog|mist|haze|shallow fog|patches of fog|partial fog|smoke)`)},
	{Group: WeatherRain, Pattern: regexp.MustCompile(`(?i)(rain|light rain|drizzle|light drizzle|heavy rain|showers)`)},
	{Group: WeatherExtreme, Pattern: regexp.MustCompile(`(?i)(squalls|funnel cloud|thunderstorms and snow|tornado|thunder|thunderstorm|t-storm|storm)`)},
	{Group: WeatherWinter, Pattern: regexp.MustCompile(`(?i)(snow|blowing snow|snow shower|snow and sleet|freezing rain|sleet|ice pellets)`)},
}

// ExtendedWeatherGrouper returns the regex grouper.
func ExtendedWeatherGrouper() *RegexWeatherGrouper {
	return &RegexWeatherGrouper{rules: ExtendedWeatherRules, fallback: WeatherOtherUnknown}
}

func (g *RegexWeatherGrouper) Group(condition string) string {
	text := strings.TrimSpace(condition)
	for _, rule := range g.rules {
		if rule.Pattern.MatchString(text) {
			return rule.Group
		}
	}
	return g.fallback
}

func (g *RegexWeatherGrouper) Groups() []string {
	out := make([]string, 0, len(g.rules)+1)
	for _, r := range g.rules {
		out = append(out, r.Group)
	}
	return append(out, g.fallback)
}
