package theme

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Severity classifies a lint finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is a single lint result.
type Finding struct {
	Severity Severity
	Group    string
	Key      string
	Message  string
}

func (f Finding) String() string {
	if f.Key == "" {
		return f.Message
	}
	return fmt.Sprintf("%s.%s: %s", f.Group, f.Key, f.Message)
}

// colourFunctions are the CSS colour functions accepted as values.
var colourFunctions = []string{
	"rgb(", "rgba(", "hsl(", "hsla(", "hwb(",
	"oklch(", "oklab(", "lab(", "lch(", "color(", "color-mix(",
	"var(",
}

// cssKeywords are colour keywords missing from colornames: CSS-wide
// keywords and the CSS Color 4 additions to the SVG 1.1 names.
var cssKeywords = map[string]bool{
	"transparent":   true,
	"currentcolor":  true,
	"rebeccapurple": true,
	"inherit":       true,
	"initial":       true,
	"unset":         true,
}

// Lint checks light/dark symmetry and colour value syntax.
// The build never depends on lint passing.
func Lint(def *Definition) []Finding {
	var findings []Finding
	if def == nil {
		return findings
	}

	light, dark := def.CSSVars.Light, def.CSSVars.Dark

	if light.Len() > 0 && dark.Len() > 0 {
		for _, key := range dark.Missing(light.Keys()) {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Group:    "light",
				Key:      key,
				Message:  "no matching dark value",
			})
		}
		for _, key := range light.Missing(dark.Keys()) {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Group:    "dark",
				Key:      key,
				Message:  "no matching light value",
			})
		}
	}

	findings = append(findings, lintColours("light", def)...)
	findings = append(findings, lintColours("dark", def)...)

	return findings
}

func lintColours(group string, def *Definition) []Finding {
	vars := def.CSSVars.Light
	if group == "dark" {
		vars = def.CSSVars.Dark
	}

	var findings []Finding
	for _, e := range vars.Entries() {
		if !isColourToken(e.Key) {
			continue
		}
		if IsColour(e.Value) {
			continue
		}
		if IsHSLChannels(e.Value) {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Group:    group,
				Key:      e.Key,
				Message:  fmt.Sprintf("%q is bare HSL channels; wrap it as hsl(%s)", e.Value, strings.TrimSpace(e.Value)),
			})
			continue
		}
		findings = append(findings, Finding{
			Severity: SeverityError,
			Group:    group,
			Key:      e.Key,
			Message:  fmt.Sprintf("%q is not a CSS colour", e.Value),
		})
	}
	return findings
}

// isColourToken reports whether a light/dark key holds a colour.
// Groups may also carry non-colour tokens such as radius, fonts or shadows.
func isColourToken(key string) bool {
	for _, prefix := range []string{"font-", "radius", "shadow", "spacing", "tracking", "letter-spacing"} {
		if strings.HasPrefix(key, prefix) {
			return false
		}
	}
	return true
}

// IsColour reports whether value is a CSS colour: a hex literal, a colour
// function, a keyword or a named colour.
func IsColour(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false
	}

	if strings.HasPrefix(v, "#") {
		return isHex(v[1:])
	}

	for _, fn := range colourFunctions {
		if strings.HasPrefix(v, fn) && strings.HasSuffix(v, ")") {
			return true
		}
	}

	if cssKeywords[v] {
		return true
	}

	_, ok := colornames.Map[v]
	return ok
}

// IsHSLChannels reports whether value is a legacy shadcn colour written as
// bare HSL channels, such as "0 0% 100%" or "240 5.9% 10% / 0.5", meant to
// be wrapped in hsl() by the consuming stylesheet.
func IsHSLChannels(value string) bool {
	channels, alpha, hasAlpha := strings.Cut(strings.TrimSpace(value), "/")
	if hasAlpha && !isNumber(strings.TrimSuffix(strings.TrimSpace(alpha), "%")) {
		return false
	}

	parts := strings.Fields(channels)
	if len(parts) != 3 {
		return false
	}
	hue := strings.TrimSuffix(parts[0], "deg")
	if !isNumber(hue) {
		return false
	}
	for _, p := range parts[1:] {
		if !strings.HasSuffix(p, "%") || !isNumber(strings.TrimSuffix(p, "%")) {
			return false
		}
	}
	return true
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isHex(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return false
		}
	}
	return true
}
