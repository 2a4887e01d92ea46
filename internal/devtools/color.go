package devtools

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	reHexInput  = jsRegexp(`^#?[a-f\d]{6}$`, regexp2.IgnoreCase)
	reRGBInput  = jsRegexp(`rgb\((\d+),\s*(\d+),\s*(\d+)\)`, regexp2.None)
	reHSLInput  = jsRegexp(`hsl\((\d+),\s*(\d+)%,\s*(\d+)%\)`, regexp2.None)
	reStrictHex = jsRegexp(`^#[0-9A-Fa-f]{6}$`, regexp2.None)
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL holds hue in degrees and saturation and lightness in percent, each
// rounded to an integer.
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ColorFormats is one color written three ways.
type ColorFormats struct {
	Hex string `json:"hex"`
	RGB string `json:"rgb"`
	HSL string `json:"hsl"`
}

// HexToRGB parses "#rrggbb" or "rrggbb".
func HexToRGB(hex string) (RGB, bool) {
	if !matches(reHexInput, hex) {
		return RGB{}, false
	}
	c, err := colorful.Hex("#" + strings.TrimPrefix(hex, "#"))
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{int(r), int(g), int(b)}, true
}

// RGBToHex formats a color as lower-case "#rrggbb".
func RGBToHex(c RGB) string {
	return c.color().Hex()
}

// RGBToHSL converts to rounded HSL.
func RGBToHSL(c RGB) HSL {
	h, s, l := c.color().Hsl()
	return HSL{
		H: int(math.Round(h)),
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// HSLToRGB converts rounded HSL back to 8-bit RGB.
func HSLToRGB(c HSL) RGB {
	r, g, b := colorful.Hsl(float64(c.H), float64(c.S)/100, float64(c.L)/100).RGB255()
	return RGB{int(r), int(g), int(b)}
}

func (c RGB) color() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// ConvertColor accepts a hex color (with or without '#'), an rgb() or an
// hsl() expression and returns it in all three formats. A hex input keeps
// its original spelling.
func ConvertColor(input string) (*ColorFormats, error) {
	input = strings.TrimSpace(input)

	if rgb, ok := HexToRGB(input); ok {
		hex := input
		if !strings.HasPrefix(hex, "#") {
			hex = "#" + hex
		}
		return &ColorFormats{Hex: hex, RGB: rgb.String(), HSL: RGBToHSL(rgb).String()}, nil
	}

	if groups, ok := captureInts(reRGBInput, input); ok {
		rgb := RGB{groups[0], groups[1], groups[2]}
		if !inRange(rgb.R, 255) || !inRange(rgb.G, 255) || !inRange(rgb.B, 255) {
			return nil, fmt.Errorf("%w: rgb channels must be 0-255", ErrUnknownColor)
		}
		return &ColorFormats{Hex: RGBToHex(rgb), RGB: rgb.String(), HSL: RGBToHSL(rgb).String()}, nil
	}

	if groups, ok := captureInts(reHSLInput, input); ok {
		hsl := HSL{groups[0], groups[1], groups[2]}
		if !inRange(hsl.H, 360) || !inRange(hsl.S, 100) || !inRange(hsl.L, 100) {
			return nil, fmt.Errorf("%w: hsl needs hue 0-360 and percentages 0-100", ErrUnknownColor)
		}
		rgb := HSLToRGB(hsl)
		return &ColorFormats{Hex: RGBToHex(rgb), RGB: rgb.String(), HSL: hsl.String()}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownColor, input)
}

// ValidateHexColor checks for a "#rrggbb" value.
func ValidateHexColor(input string) ValidationResult {
	if !matches(reStrictHex, strings.TrimSpace(input)) {
		return invalid(ValidationError{
			Message:    "Invalid hex color",
			Suggestion: "Hex colors look like #RRGGBB, for example #3B82F6",
		})
	}
	return valid()
}

func captureInts(re *regexp2.Regexp, s string) ([]int, bool) {
	m, err := re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil, false
	}
	groups := m.Groups()
	out := make([]int, 0, len(groups)-1)
	for _, g := range groups[1:] {
		n, err := strconv.Atoi(g.String())
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func inRange(v, max int) bool {
	return v >= 0 && v <= max
}
