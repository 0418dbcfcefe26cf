package lib

import (
	"fmt"
	"strings"

	"github.com/phil-mansfield/segy/lib/segyio"
)

// Mode is the mode segy is being run in.
type Mode string

const (
	HelpMode   Mode = "help"
	CheckMode  Mode = "check"
	TextMode   Mode = "text"
	BinaryMode Mode = "binary"
	TracesMode Mode = "traces"
	NavMode    Mode = "nav"
)

// Modes lists every valid mode.
var Modes = []Mode{HelpMode, CheckMode, TextMode, BinaryMode, TracesMode,
	NavMode}

// ParseMode checks that s names a valid mode.
func ParseMode(s string) (Mode, error) {
	for _, mode := range Modes {
		if Mode(strings.ToLower(s)) == mode {
			return mode, nil
		}
	}

	names := make([]string, len(Modes))
	for i := range Modes {
		names[i] = fmt.Sprintf("'%s'", Modes[i])
	}
	return "", fmt.Errorf("You attempted to run segy in the mode '%s', but "+
		"the only valid modes are %s.", s, strings.Join(names, ", "))
}

// OutputFormat indicates how nav mode prints survey geometry.
type OutputFormat int

const (
	WKTOutput OutputFormat = iota
	GeoJSONOutput
	// TableOutput prints one line per sampled trace instead of a shape.
	TableOutput
)

func (out OutputFormat) String() string {
	switch out {
	case WKTOutput:
		return "wkt"
	case GeoJSONOutput:
		return "geojson"
	case TableOutput:
		return "table"
	}
	return fmt.Sprintf("OutputFormat(%d)", int(out))
}

// ParseOutputFormat converts "wkt", "geojson", or "table" to an
// OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wkt":
		return WKTOutput, nil
	case "geojson", "json":
		return GeoJSONOutput, nil
	case "table":
		return TableOutput, nil
	}
	return WKTOutput, fmt.Errorf("Output = '%s' is not valid. It must be "+
		"one of 'wkt', 'geojson', or 'table'.", s)
}

// ParseSurveyKind converts "2d" or "3d" to a SurveyKind.
func ParseSurveyKind(s string) (segyio.SurveyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "2d":
		return segyio.Kind2D, nil
	case "3d":
		return segyio.Kind3D, nil
	}
	return segyio.Kind2D, fmt.Errorf("Survey = '%s' is not valid. It must "+
		"be '2d' or '3d'.", s)
}
