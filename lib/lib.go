/*package lib contains the functions needed by the segy command line tool:
argument and config file parsing, and the logic behind each run mode. Almost
all of the heavy lifting is done by lib/'s subpackages, mainly lib/segyio.
*/
package lib

import (
	"fmt"
	"io"
	"strings"

	"github.com/phil-mansfield/segy/lib/segyio"
)

// Version is the version of the software.
const Version = "0.1.0"

const helpText = `segy %s reads SEG-Y seismic files.

Usage:
    segy <mode> <file> [--<Arg1> <Value1>] [--<Arg2> <Value2>] ...

<file> is either a SEG-Y file (optionally zstd-compressed) or a config file
ending in %s.

Modes:
    help    Print this message.
    check   Look for problems with the file's headers and layout.
    text    Print the text headers.
    binary  Print the binary header and the trace layout.
    traces  Print a summary of the traces selected by Traces.
    nav     Print the outline of the survey.

Variables:
    File      The SEG-Y file. Set by <file> unless <file> is a config file.
    Survey    2d or 3d. 2D lines are printed as a line through the sampled
              traces and 3D surveys as the convex hull. Default: 2d.
    Encoding  auto, ebcdic, or ascii. Default: auto.
    ByteOrder auto, big, or little. Default: auto.
    Stride    Sample every Stride-th trace in nav mode. Default: 1.
    Count     Sample about Count traces in nav mode, always including the
              last one. Overrides Stride.
    Nav       cdp, source, or group. Default: cdp.
    Raw       Don't apply coordinate and shot point scalars. Default: false.
    Workers   Threads used to read headers, -1 for every core. Default: -1.
    Traces    Traces printed in traces mode, e.g. '0..99 - 50 + end'.
              Default: 0..end.
    Strict    Fail instead of warning about problems. Default: false.
    Verbose   Print debugging output. Default: false.
    Output    wkt, geojson, or table. Default: wkt.
    Override  Replace a binary header field, e.g. 'SamplesPerTrace:1500'.
              May be given more than once.
    BinaryEdit Read a binary header field from another location,
              'Field:offset:width[:type]' where offset is zero-based
              within the header and type is signed (the default),
              unsigned, or ibm. May be given more than once.
    TraceEdit Read a trace header field from another location, in the
              same form as BinaryEdit, e.g. 'Inline:8:4'.
    NavField  Read nav mode's x, y, shotpoint, cdp, inline, or crossline
              from another trace header field, e.g. 'X:SourceX'.

Config files put variables in a [segy] section:

    [segy]
    file = line_001.sgy
    survey = 3d
    override = SamplesPerTrace:1500

Fields which can be overridden:
%s
`

// PrintHelp prints segy's usage information.
func PrintHelp(w io.Writer) {
	fields := segyio.BinaryHeaderFields()
	lines := []string{}
	for len(fields) > 0 {
		n := 3
		if n > len(fields) {
			n = len(fields)
		}
		lines = append(lines, "    "+strings.Join(fields[:n], ", "))
		fields = fields[n:]
	}

	fmt.Fprintf(w, helpText, Version, strings.Join(ConfigExtensions, ", "),
		strings.Join(lines, "\n"))
}
