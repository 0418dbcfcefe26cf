package lib

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/segy/lib/segyio"
)

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		argv   []string
		mode   Mode
		target string
		args   *RawArgs
		valid  bool
	}{
		{[]string{}, HelpMode, "", &RawArgs{}, true},
		{[]string{"check", "line.sgy"}, CheckMode, "line.sgy", &RawArgs{}, true},
		{[]string{"NAV", "vol.sgy", "--Survey", "3d", "--stride", "10"},
			NavMode, "vol.sgy", &RawArgs{Survey: "3d", Stride: "10"}, true},
		{[]string{"nav", "--File", "vol.sgy", "--Verbose"},
			NavMode, "", &RawArgs{File: "vol.sgy", Verbose: "true"}, true},
		{[]string{"traces", "a.sgy", "--Verbose", "--Workers", "-1"},
			TracesMode, "a.sgy", &RawArgs{Verbose: "true", Workers: "-1"}, true},
		{[]string{"binary", "a.sgy", "--Override", "SamplesPerTrace:10",
			"--Override", "SampleInterval:2000"}, BinaryMode, "a.sgy",
			&RawArgs{Override: []string{"SamplesPerTrace:10",
				"SampleInterval:2000"}}, true},
		{[]string{"convert", "a.sgy"}, "", "", nil, false},
		{[]string{"check", "a.sgy", "Stride", "10"}, "", "", nil, false},
		{[]string{"check", "a.sgy", "--Snapshots", "10"}, "", "", nil, false},
	}

	for i := range tests {
		mode, target, args, err := ParseCommandLine(tests[i].argv)
		if tests[i].valid != (err == nil) {
			t.Errorf("%d) Expected valid = %v for %v, got error %v.",
				i, tests[i].valid, tests[i].argv, err)
			continue
		}
		if !tests[i].valid {
			continue
		}
		assert.Equal(t, tests[i].mode, mode, "%d", i)
		assert.Equal(t, tests[i].target, target, "%d", i)
		assert.Equal(t, tests[i].args, args, "%d", i)
	}
}

func TestParseConfig(t *testing.T) {
	text := `
[segy]
file = line_001.sgy
survey = 3d
stride = 10
nav = source
override = SamplesPerTrace:1500
override = SampleFormatCode:5
`
	args, err := ParseConfigString(text)
	require.NoError(t, err)
	assert.Equal(t, "line_001.sgy", args.File)
	assert.Equal(t, "3d", args.Survey)
	assert.Equal(t, "10", args.Stride)
	assert.Equal(t, "source", args.Nav)
	assert.Equal(t, []string{"SamplesPerTrace:1500", "SampleFormatCode:5"},
		args.Override)

	path := filepath.Join(t.TempDir(), "survey.cfg")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	fromFile, err := ParseConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, args, fromFile)

	_, err = ParseConfigString("[segy]\nsnapshots = 10\n")
	assert.Error(t, err)
	_, err = ParseConfigFile(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)
}

func TestOverwrite(t *testing.T) {
	arg1 := &RawArgs{File: "a.sgy", Stride: "10", Survey: "3d",
		Override: []string{"SamplesPerTrace:10"}}
	arg2 := &RawArgs{Stride: "20", Nav: "group",
		Override: []string{"SampleInterval:2000"}}
	arg1.Overwrite(arg2)

	assert.Equal(t, &RawArgs{File: "a.sgy", Stride: "20", Survey: "3d",
		Nav: "group", Override: []string{"SamplesPerTrace:10",
			"SampleInterval:2000"}}, arg1)
}

func TestProcess(t *testing.T) {
	args, err := (&RawArgs{}).Process()
	require.NoError(t, err)
	assert.Equal(t, &Args{
		Survey: segyio.Kind2D, Encoding: segyio.EncodingAuto, Stride: 1,
		Nav: segyio.NavCDP, Workers: -1, Traces: "0..end",
		Strictness: segyio.WarnOnError, Output: WKTOutput,
		Overrides: segyio.HeaderOverride{},
	}, args)

	args, err = (&RawArgs{
		File: "a.sgy", Survey: "3D", Encoding: "ebcdic", ByteOrder: "little",
		Stride: "5", Count: "100", Nav: "group", Workers: "2",
		Traces: "0..9", Strict: "true", Raw: "true", Verbose: "true",
		Output: "geojson",
		Override: []string{"SamplesPerTrace:1500", " SampleInterval : 2e3 "},
	}).Process()
	require.NoError(t, err)
	assert.Equal(t, &Args{
		File: "a.sgy", Survey: segyio.Kind3D, Encoding: segyio.EncodingEBCDIC,
		ByteOrder: binary.LittleEndian, Stride: 5, Count: 100,
		Nav: segyio.NavGroup, Workers: 2, Traces: "0..9",
		Strictness: segyio.CrashOnError, Raw: true, Verbose: true,
		Output: GeoJSONOutput,
		Overrides: segyio.HeaderOverride{
			"SamplesPerTrace": 1500, "SampleInterval": 2000,
		},
	}, args)

	invalid := []*RawArgs{
		{Survey: "4d"},
		{Encoding: "utf8"},
		{ByteOrder: "middle"},
		{Stride: "0"},
		{Stride: "ten"},
		{Count: "-1"},
		{Nav: "receiver"},
		{Workers: "0"},
		{Strict: "maybe"},
		{Output: "kml"},
		{Override: []string{"SamplesPerTrace"}},
		{Override: []string{":10"}},
		{Override: []string{"SamplesPerTrace:many"}},
	}
	for i := range invalid {
		if _, err := invalid[i].Process(); err == nil {
			t.Errorf("%d) Expected %+v to be invalid.", i, *invalid[i])
		}
	}
}

func TestProcessEdits(t *testing.T) {
	args, err := (&RawArgs{
		BinaryEdit: []string{"SamplesPerTrace:0:4"},
		TraceEdit: []string{"Inline:8:4", "Crossline : 12 : 2 : unsigned",
			"CdpX:180:4:IBM"},
		NavField: []string{"X:SourceX", "sp:TraceNoFile", "Inline:Crossline"},
	}).Process()
	require.NoError(t, err)

	assert.Equal(t, segyio.HeaderEdits{
		"SamplesPerTrace": {Offset: 0, Width: 4, Signed: true},
	}, args.BinaryEdits)
	assert.Equal(t, segyio.HeaderEdits{
		"Inline":    {Offset: 8, Width: 4, Signed: true},
		"Crossline": {Offset: 12, Width: 2},
		"CdpX":      {Offset: 180, Width: 4, Signed: true, IBM: true},
	}, args.TraceEdits)
	assert.Equal(t, segyio.NavFields{X: "SourceX", ShotPoint: "TraceNoFile",
		Inline: "Crossline"}, args.NavFields)

	opts := args.Options(nil)
	assert.Equal(t, args.BinaryEdits, opts.BinaryEdits)
	assert.Equal(t, args.TraceEdits, opts.TraceEdits)

	invalid := []*RawArgs{
		{TraceEdit: []string{"Inline:8"}},
		{TraceEdit: []string{":8:4"}},
		{TraceEdit: []string{"Inline:eight:4"}},
		{TraceEdit: []string{"Inline:8:four"}},
		{TraceEdit: []string{"Inline:8:4:float"}},
		{BinaryEdit: []string{"SamplesPerTrace:0:4:signed:extra"}},
		{NavField: []string{"X"}},
		{NavField: []string{"Z:SourceX"}},
		{NavField: []string{"X:"}},
	}
	for i := range invalid {
		if _, err := invalid[i].Process(); err == nil {
			t.Errorf("%d) Expected %+v to be invalid.", i, *invalid[i])
		}
	}

	cfg, err := ParseConfigString(`
[segy]
traceedit = Inline:8:4
traceedit = Crossline:12:4
navfield = X:SourceX
`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inline:8:4", "Crossline:12:4"}, cfg.TraceEdit)
	assert.Equal(t, []string{"X:SourceX"}, cfg.NavField)
}

func TestLoadArgs(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "survey.cfg")
	require.NoError(t, os.WriteFile(cfg,
		[]byte("[segy]\nfile = vol.sgy\nstride = 10\n"), 0644))

	mode, args, err := LoadArgs([]string{"nav", cfg, "--Stride", "20"})
	require.NoError(t, err)
	assert.Equal(t, NavMode, mode)
	assert.Equal(t, "vol.sgy", args.File)
	assert.Equal(t, 20, args.Stride)

	mode, args, err = LoadArgs([]string{"check", "line.sgy"})
	require.NoError(t, err)
	assert.Equal(t, CheckMode, mode)
	assert.Equal(t, "line.sgy", args.File)

	mode, _, err = LoadArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, HelpMode, mode)

	_, _, err = LoadArgs([]string{"check"})
	assert.Error(t, err)
}

func TestIsConfigFile(t *testing.T) {
	assert.True(t, IsConfigFile("survey.cfg"))
	assert.True(t, IsConfigFile("dir/SURVEY.INI"))
	assert.False(t, IsConfigFile("line.sgy"))
	assert.False(t, IsConfigFile(""))
}

func TestParseModes(t *testing.T) {
	for _, mode := range Modes {
		got, err := ParseMode(string(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := ParseMode("convert")
	assert.Error(t, err)

	for _, out := range []OutputFormat{WKTOutput, GeoJSONOutput, TableOutput} {
		got, err := ParseOutputFormat(out.String())
		require.NoError(t, err)
		assert.Equal(t, out, got)
	}

	kind, err := ParseSurveyKind("3D")
	require.NoError(t, err)
	assert.Equal(t, segyio.Kind3D, kind)
}
