package lib

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/segy/lib/segyio"
)

// RawArgs stores the unprocessed values which the user assigned to each config
// variable. An empty string means the variable wasn't set.
type RawArgs struct {
	File      string
	Survey    string
	Encoding  string
	ByteOrder string
	Stride    string
	Count     string
	Nav       string
	Workers   string
	Traces    string
	Strict    string
	Raw       string
	Verbose   string
	Output    string
	// Override has the form "Field:value" and may be given more than once.
	Override []string
	// BinaryEdit and TraceEdit have the form "Field:offset:width[:type]",
	// where type is signed, unsigned, or ibm. NavField has the form
	// "Role:Field". All three may be given more than once.
	BinaryEdit []string
	TraceEdit  []string
	NavField   []string
}

// configFile is the layout gcfg expects. Every variable lives in a [segy]
// section.
type configFile struct {
	Segy RawArgs
}

// Args stores configuration information. It is a post-processed version of
// RawArgs.
type Args struct {
	File       string
	Survey     segyio.SurveyKind
	Encoding   segyio.TextEncoding
	ByteOrder  binary.ByteOrder
	Stride     int
	Count      int
	Nav        segyio.NavLocation
	Workers    int
	Traces     string
	Strictness segyio.CheckStrictness
	Raw        bool
	Verbose    bool
	Output     OutputFormat
	Overrides  segyio.HeaderOverride
	// BinaryEdits and TraceEdits are nil unless at least one edit was given.
	BinaryEdits segyio.HeaderEdits
	TraceEdits  segyio.HeaderEdits
	NavFields   segyio.NavFields
}

// ConfigExtensions are the file extensions that mark a config file rather
// than a SEG-Y file on the command line.
var ConfigExtensions = []string{".cfg", ".config", ".ini"}

// IsConfigFile returns true if the command line target is a config file.
func IsConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for i := range ConfigExtensions {
		if ext == ConfigExtensions[i] {
			return true
		}
	}
	return false
}

// ParseCommandLine parses the command line arguments and returns the mode segy
// is being run in, the name of the config file or SEG-Y file, and any
// arguments which were set. argv should not include the program name.
// Expects that the arguments are presented in the order:
// $ segy <mode> <file> [--<Arg1> <Value1>] [--<Arg2> <Value2>]
// A flag which is followed by another flag or by nothing is set to "true".
func ParseCommandLine(argv []string) (mode Mode, target string, args *RawArgs, err error) {
	if len(argv) == 0 {
		return HelpMode, "", &RawArgs{}, nil
	}
	mode, err = ParseMode(argv[0])
	if err != nil {
		return "", "", nil, err
	}

	rest := argv[1:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "--") {
		target, rest = rest[0], rest[1:]
	}

	args = &RawArgs{}
	for i := 0; i < len(rest); i++ {
		if !strings.HasPrefix(rest[i], "--") {
			return "", "", nil, fmt.Errorf("Command line argument '%s' "+
				"should be a flag like '--Stride', but isn't.", rest[i])
		}
		name, value := rest[i][2:], "true"
		if i+1 < len(rest) && !strings.HasPrefix(rest[i+1], "--") {
			value = rest[i+1]
			i++
		}
		if err := args.set(name, value); err != nil {
			return "", "", nil, err
		}
	}

	return mode, target, args, nil
}

// set assigns value to the variable with the given case-insensitive name.
func (args *RawArgs) set(name, value string) error {
	v := reflect.ValueOf(args).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if !strings.EqualFold(t.Field(i).Name, name) {
			continue
		}
		switch f := v.Field(i); f.Kind() {
		case reflect.String:
			f.SetString(value)
		case reflect.Slice:
			f.Set(reflect.Append(f, reflect.ValueOf(value)))
		}
		return nil
	}
	return fmt.Errorf("'--%s' is not a recognized variable.", name)
}

// ParseConfigFile parses arguements from a config file.
func ParseConfigFile(fileName string) (*RawArgs, error) {
	cfg := &configFile{}
	if err := gcfg.ReadFileInto(cfg, fileName); err != nil {
		return nil, fmt.Errorf("The config file '%s' could not be parsed: %w",
			fileName, err)
	}
	return &cfg.Segy, nil
}

// ParseConfigString parses arguments from the text of a config file.
func ParseConfigString(text string) (*RawArgs, error) {
	cfg := &configFile{}
	if err := gcfg.ReadStringInto(cfg, text); err != nil {
		return nil, fmt.Errorf("The config could not be parsed: %w", err)
	}
	return &cfg.Segy, nil
}

// Overwrite arguments in arg1 which have been set to non-default values in
// arg2. Overrides from arg2 are applied after the ones in arg1.
func (arg1 *RawArgs) Overwrite(arg2 *RawArgs) {
	v1, v2 := reflect.ValueOf(arg1).Elem(), reflect.ValueOf(arg2).Elem()
	for i := 0; i < v1.NumField(); i++ {
		f1, f2 := v1.Field(i), v2.Field(i)
		switch f1.Kind() {
		case reflect.String:
			if f2.String() != "" {
				f1.SetString(f2.String())
			}
		case reflect.Slice:
			f1.Set(reflect.AppendSlice(f1, f2))
		}
	}
}

// Process converts the raw user input to a format which is more useful for
// internal functions. Very simple validation will be done here, but nothing
// which requires interacting with external files.
func (args *RawArgs) Process() (*Args, error) {
	out := &Args{File: args.File, Traces: args.Traces, Stride: 1,
		Overrides: segyio.HeaderOverride{}}
	if out.Traces == "" {
		out.Traces = "0..end"
	}

	var err error
	if out.Survey, err = ParseSurveyKind(args.Survey); err != nil {
		return nil, err
	}
	if out.Encoding, err = segyio.ParseTextEncoding(args.Encoding); err != nil {
		return nil, err
	}
	if out.ByteOrder, err = parseByteOrder(args.ByteOrder); err != nil {
		return nil, err
	}
	if out.Nav, err = segyio.ParseNavLocation(args.Nav); err != nil {
		return nil, err
	}
	if out.Output, err = ParseOutputFormat(args.Output); err != nil {
		return nil, err
	}

	if out.Stride, err = parseInt("Stride", args.Stride, 1); err != nil {
		return nil, err
	} else if out.Stride < 1 {
		return nil, fmt.Errorf("Stride = %d, but it must be at least 1.",
			out.Stride)
	}
	if out.Count, err = parseInt("Count", args.Count, 0); err != nil {
		return nil, err
	} else if out.Count < 0 {
		return nil, fmt.Errorf("Count = %d, but it can't be negative.",
			out.Count)
	}
	if out.Workers, err = parseInt("Workers", args.Workers, -1); err != nil {
		return nil, err
	} else if out.Workers < 1 && out.Workers != -1 {
		return nil, fmt.Errorf("Workers = %d, but it must be positive or "+
			"-1 to use every core.", out.Workers)
	}

	strict, err := parseBool("Strict", args.Strict)
	if err != nil {
		return nil, err
	}
	if strict {
		out.Strictness = segyio.CrashOnError
	} else {
		out.Strictness = segyio.WarnOnError
	}
	if out.Raw, err = parseBool("Raw", args.Raw); err != nil {
		return nil, err
	}
	if out.Verbose, err = parseBool("Verbose", args.Verbose); err != nil {
		return nil, err
	}

	for _, s := range args.Override {
		field, value, err := parseOverride(s)
		if err != nil {
			return nil, err
		}
		out.Overrides[field] = value
	}

	if out.BinaryEdits, err = parseEdits("BinaryEdit", args.BinaryEdit); err != nil {
		return nil, err
	}
	if out.TraceEdits, err = parseEdits("TraceEdit", args.TraceEdit); err != nil {
		return nil, err
	}
	for _, s := range args.NavField {
		if err := setNavField(&out.NavFields, s); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Options converts args into the options used to open the file.
func (args *Args) Options(logger *zerolog.Logger) *segyio.Options {
	return &segyio.Options{
		TextEncoding: args.Encoding,
		Overrides:    args.Overrides,
		BinaryEdits:  args.BinaryEdits,
		TraceEdits:   args.TraceEdits,
		ByteOrder:    args.ByteOrder,
		Strictness:   args.Strictness,
		Logger:       logger,
	}
}

func parseInt(name, s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s = '%s', but it must be an integer.", name, s)
	}
	return n, nil
}

func parseBool(name, s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("%s = '%s', but it must be 'true' or "+
			"'false'.", name, s)
	}
	return b, nil
}

func parseByteOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return nil, nil
	case "big":
		return binary.BigEndian, nil
	case "little":
		return binary.LittleEndian, nil
	}
	return nil, fmt.Errorf("ByteOrder = '%s' is not valid. It must be "+
		"'auto', 'big', or 'little'.", s)
}

// parseOverride splits an override of the form "Field:value".
func parseOverride(s string) (string, float64, error) {
	tok := strings.Split(s, ":")
	if len(tok) != 2 || strings.TrimSpace(tok[0]) == "" {
		return "", 0, fmt.Errorf("Override = '%s' is not valid. Overrides "+
			"have the form 'Field:value', e.g. 'SamplesPerTrace:1500'.", s)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(tok[1]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("Override = '%s' is not valid because "+
			"'%s' is not a number.", s, tok[1])
	}
	return strings.TrimSpace(tok[0]), value, nil
}

func parseEdits(name string, edits []string) (segyio.HeaderEdits, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	out := segyio.HeaderEdits{}
	for _, s := range edits {
		field, spec, err := parseEdit(s)
		if err != nil {
			return nil, fmt.Errorf("%s = '%s' is not valid. Edits have the "+
				"form 'Field:offset:width[:type]', e.g. 'Inline:8:4:signed': %w",
				name, s, err)
		}
		out[field] = spec
	}
	return out, nil
}

// parseEdit splits an edit of the form "Field:offset:width[:type]". Offsets
// are zero-based and type defaults to signed.
func parseEdit(s string) (string, segyio.FieldSpec, error) {
	tok := strings.Split(s, ":")
	for i := range tok {
		tok[i] = strings.TrimSpace(tok[i])
	}
	if (len(tok) != 3 && len(tok) != 4) || tok[0] == "" {
		return "", segyio.FieldSpec{}, fmt.Errorf("wrong number of parts")
	}

	spec := segyio.FieldSpec{Signed: true}
	var err error
	if spec.Offset, err = strconv.Atoi(tok[1]); err != nil {
		return "", spec, fmt.Errorf("offset '%s' is not an integer", tok[1])
	}
	if spec.Width, err = strconv.Atoi(tok[2]); err != nil {
		return "", spec, fmt.Errorf("width '%s' is not an integer", tok[2])
	}
	if len(tok) == 4 {
		switch strings.ToLower(tok[3]) {
		case "signed":
		case "unsigned":
			spec.Signed = false
		case "ibm":
			spec.IBM = true
		default:
			return "", spec, fmt.Errorf("type '%s' is not signed, "+
				"unsigned, or ibm", tok[3])
		}
	}
	return tok[0], spec, nil
}

// setNavField assigns a NavField of the form "Role:Field".
func setNavField(fields *segyio.NavFields, s string) error {
	tok := strings.Split(s, ":")
	if len(tok) != 2 || strings.TrimSpace(tok[1]) == "" {
		return fmt.Errorf("NavField = '%s' is not valid. It has the form "+
			"'Role:Field', e.g. 'Inline:TraceNoFieldRecord'.", s)
	}
	field := strings.TrimSpace(tok[1])
	switch strings.ToLower(strings.TrimSpace(tok[0])) {
	case "x":
		fields.X = field
	case "y":
		fields.Y = field
	case "shotpoint", "sp":
		fields.ShotPoint = field
	case "cdp":
		fields.CDP = field
	case "inline":
		fields.Inline = field
	case "crossline":
		fields.Crossline = field
	default:
		return fmt.Errorf("NavField = '%s' is not valid. The role must be "+
			"x, y, shotpoint, cdp, inline, or crossline.", s)
	}
	return nil
}

// LoadArgs runs the whole parsing pipeline on argv: the command line is
// parsed, the config file (if the target is one) is read, command line
// values overwrite config values, and the result is processed.
func LoadArgs(argv []string) (Mode, *Args, error) {
	mode, target, cmdArgs, err := ParseCommandLine(argv)
	if err != nil {
		return "", nil, err
	}

	rawArgs := &RawArgs{}
	if IsConfigFile(target) {
		if rawArgs, err = ParseConfigFile(target); err != nil {
			return "", nil, err
		}
	} else {
		rawArgs.File = target
	}
	rawArgs.Overwrite(cmdArgs)

	args, err := rawArgs.Process()
	if err != nil {
		return "", nil, err
	}
	if mode != HelpMode && args.File == "" {
		return "", nil, fmt.Errorf("No SEG-Y file was given. Either pass "+
			"one after the mode, set File in a config file, or use --File.")
	}
	return mode, args, nil
}
