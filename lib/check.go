package lib

/* check.go contains the core functions of segy's "check" mode. */

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/phil-mansfield/segy/lib/compress"
	"github.com/phil-mansfield/segy/lib/segyio"
)

// OpenFile opens the SEG-Y file named in args. zstd-compressed files are
// recognized by their contents and decompressed into memory.
func OpenFile(args *Args, logger *zerolog.Logger) (*segyio.File, error) {
	f, err := os.Open(args.File)
	if err != nil {
		return nil, fmt.Errorf("The file %s cannot be opened: %w",
			args.File, err)
	}
	magic := make([]byte, 4)
	n, _ := f.Read(magic)
	f.Close()

	if compress.IsCompressed(magic[:n]) {
		return segyio.OpenCompressed(args.File, args.Options(logger))
	}
	return segyio.Open(args.File, args.Options(logger))
}

// Check runs the segy "check" command on the provided Args. This function
// will either return an error upon encountering a problem or will log
// warnings, depending on what Strictness is set to in args. If Check
// completes, it returns true if all tests passed and false otherwise.
func Check(args *Args, logger *zerolog.Logger) (bool, error) {
	f, err := OpenFile(args, logger)
	if err != nil {
		return false, err
	}
	defer f.Close()

	problems := checkFile(f)
	for _, p := range problems {
		if args.Strictness == segyio.CrashOnError {
			return false, fmt.Errorf("%s: %s", args.File, p)
		}
		logger.Warn().Str("file", args.File).Msg(p)
	}

	hd := f.Header()
	logger.Info().Str("file", args.File).
		Stringer("revision", hd.Revision).
		Stringer("format", hd.Format).
		Int("samples", hd.SamplesPerTrace).
		Float64("interval", hd.SampleInterval).
		Int("traces", f.TraceCount()).
		Msg("Checked SEG-Y file.")

	return len(problems) == 0, nil
}

// checkFile returns a description of everything that looks wrong in f.
func checkFile(f *segyio.File) []string {
	problems := []string{}
	hd, layout := f.Header(), f.Layout()

	if hd.Format == segyio.FormatFixedGain {
		problems = append(problems, fmt.Sprintf("Samples use %s, which is "+
			"obsolete and can't be decoded.", hd.Format))
	}
	if hd.SamplesPerTrace == 0 {
		problems = append(problems, "The binary header says traces have no "+
			"samples. Override SamplesPerTrace if this is wrong.")
	}
	if hd.SampleInterval == 0 {
		problems = append(problems, "The binary header has no sample "+
			"interval.")
	}
	if layout.TraceCount == 0 {
		problems = append(problems, "The file has no traces.")
	}
	if layout.Remainder != 0 {
		problems = append(problems, fmt.Sprintf("The file ends with %d "+
			"bytes which don't make up a whole %d-byte trace. The samples "+
			"per trace, sample format, or extended header counts may be "+
			"wrong.", layout.Remainder, layout.BlockSize))
	}

	ths, err := f.TextHeaders()
	if err != nil {
		return append(problems, err.Error())
	}
	for i := 0; i < ths.Len(); i++ {
		if _, err := ths.At(i); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if layout.TraceCount > 0 {
		trace, err := f.ReadTraceHeader(0)
		if err != nil {
			return append(problems, err.Error())
		}
		if n := int(trace.SampleCount); n != 0 && n != hd.SamplesPerTrace {
			problems = append(problems, fmt.Sprintf("The first trace header "+
				"says it has %d samples, but the binary header says traces "+
				"have %d samples.", n, hd.SamplesPerTrace))
		}
	}

	return problems
}
