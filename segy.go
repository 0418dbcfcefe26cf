package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phil-mansfield/segy/lib"
	"github.com/phil-mansfield/segy/lib/error"
	"github.com/phil-mansfield/segy/lib/thread"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Parse arguements.
	mode, args, err := lib.LoadArgs(os.Args[1:])
	error.Check(err)
	if args.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Run the chosen mode.
	switch mode {
	case lib.HelpMode:
		lib.PrintHelp(os.Stdout)
	case lib.CheckMode:
		Check(args)
	default:
		Print(mode, args)
	}
}

// Check runs segy's "check" mode which looks for problems in a SEG-Y file.
func Check(args *lib.Args) {
	ok, err := lib.Check(args, &log.Logger)
	error.Check(err)
	if ok {
		fmt.Println("No errors detected.")
	}
}

// Print runs one of segy's modes which print part of a file.
func Print(mode lib.Mode, args *lib.Args) {
	_, err := thread.Set(args.Workers)
	error.Check(err)

	f, err := lib.OpenFile(args, &log.Logger)
	error.Check(err)
	defer f.Close()

	switch mode {
	case lib.TextMode:
		err = lib.PrintText(os.Stdout, f)
	case lib.BinaryMode:
		err = lib.PrintBinary(os.Stdout, f)
	case lib.TracesMode:
		err = lib.PrintTraces(os.Stdout, f, args.Traces, args.Raw)
	case lib.NavMode:
		log.Debug().Stringer("survey", args.Survey).
			Stringer("output", args.Output).Msg("Sampling navigation.")
		err = lib.PrintNav(os.Stdout, f, args)
	default:
		error.Internal("Mode '%s' has no runner.", mode)
	}
	error.Check(err)
}
