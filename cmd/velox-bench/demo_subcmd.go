package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/veloxlang/velox-runtime/internal/core"
)

func RunDemo(mainSubCommand string, mainSubCommandArgs []string, outW, errW io.Writer) (exitCode int) {
	flags := flag.NewFlagSet(mainSubCommand, flag.ExitOnError)

	if showHelp(flags, mainSubCommandArgs, outW) { //only show help
		return
	}

	err := flags.Parse(mainSubCommandArgs)
	if err != nil {
		fmt.Fprintln(errW, "ERROR:", err)
		return ERROR_STATUS_CODE
	}

	logger := core.ChildLoggerForSource(zerolog.New(outW), "demo")

	fail := func(err error) int {
		fmt.Fprintln(errW, "ERROR:", err)
		return ERROR_STATUS_CODE
	}

	//the backing store specializes to the kind of the elements, here integers

	array := core.NewDynArray(core.Int(1), core.Int(2), core.Int(3))

	logArray := func(msg string) {
		logger.Info().Int("size", array.Len()).Str("values", fmt.Sprint(array.Values())).Msg(msg)
	}

	logArray("created an array from the elements 1, 2 and 3")

	//grow at the back, then at the front

	if _, err := array.Push(core.Int(4), core.Int(5)); err != nil {
		return fail(err)
	}
	logArray("pushed 4 and 5")

	if _, err := array.Unshift(core.Int(0)); err != nil {
		return fail(err)
	}
	logArray("unshifted 0")

	//shrink from both ends

	first, err := array.Shift()
	if err != nil {
		return fail(err)
	}
	logger.Info().Str("element", fmt.Sprint(first)).Msg("shifted the first element")
	logArray("after the shift")

	last, err := array.Pop()
	if err != nil {
		return fail(err)
	}
	logger.Info().Str("element", fmt.Sprint(last)).Msg("popped the last element")
	logArray("after the pop")

	//overwrite a subrange

	if err := array.Fill(core.Int(7), 1, 3); err != nil {
		return fail(err)
	}
	logArray("filled the range [1, 3) with 7")

	//growing exposes zeroed slots, shrinking keeps the storage

	if err := array.Resize(6); err != nil {
		return fail(err)
	}
	logArray("resized to 6")

	if err := array.Resize(2); err != nil {
		return fail(err)
	}
	logArray("resized to 2")

	//rejected operations

	if _, err := array.Get(10); err != nil {
		logger.Warn().Err(err).Msg("rejected a read past the end")
	}

	if err := array.Set(0, core.String("oops")); err != nil {
		logger.Warn().Err(err).Msg("rejected an element of a foreign kind")
	}

	return 0
}
