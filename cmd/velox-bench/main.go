package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"unicode"
)

const ERROR_STATUS_CODE = 1

func main() {
	statusCode := _main(os.Args, os.Stdout, os.Stderr)
	if statusCode != 0 {
		os.Exit(statusCode)
	}
}

func _main(args []string, outW io.Writer, errW io.Writer) (statusCode int) {
	mainSubCommand := ""
	var mainSubCommandArgs []string

	if len(args) == 1 { //no subcommand specified
		mainSubCommand = HELP_SUBCMD
		mainSubCommandArgs = args[1:]
	} else {
		mainSubCommand = args[1]
		mainSubCommandArgs = args[2:]
	}

	if slices.Contains(HELP_SUBCMD_EQUIVALENTS, mainSubCommand) {
		mainSubCommand = HELP_SUBCMD
	}

	//if the command has the shape help <subcommand> ... we modify the arguments to ask the subcommand to print its help message.
	if mainSubCommand == HELP_SUBCMD && len(mainSubCommandArgs) > 0 && mainSubCommandArgs[0] != "" && unicode.IsLetter(rune(mainSubCommandArgs[0][0])) {
		mainSubCommand = mainSubCommandArgs[0]
		mainSubCommandArgs = []string{"-h"}
	}

	//unknown command
	if !slices.Contains(SUBCOMMANDS, mainSubCommand) {
		fmt.Fprintf(errW, "unknown command '%s'\n", mainSubCommand)
		fmt.Fprint(errW, VELOX_BENCH_CMD_HELP)
		return ERROR_STATUS_CODE
	}

	switch mainSubCommand {
	case HELP_SUBCMD:
		fmt.Fprint(outW, VELOX_BENCH_CMD_HELP)
		return
	case BENCH_SUBCMD:
		return RunBenchmark(mainSubCommand, mainSubCommandArgs, outW, errW)
	case DEMO_SUBCMD:
		return RunDemo(mainSubCommand, mainSubCommandArgs, outW, errW)
	default:
		fmt.Fprintf(errW, "unknown command '%s'\n", mainSubCommand)
		return ERROR_STATUS_CODE
	}
}
