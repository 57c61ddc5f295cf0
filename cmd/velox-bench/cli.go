package main

import (
	"flag"
	"fmt"
	"io"
	"slices"
)

const (
	BENCH_SUBCMD = "bench"
	DEMO_SUBCMD  = "demo"
	HELP_SUBCMD  = "help"

	COMMAND_NAME = "velox-bench"
)

var (
	SUBCOMMANDS = []string{BENCH_SUBCMD, DEMO_SUBCMD, HELP_SUBCMD}

	HELP_SUBCMD_EQUIVALENTS = []string{"--help", "-help", "-h"}

	CLI_SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{BENCH_SUBCMD, "measure the throughput of a single array operation"},
		{DEMO_SUBCMD, "walk through the operations of a dynamic array and log each state transition"},
		{HELP_SUBCMD, "show the general help or command-specific help"},
	}

	CLI_SUBCOMMAND_DESCRIPTION_MAP = map[string]string{}

	VELOX_BENCH_CMD_HELP = "commands:\n"
)

func init() {
	for _, entry := range CLI_SUBCOMMAND_DESCRIPTIONS {
		cmd, desc := entry[0], entry[1]
		CLI_SUBCOMMAND_DESCRIPTION_MAP[cmd] = desc
		VELOX_BENCH_CMD_HELP += "\t" + cmd + " - " + desc + "\n"
	}
	VELOX_BENCH_CMD_HELP += "\nType `" + COMMAND_NAME + " help <command>` to get command-specific help.\n"
}

func showHelp(flags *flag.FlagSet, args []string, out io.Writer) bool {
	//only show help
	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {

		cmd := flags.Name()
		if desc, ok := CLI_SUBCOMMAND_DESCRIPTION_MAP[cmd]; ok {
			fmt.Fprintln(out, desc)
		}

		flags.SetOutput(out)
		fmt.Fprint(out, "\noptions:\n")
		flags.PrintDefaults()

		return true
	}

	return false
}
