package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/tidwall/lotsa"

	"github.com/veloxlang/velox-runtime/internal/core"
	"github.com/veloxlang/velox-runtime/internal/memds"
	"github.com/veloxlang/velox-runtime/internal/utils"
)

const DEFAULT_BENCH_OP_COUNT = 100_000

func RunBenchmark(mainSubCommand string, mainSubCommandArgs []string, outW, errW io.Writer) (exitCode int) {
	//read and check arguments

	flags := flag.NewFlagSet(mainSubCommand, flag.ExitOnError)
	var opName string
	var count int
	var useArena bool
	var traceAllocations bool

	flags.StringVar(&opName, "op", "push", "operation to benchmark: push, unshift, shift, pop, set, get or fill")
	flags.IntVar(&count, "n", DEFAULT_BENCH_OP_COUNT, "number of operations")
	flags.BoolVar(&useArena, "arena", false, "carve the array's storage out of an arena instead of the heap")
	flags.BoolVar(&traceAllocations, "trace-alloc", false, "log every allocator call to stderr")

	if showHelp(flags, mainSubCommandArgs, outW) { //only show help
		return
	}

	err := flags.Parse(mainSubCommandArgs)
	if err != nil {
		fmt.Fprintln(errW, "ERROR:", err)
		return ERROR_STATUS_CODE
	}

	if count <= 0 {
		fmt.Fprintln(errW, "ERROR: -n should be positive")
		return ERROR_STATUS_CODE
	}

	var presized bool

	switch opName {
	case "push", "unshift":
		presized = false
	case "shift", "pop", "set", "get", "fill":
		//these operations run against an array that already holds `count` elements
		presized = true
	default:
		fmt.Fprintf(errW, "unknown operation '%s'\n", opName)
		return ERROR_STATUS_CODE
	}

	var alloc memds.Allocator[int64] = memds.HeapAllocator[int64]{}
	var arena *memds.ArenaAllocator[int64]

	if useArena {
		arena = memds.NewArenaAllocator[int64](memds.DEFAULT_ARENA_SEGMENT_LENGTH)
		alloc = arena
	}

	if traceAllocations {
		logger := core.ChildLoggerForSource(zerolog.New(errW), "allocator")
		alloc = memds.WrapWithLogging(alloc, logger)
	}

	initialSize := 0
	if presized {
		initialSize = count
	}

	array, err := memds.NewGrowableArrayWithAllocator(alloc, initialSize, nil)
	if err != nil {
		fmt.Fprintln(errW, "ERROR:", err)
		return ERROR_STATUS_CODE
	}

	var operation func(i int)

	switch opName {
	case "push":
		operation = func(i int) {
			utils.Must(array.Push(int64(i)))
		}
	case "unshift":
		operation = func(i int) {
			utils.Must(array.Unshift(int64(i)))
		}
	case "shift":
		operation = func(i int) {
			utils.Must(array.Shift())
		}
	case "pop":
		operation = func(i int) {
			utils.Must(array.Pop())
		}
	case "set":
		operation = func(i int) {
			utils.MustDo(array.Set(i, int64(i)))
		}
	case "get":
		operation = func(i int) {
			utils.Must(array.Get(i))
		}
	case "fill":
		//single-slot ranges keep the cost of each operation flat
		operation = func(i int) {
			utils.MustDo(array.Fill(int64(i), i, i+1))
		}
	}

	fmt.Fprintf(outW, "%s: ", opName)

	//the array is not safe for concurrent use, all operations run on a single worker
	lotsa.Output = outW
	lotsa.Ops(count, 1, func(i, _ int) {
		operation(i)
	})

	if arena != nil {
		fmt.Fprintf(outW, "arena: %d slots allocated across %d segments\n", arena.AllocatedSlotCount(), arena.SegmentCount())
	}

	return 0
}
