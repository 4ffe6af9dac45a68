// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

// ttkic assembles and runs TTK91 programs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lassandro/gottk91/pkg/assembler"
	"github.com/lassandro/gottk91/pkg/machine"
)

var opts struct {
	benchIterations uint64
	benchIO         bool
	dry             bool
	stackSize       uint64
	dumpSymbols     bool
}

var rootCmd = &cobra.Command{
	Use:     "ttkic <file>",
	Short:   "TTK91 assembler and interpreter",
	Long:    "ttkic assembles a TTK91 program and executes it immediately.",
	Version: "1.0.0",
	Args:    cobra.ExactArgs(1),

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	flags := rootCmd.Flags()

	flags.Uint64VarP(&opts.benchIterations, "bench-iterations", "i", 1,
		"run the program this many times under one clock")
	flags.BoolVar(&opts.benchIO, "bench-io", false,
		"keep OUT writing during benchmark iterations")
	flags.BoolVarP(&opts.dry, "dry", "d", false,
		"assemble only, do not execute")
	flags.Uint64Var(&opts.stackSize, "stack-size", machine.DefaultStackSize,
		"stack slots to allocate")
	flags.BoolVar(&opts.dumpSymbols, "dump-symbols", false,
		"print the symbol and label tables after assembly")

	// Short spellings kept for muscle memory.
	flags.BoolVar(&opts.benchIO, "bio", false, "")
	flags.Uint64Var(&opts.stackSize, "ss", machine.DefaultStackSize, "")
	flags.MarkHidden("bio")
	flags.MarkHidden("ss")

	// glog's -v/-logtostderr and friends.
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func run(path string) error {
	// glog logs complain until the stdlib flag set is marked parsed.
	flag.CommandLine.Parse(nil)

	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if opts.benchIterations < 1 {
		opts.benchIterations = 1
	}
	if opts.benchIterations > 500_000_000 {
		fmt.Fprintf(os.Stderr,
			"Warning: %d iterations will take a while, this is your own fault.\n",
			opts.benchIterations)
	}

	var symtab assembler.SymTable
	prog, err := assembler.Compile(string(source), assembler.CompileOptions{
		Filename: path,
		Output:   os.Stdout,
		Color:    term.IsTerminal(int(os.Stdout.Fd())),
	}, &symtab)

	if opts.dumpSymbols {
		pp.Fprintf(os.Stderr, "%v\n", symtab)
	}
	if err != nil {
		return err
	}

	if opts.dry {
		return nil
	}

	rt := machine.NewRuntime(prog, machine.Options{
		StackSize:       int(opts.stackSize),
		BenchIterations: opts.benchIterations,
		BenchIO:         opts.benchIO,
	})

	fmt.Println("Starting execution...")

	res, err := rt.Execute()
	if err != nil {
		return err
	}

	if res.SafetyHalt {
		fmt.Println("Nag: no terminating instruction found. " +
			"Perhaps you forgot the `SVC SP, =Halt`?")
	}

	machine.ReportTimings(os.Stdout, res)

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
