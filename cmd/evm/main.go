// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// evm executes EVM code snippets, either given inline as hex or read from
// a file, and prints the return data, leftover gas, and (optionally) a
// full opcode trace.
package main

import (
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/afero"
	"gopkg.in/urfave/cli.v1"

	"github.com/coreweave-labs/evmcore/common"
	"github.com/coreweave-labs/evmcore/core/state"
	"github.com/coreweave-labs/evmcore/core/vm"
	"github.com/coreweave-labs/evmcore/core/vm/runtime"
	"github.com/coreweave-labs/evmcore/crypto"
	"github.com/coreweave-labs/evmcore/logger/glog"
)

// Version is the application revision identifier. It can be set with the
// linker as in: go build -ldflags "-X main.Version="`git describe --tags`
var Version = "unknown"

// fs is the filesystem code/input files are read through; tests swap it
// for an in-memory afero.Fs so --codefile/--inputfile don't touch disk.
var fs afero.Fs = afero.NewOsFs()

var (
	CodeFlag = cli.StringFlag{
		Name:  "code",
		Usage: "EVM code as a hex string",
	}
	CodeFileFlag = cli.StringFlag{
		Name:  "codefile",
		Usage: "file containing EVM code as a hex string",
	}
	InputFlag = cli.StringFlag{
		Name:  "input",
		Usage: "input calldata as a hex string",
	}
	InputFileFlag = cli.StringFlag{
		Name:  "inputfile",
		Usage: "file containing input calldata as a hex string",
	}
	GasFlag = cli.StringFlag{
		Name:  "gas",
		Usage: "gas limit for the evm",
		Value: "10000000",
	}
	PriceFlag = cli.StringFlag{
		Name:  "price",
		Usage: "gas price set for the evm",
		Value: "0",
	}
	ValueFlag = cli.StringFlag{
		Name:  "value",
		Usage: "value sent with the call",
		Value: "0",
	}
	StateDBFlag = cli.StringFlag{
		Name:  "statedb",
		Usage: "directory of a goleveldb state store to run against (defaults to an ephemeral in-memory store)",
	}
	TraceDBFlag = cli.StringFlag{
		Name:  "tracedb",
		Usage: "boltdb file to persist the opcode trace to",
	}
	DebugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "print a full opcode-by-opcode trace to stderr",
	}
	DumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "spew the interpreter metrics after the run (and the state database with --debug)",
	}
	VerbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "sets the glog verbosity level",
	}
)

var app *cli.App

func init() {
	app = cli.NewApp()
	app.Name = "evm"
	app.Version = Version
	app.Usage = "run EVM code snippets from the command line"
	app.Action = run
	app.Flags = []cli.Flag{
		CodeFlag,
		CodeFileFlag,
		InputFlag,
		InputFileFlag,
		GasFlag,
		PriceFlag,
		ValueFlag,
		StateDBFlag,
		TraceDBFlag,
		DebugFlag,
		DumpFlag,
		VerbosityFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:   "repl",
			Usage:  "interactively run one code snippet per line",
			Action: repl,
			Flags: []cli.Flag{
				GasFlag,
				StateDBFlag,
				DebugFlag,
			},
		},
	}
}

// readHexArg resolves one of an inline-hex/file-backed flag pair: the
// inline flag wins if both are set.
func readHexArg(ctx *cli.Context, inline, file cli.StringFlag) ([]byte, error) {
	if s := ctx.GlobalString(inline.Name); s != "" {
		return common.Hex2Bytes(strings.TrimPrefix(s, "0x")), nil
	}
	if path := ctx.GlobalString(file.Name); path != "" {
		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %v", file.Name, err)
		}
		return common.Hex2Bytes(strings.TrimSpace(strings.TrimPrefix(string(raw), "0x"))), nil
	}
	return nil, nil
}

// openStateDB returns the statedb flag's goleveldb store, or a fresh
// MemoryStateDB when no directory was given.
func openStateDB(dir string) (interface {
	vm.Database
	Close() error
}, error) {
	if dir == "" {
		return memoryCloser{state.NewMemoryStateDB()}, nil
	}
	return state.OpenLevelDBStateDB(dir)
}

// memoryCloser adapts MemoryStateDB (which outlives nothing on disk) to
// the same Close-ability as LevelDBStateDB, so run/repl can defer one
// Close regardless of which store backs the session.
type memoryCloser struct{ *state.MemoryStateDB }

func (memoryCloser) Close() error { return nil }

func run(ctx *cli.Context) error {
	glog.SetToStderr(true)
	glog.SetV(ctx.GlobalInt(VerbosityFlag.Name))

	code, err := readHexArg(ctx, CodeFlag, CodeFileFlag)
	if err != nil {
		return err
	}
	input, err := readHexArg(ctx, InputFlag, InputFileFlag)
	if err != nil {
		return err
	}

	gas, ok := new(big.Int).SetString(ctx.GlobalString(GasFlag.Name), 0)
	if !ok {
		return fmt.Errorf("malformed %s flag value %q", GasFlag.Name, ctx.GlobalString(GasFlag.Name))
	}
	price, ok := new(big.Int).SetString(ctx.GlobalString(PriceFlag.Name), 0)
	if !ok {
		return fmt.Errorf("malformed %s flag value %q", PriceFlag.Name, ctx.GlobalString(PriceFlag.Name))
	}
	value, ok := new(big.Int).SetString(ctx.GlobalString(ValueFlag.Name), 0)
	if !ok {
		return fmt.Errorf("malformed %s flag value %q", ValueFlag.Name, ctx.GlobalString(ValueFlag.Name))
	}

	db, err := openStateDB(ctx.GlobalString(StateDBFlag.Name))
	if err != nil {
		return fmt.Errorf("opening statedb: %v", err)
	}
	defer db.Close()

	cfg := &runtime.Config{
		GasLimit: gas,
		GasPrice: price,
		Value:    value,
		State:    db,
	}

	var tracer *vm.TraceStore
	if path := ctx.GlobalString(TraceDBFlag.Name); path != "" {
		codeHash := crypto.Keccak256Hash(code)
		tracer, err = vm.OpenTraceStore(path, codeHash.Bytes())
		if err != nil {
			return fmt.Errorf("opening tracedb: %v", err)
		}
		defer tracer.Close()
		cfg.Tracer = tracer
		if ctx.GlobalBool(DebugFlag.Name) {
			defer func() { vm.WriteTrace(os.Stderr, tracer.StructLogs()) }()
		}
	} else if ctx.GlobalBool(DebugFlag.Name) {
		logger := vm.NewStructLogger()
		cfg.Tracer = logger
		defer func() { vm.WriteTrace(os.Stderr, logger.StructLogs()) }()
	}
	cfg.Metrics = true

	tstart := time.Now()
	ret, leftOverGas, err := runtime.Execute(code, input, cfg)
	elapsed := time.Since(tstart)

	fmt.Printf("OUT: 0x%x\n", ret)
	fmt.Printf("LEFTOVER GAS: %d\n", leftOverGas)
	fmt.Printf("EXECUTION TIME: %v\n", elapsed)
	if err != nil {
		fmt.Printf("%s\n", color.RedString("ERROR: %v", err))
	}

	if ctx.GlobalBool(DumpFlag.Name) {
		spew.Dump(vm.Metrics())
		if ctx.GlobalBool(DebugFlag.Name) {
			spew.Dump(cfg.State)
		}
	}

	return nil
}

// repl reads one hex-encoded code snippet per line from stdin (via liner,
// so history/editing works in an interactive terminal) and runs each
// against a shared statedb, so SSTORE/SLOAD effects persist snippet to
// snippet within one session.
func repl(ctx *cli.Context) error {
	gas, ok := new(big.Int).SetString(ctx.GlobalString(GasFlag.Name), 0)
	if !ok {
		gas = big.NewInt(10000000)
	}

	db, err := openStateDB(ctx.GlobalString(StateDBFlag.Name))
	if err != nil {
		return fmt.Errorf("opening statedb: %v", err)
	}
	defer db.Close()

	cfg := &runtime.Config{GasLimit: new(big.Int).Set(gas), State: db}
	if ctx.GlobalBool(DebugFlag.Name) {
		logger := vm.NewStructLogger()
		cfg.Tracer = logger
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		text, err := line.Prompt("evm> ")
		if err != nil {
			break
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		line.AppendHistory(text)

		code := common.Hex2Bytes(strings.TrimPrefix(text, "0x"))
		cfg.GasLimit = new(big.Int).Set(gas)
		ret, leftOverGas, err := runtime.Execute(code, nil, cfg)
		if logger, ok := cfg.Tracer.(*vm.StructLogger); ok {
			vm.WriteTrace(os.Stderr, logger.StructLogs())
			cfg.Tracer = vm.NewStructLogger()
		}
		if err != nil {
			fmt.Println(color.RedString("ERROR: %v", err))
			continue
		}
		fmt.Printf("=> 0x%x (gas left: %d)\n", ret, leftOverGas)
	}
	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
