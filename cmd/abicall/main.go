// Copyright 2025 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// abicall invokes functions of a deployed contract through its ABI.
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/sunyihoo/contractcall/internal/debug"
	"github.com/sunyihoo/contractcall/internal/flags"
	"github.com/urfave/cli/v2"
)

var app = flags.NewApp("ABI driven contract caller")

var (
	verboseFlag = &cli.BoolFlag{
		Name:     "verbose",
		Usage:    "Print decoded values with their Go types",
		Category: flags.MiscCategory,
	}

	callCommand = &cli.Command{
		Action:    callAction,
		Name:      "call",
		Usage:     "Read a view function and print its outputs",
		ArgsUsage: "<method> [args...]",
		Flags:     []cli.Flag{verboseFlag},
		Description: `
Encodes the call, runs it with eth_call against the configured block and
prints each decoded output on its own line. Trailing arguments that look like
arrays or tuples are given as JSON, e.g. '[1,2]' or '{"owner":"0x..."}'.`,
	}
	sendCommand = &cli.Command{
		Action:    sendAction,
		Name:      "send",
		Usage:     "Submit a state-changing function as a transaction",
		ArgsUsage: "<method> [args...]",
		Description: `
Encodes the call and submits it with eth_sendTransaction. The node signs with
the account given by --from. The transaction hash is printed.`,
	}
	encodeCommand = &cli.Command{
		Action:    encodeAction,
		Name:      "encode",
		Usage:     "Print the calldata of a function call without contacting a node",
		ArgsUsage: "<method> [args...]",
	}
	decodeCommand = &cli.Command{
		Action:    decodeAction,
		Name:      "decode",
		Usage:     "Decode the hex encoded return data of a function",
		ArgsUsage: "<method> <0x-data>",
		Flags:     []cli.Flag{verboseFlag},
	}
	selectorCommand = &cli.Command{
		Action:    selectorAction,
		Name:      "selector",
		Usage:     "Print function selectors",
		ArgsUsage: "[method | signature]",
		Description: `
With no argument every function of the ABI is listed with its selector. A
canonical signature such as 'transfer(address,uint256)' is hashed directly and
needs no ABI file.`,
	}
	dumpConfigCommand = &cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Export configuration values in a TOML format",
		ArgsUsage:   "<dumpfile (optional)>",
		Description: `Export configuration values in TOML format (to stdout by default).`,
	}
)

func init() {
	app.Flags = slices.Concat([]cli.Flag{
		configFileFlag,
		rpcEndpointFlag,
		rpcHeaderFlag,
		rpcJWTSecretFlag,
		contractAddressFlag,
		contractABIFlag,
		fromFlag,
		gasLimitFlag,
		gasPriceFlag,
		valueFlag,
		blockFlag,
	}, debug.Flags)
	app.Commands = []*cli.Command{
		callCommand,
		sendCommand,
		encodeCommand,
		decodeCommand,
		selectorCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
