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

// abigen generates typed Go wrappers around the functions of a contract ABI.
package main

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/sunyihoo/contractcall/accounts/abi"
	"github.com/sunyihoo/contractcall/accounts/abi/bind"
	"github.com/sunyihoo/contractcall/internal/debug"
	"github.com/sunyihoo/contractcall/internal/flags"
	"github.com/sunyihoo/contractcall/log"
	"github.com/urfave/cli/v2"
)

var (
	// Flags needed by abigen
	abiFlag = &flags.PathFlag{
		Name:     "abi",
		Usage:    "Path to the contract ABI json to bind, - for STDIN",
		Category: flags.CodegenCategory,
	}
	typeFlag = &cli.StringFlag{
		Name:     "type",
		Usage:    "Struct name for the binding (default = package name)",
		Category: flags.CodegenCategory,
	}
	pkgFlag = &cli.StringFlag{
		Name:     "pkg",
		Usage:    "Package name to generate the binding into",
		Category: flags.CodegenCategory,
	}
	outFlag = &cli.StringFlag{
		Name:     "out",
		Usage:    "Output file for the generated binding (default = stdout)",
		Category: flags.CodegenCategory,
	}
)

var app = flags.NewApp("Contract binding generator")

func init() {
	app.Name = "abigen"
	app.Flags = append([]cli.Flag{abiFlag, typeFlag, pkgFlag, outFlag}, debug.Flags...)
	app.Before = func(ctx *cli.Context) error {
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
	app.Action = abigen
}

var identifierRegexp = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func abigen(c *cli.Context) error {
	if !c.IsSet(abiFlag.Name) {
		return fmt.Errorf("no contract ABI given, use --%s", abiFlag.Name)
	}
	pkg := c.String(pkgFlag.Name)
	if pkg == "" {
		return fmt.Errorf("no destination package specified (--%s)", pkgFlag.Name)
	}
	if !identifierRegexp.MatchString(pkg) {
		return fmt.Errorf("invalid package name %q", pkg)
	}
	kind := c.String(typeFlag.Name)
	if kind == "" {
		kind = abi.ToCamelCase(pkg)
	}
	var (
		input = c.Generic(abiFlag.Name).(*flags.PathString).String()
		data  []byte
		err   error
	)
	if input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(input)
	}
	if err != nil {
		return fmt.Errorf("failed to read input ABI: %v", err)
	}
	code, err := bind.Bind([]string{kind}, []string{string(data)}, pkg)
	if err != nil {
		return fmt.Errorf("failed to generate ABI binding: %v", err)
	}
	// Either flush it out to a file or display on the standard output
	if !c.IsSet(outFlag.Name) {
		fmt.Fprint(c.App.Writer, code)
		return nil
	}
	out := flags.ExpandPath(c.String(outFlag.Name))
	if err := os.WriteFile(out, []byte(code), 0600); err != nil {
		return fmt.Errorf("failed to write ABI binding: %v", err)
	}
	log.Info("Wrote contract binding", "type", kind, "package", pkg, "file", out)
	return nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
