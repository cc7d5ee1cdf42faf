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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sunyihoo/contractcall/accounts/abi"
	"github.com/sunyihoo/contractcall/accounts/abi/bind"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
	"github.com/sunyihoo/contractcall/common/hexutil"
	"github.com/sunyihoo/contractcall/crypto"
	"github.com/sunyihoo/contractcall/ethclient"
	"github.com/sunyihoo/contractcall/log"
	"github.com/sunyihoo/contractcall/rpc"
	"github.com/urfave/cli/v2"
)

var errMissingMethod = errors.New("missing method name")

func callAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingMethod
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	contract, client, err := bindContract(ctx, &cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	method, err := lookupMethod(contract.ABI(), ctx.Args().First())
	if err != nil {
		return err
	}
	args, err := parseArgs(method, ctx.Args().Tail())
	if err != nil {
		return err
	}
	result, err := contract.Call(ctx.Context, nil, method.Name, args...)
	if err != nil {
		return explainRevert(contract.ABI(), err)
	}
	printResult(ctx.App.Writer, method, result, ctx.Bool(verboseFlag.Name))
	return nil
}

func sendAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingMethod
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	contract, client, err := bindContract(ctx, &cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	method, err := lookupMethod(contract.ABI(), ctx.Args().First())
	if err != nil {
		return err
	}
	args, err := parseArgs(method, ctx.Args().Tail())
	if err != nil {
		return err
	}
	hash, err := contract.Transact(ctx.Context, nil, method.Name, args...)
	if err != nil {
		return explainRevert(contract.ABI(), err)
	}
	log.Info("Submitted transaction", "method", method.Sig, "hash", hash)
	fmt.Fprintln(ctx.App.Writer, hash.Hex())
	return nil
}

func encodeAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingMethod
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	parsed, err := cfg.loadABI()
	if err != nil {
		return err
	}
	method, err := lookupMethod(parsed, ctx.Args().First())
	if err != nil {
		return err
	}
	args, err := parseArgs(method, ctx.Args().Tail())
	if err != nil {
		return err
	}
	call, err := method.EncodeCall(args...)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(call.Data()))
	return nil
}

func decodeAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("usage: decode <method> <0x-data>")
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	parsed, err := cfg.loadABI()
	if err != nil {
		return err
	}
	method, err := lookupMethod(parsed, ctx.Args().Get(0))
	if err != nil {
		return err
	}
	data, err := hexutil.Decode(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid return data: %w", err)
	}
	result, err := method.DecodeResult(data)
	if err != nil {
		return err
	}
	printResult(ctx.App.Writer, method, result, ctx.Bool(verboseFlag.Name))
	return nil
}

func selectorAction(ctx *cli.Context) error {
	arg := strings.Join(strings.Fields(ctx.Args().First()), "")
	if strings.Contains(arg, "(") {
		// A full signature needs no ABI.
		fmt.Fprintln(ctx.App.Writer, hexutil.Encode(crypto.Keccak256([]byte(arg))[:4]))
		return nil
	}
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	parsed, err := cfg.loadABI()
	if err != nil {
		return err
	}
	if arg != "" {
		method, err := lookupMethod(parsed, arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%s %s\n", hexutil.Encode(method.ID), method.Sig)
		return nil
	}
	for _, method := range bind.NewBoundContract(common.Address{}, parsed, nil, nil).Methods() {
		fmt.Fprintf(ctx.App.Writer, "%s %s\n", hexutil.Encode(method.ID), method.Sig)
	}
	return nil
}

// bindContract dials the configured endpoint and binds the configured
// contract to it. The caller owns the returned client.
func bindContract(ctx *cli.Context, cfg *abicallConfig) (*bind.BoundContract, *ethclient.Client, error) {
	parsed, err := cfg.loadABI()
	if err != nil {
		return nil, nil, err
	}
	address, err := cfg.contractAddress()
	if err != nil {
		return nil, nil, err
	}
	defaults, err := cfg.options(ctx)
	if err != nil {
		return nil, nil, err
	}
	clientOpts, err := cfg.clientOptions()
	if err != nil {
		return nil, nil, err
	}
	c, err := rpc.DialOptions(ctx.Context, cfg.RPC.Endpoint, clientOpts...)
	if err != nil {
		return nil, nil, err
	}
	client := ethclient.NewClient(c)
	return bind.NewBoundContract(address, parsed, client, defaults), client, nil
}

// lookupMethod resolves a function by name or by canonical signature, the
// latter selecting one of several overloads.
func lookupMethod(parsed abi.ABI, name string) (abi.Method, error) {
	if strings.Contains(name, "(") {
		for _, method := range parsed.Methods {
			if method.Sig == name {
				return method, nil
			}
		}
		return abi.Method{}, &abi.ContractError{Kind: abi.ErrUnknownFunction, Name: name}
	}
	return parsed.Method(name)
}

// parseArgs converts command line arguments into values the encoder accepts.
// Integers, addresses and byte strings are passed through as text. Booleans
// are parsed here, and arrays and tuples are read as JSON.
//
// parseArgs 将命令行参数转换为编码器可接受的值；数组和元组以 JSON 形式给出。
func parseArgs(method abi.Method, raw []string) ([]interface{}, error) {
	args := make([]interface{}, len(raw))
	for i, s := range raw {
		if i >= len(method.Inputs) {
			// Surplus arguments are left for the encoder to reject.
			args[i] = s
			continue
		}
		v, err := parseArg(method.Inputs[i].Type, s)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%v %s): %w", i, method.Inputs[i].Type, method.Inputs[i].Name, err)
		}
		args[i] = v
	}
	return args, nil
}

func parseArg(t abi.Type, s string) (interface{}, error) {
	switch t.T {
	case abi.BoolTy:
		return strconv.ParseBool(s)
	case abi.SliceTy, abi.ArrayTy, abi.TupleTy:
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return normalizeJSON(v), nil
	default:
		return s, nil
	}
}

// normalizeJSON replaces JSON numbers with their literal text so that
// integers wider than 64 bits survive.
func normalizeJSON(v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		return v.String()
	case []interface{}:
		for i := range v {
			v[i] = normalizeJSON(v[i])
		}
		return v
	case map[string]interface{}:
		for k := range v {
			v[k] = normalizeJSON(v[k])
		}
		return v
	default:
		return v
	}
}

// printResult writes every output of method on its own line.
func printResult(w io.Writer, method abi.Method, result interface{}, verbose bool) {
	var values []interface{}
	switch len(method.Outputs) {
	case 0:
		return
	case 1:
		values = []interface{}{result}
	default:
		values = result.([]interface{})
	}
	for _, v := range values {
		if verbose {
			fmt.Fprint(w, spew.Sdump(v))
			continue
		}
		fmt.Fprintln(w, formatValue(v))
	}
}

// formatValue renders a decoded value the way it reads in Solidity sources.
func formatValue(v interface{}) string {
	switch v := v.(type) {
	case *bignum.Int:
		return v.String()
	case common.Address:
		return v.Hex()
	case common.Hash:
		return v.Hex()
	case []byte:
		return hexutil.Encode(v)
	case [24]byte:
		return hexutil.Encode(v[:])
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case []interface{}:
		return "[" + joinValues(v) + "]"
	default:
		return fmt.Sprint(v)
	}
}

func joinValues(values []interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}

// explainRevert replaces a revert error with its decoded reason when the
// node returned revert data.
func explainRevert(parsed abi.ABI, err error) error {
	data, ok := ethclient.RevertErrorData(err)
	if !ok {
		return err
	}
	if reason, uerr := abi.UnpackRevert(data); uerr == nil {
		return fmt.Errorf("execution reverted: %s", reason)
	}
	if len(data) >= 4 {
		var id [4]byte
		copy(id[:], data[:4])
		if custom, lerr := parsed.ErrorByID(id); lerr == nil {
			if values, uerr := custom.Unpack(data); uerr == nil {
				return fmt.Errorf("execution reverted: %s(%s)", custom.Name, joinValues(values.([]interface{})))
			}
			return fmt.Errorf("execution reverted: %s", custom.Name)
		}
	}
	return fmt.Errorf("execution reverted with data %s: %w", hexutil.Encode(data), err)
}
