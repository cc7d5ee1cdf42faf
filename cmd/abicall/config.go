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
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"strings"
	"unicode"

	"github.com/naoina/toml"
	"github.com/sunyihoo/contractcall/accounts/abi"
	"github.com/sunyihoo/contractcall/accounts/abi/bind"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/hexutil"
	"github.com/sunyihoo/contractcall/internal/flags"
	"github.com/sunyihoo/contractcall/log"
	"github.com/sunyihoo/contractcall/rpc"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}
	rpcEndpointFlag = &cli.StringFlag{
		Name:     "rpc",
		Usage:    "JSON-RPC endpoint of the node (http, https, ws or wss)",
		EnvVars:  []string{"ABICALL_RPC"},
		Category: flags.RPCCategory,
	}
	rpcHeaderFlag = &cli.StringSliceFlag{
		Name:     "rpc.header",
		Usage:    "Extra HTTP header sent with every request, as 'Key: Value'",
		Category: flags.RPCCategory,
	}
	rpcJWTSecretFlag = &flags.PathFlag{
		Name:     "rpc.jwtsecret",
		Usage:    "Path to a hex encoded 32 byte secret used to sign JWT bearer tokens",
		Category: flags.RPCCategory,
	}
	contractAddressFlag = &cli.StringFlag{
		Name:     "contract",
		Usage:    "Address of the deployed contract",
		Category: flags.ContractCategory,
	}
	contractABIFlag = &flags.PathFlag{
		Name:     "abi",
		Usage:    "Path to the contract ABI JSON file",
		Category: flags.ContractCategory,
	}
	fromFlag = &cli.StringFlag{
		Name:     "from",
		Usage:    "Sender address attached to calls and transactions",
		Category: flags.TxCategory,
	}
	gasLimitFlag = &cli.Uint64Flag{
		Name:     "gas",
		Usage:    "Gas limit attached to calls and transactions (0 lets the node decide)",
		Category: flags.TxCategory,
	}
	gasPriceFlag = &flags.BigFlag{
		Name:     "gasprice",
		Usage:    "Gas price in wei",
		Category: flags.TxCategory,
	}
	valueFlag = &flags.BigFlag{
		Name:     "value",
		Usage:    "Amount of wei transferred with a transaction",
		Category: flags.TxCategory,
	}
	blockFlag = &cli.StringFlag{
		Name:     "block",
		Usage:    "Block tag or number reads are evaluated against (latest, pending, safe, finalized, earliest or a number)",
		Category: flags.TxCategory,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// rpcConfig describes how to reach the node.
type rpcConfig struct {
	Endpoint  string
	JWTSecret string            `toml:",omitempty"` // 指向十六进制密钥文件的路径。
	Headers   map[string]string `toml:",omitempty"`
}

// contractConfig names the contract every command talks to.
type contractConfig struct {
	Address string `toml:",omitempty"`
	ABI     string `toml:",omitempty"` // ABI JSON 文件路径。
}

// defaultsConfig holds the per-contract default call options.
type defaultsConfig struct {
	From     string `toml:",omitempty"`
	GasLimit uint64 `toml:",omitempty"`
	Block    string `toml:",omitempty"`
}

type abicallConfig struct {
	RPC      rpcConfig
	Contract contractConfig
	Defaults defaultsConfig
}

var defaultConfig = abicallConfig{
	RPC:      rpcConfig{Endpoint: "http://localhost:8545"},
	Defaults: defaultsConfig{Block: "latest"},
}

func loadConfig(file string, cfg *abicallConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// loadBaseConfig loads the abicallConfig based on the given command line
// parameters and config file. Flags take precedence over the file.
//
// loadBaseConfig 依次应用默认值、配置文件和命令行标志，后者优先。
func loadBaseConfig(ctx *cli.Context) (abicallConfig, error) {
	cfg := defaultConfig

	// Load config file.
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(flags.ExpandPath(file), &cfg); err != nil {
			return cfg, err
		}
	}
	// Apply flags.
	if ctx.IsSet(rpcEndpointFlag.Name) {
		cfg.RPC.Endpoint = ctx.String(rpcEndpointFlag.Name)
	}
	if ctx.IsSet(rpcJWTSecretFlag.Name) {
		cfg.RPC.JWTSecret = ctx.Generic(rpcJWTSecretFlag.Name).(*flags.PathString).String()
	}
	for _, header := range ctx.StringSlice(rpcHeaderFlag.Name) {
		key, value, ok := strings.Cut(header, ":")
		if !ok {
			return cfg, fmt.Errorf("invalid --%s %q, want 'Key: Value'", rpcHeaderFlag.Name, header)
		}
		if cfg.RPC.Headers == nil {
			cfg.RPC.Headers = make(map[string]string)
		}
		cfg.RPC.Headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if ctx.IsSet(contractAddressFlag.Name) {
		cfg.Contract.Address = ctx.String(contractAddressFlag.Name)
	}
	if ctx.IsSet(contractABIFlag.Name) {
		cfg.Contract.ABI = ctx.Generic(contractABIFlag.Name).(*flags.PathString).String()
	}
	if ctx.IsSet(fromFlag.Name) {
		cfg.Defaults.From = ctx.String(fromFlag.Name)
	}
	if ctx.IsSet(gasLimitFlag.Name) {
		cfg.Defaults.GasLimit = ctx.Uint64(gasLimitFlag.Name)
	}
	if ctx.IsSet(blockFlag.Name) {
		cfg.Defaults.Block = ctx.String(blockFlag.Name)
	}
	return cfg, nil
}

// loadABI parses the ABI file named by the configuration.
func (cfg *abicallConfig) loadABI() (abi.ABI, error) {
	if cfg.Contract.ABI == "" {
		return abi.ABI{}, fmt.Errorf("no ABI file given, use --%s or Contract.ABI", contractABIFlag.Name)
	}
	f, err := os.Open(flags.ExpandPath(cfg.Contract.ABI))
	if err != nil {
		return abi.ABI{}, err
	}
	defer f.Close()
	parsed, err := abi.JSON(f)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("invalid ABI file %s: %w", cfg.Contract.ABI, err)
	}
	return parsed, nil
}

// contractAddress validates and returns the configured contract address.
func (cfg *abicallConfig) contractAddress() (common.Address, error) {
	if !common.IsHexAddress(cfg.Contract.Address) {
		return common.Address{}, fmt.Errorf("invalid contract address %q, use --%s or Contract.Address", cfg.Contract.Address, contractAddressFlag.Name)
	}
	return common.HexToAddress(cfg.Contract.Address), nil
}

// options turns the configured defaults into call options. Gas price and
// value exist only as flags.
func (cfg *abicallConfig) options(ctx *cli.Context) (*bind.Options, error) {
	opts := &bind.Options{
		GasLimit: cfg.Defaults.GasLimit,
		Block:    cfg.Defaults.Block,
		GasPrice: flags.GlobalBig(ctx, gasPriceFlag.Name),
		Value:    flags.GlobalBig(ctx, valueFlag.Name),
	}
	if cfg.Defaults.From != "" {
		if !common.IsHexAddress(cfg.Defaults.From) {
			return nil, fmt.Errorf("invalid sender address %q", cfg.Defaults.From)
		}
		from := common.HexToAddress(cfg.Defaults.From)
		opts.From = &from
	}
	return opts, nil
}

// clientOptions translates the RPC section into transport options.
func (cfg *abicallConfig) clientOptions() ([]rpc.ClientOption, error) {
	var opts []rpc.ClientOption
	if len(cfg.RPC.Headers) > 0 {
		headers := make(http.Header, len(cfg.RPC.Headers))
		for key, value := range cfg.RPC.Headers {
			headers.Set(key, value)
		}
		opts = append(opts, rpc.WithHeaders(headers))
	}
	if cfg.RPC.JWTSecret != "" {
		secret, err := readJWTSecret(flags.ExpandPath(cfg.RPC.JWTSecret))
		if err != nil {
			return nil, err
		}
		opts = append(opts, rpc.WithHTTPAuth(rpc.NewJWTAuth(secret)))
	}
	return opts, nil
}

// readJWTSecret reads a hex encoded 32 byte secret from file.
func readJWTSecret(file string) ([32]byte, error) {
	var secret [32]byte
	data, err := os.ReadFile(file)
	if err != nil {
		return secret, fmt.Errorf("cannot read JWT secret: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if !strings.HasPrefix(text, "0x") {
		text = "0x" + text
	}
	raw, err := hexutil.Decode(text)
	if err != nil || len(raw) != len(secret) {
		return secret, fmt.Errorf("invalid JWT secret in %s: want %d hex encoded bytes", file, len(secret))
	}
	copy(secret[:], raw)
	log.Debug("Loaded JWT secret", "path", file)
	return secret, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadBaseConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
