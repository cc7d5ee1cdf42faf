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

package bind

import (
	"context"
	"sort"

	"github.com/sunyihoo/contractcall/accounts/abi"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/log"
)

// BoundContract is the base wrapper object that reflects a contract on the
// Ethereum network. It contains a collection of methods that are used by the
// higher level contract bindings to operate.
//
// A BoundContract holds no mutable state after construction and is safe for
// concurrent use.
//
// BoundContract 是链上合约的基础包装对象，构造后无可变状态，可被并发使用。
type BoundContract struct {
	address   common.Address    // Deployment address of the contract on the Ethereum blockchain
	abi       abi.ABI           // Interface definition used to encode calls and decode results
	transport ContractTransport // Read-write interface to interact with the blockchain
	defaults  *Options          // Options applied to every dispatch unless overridden
}

// NewBoundContract creates a low level contract interface through which calls
// and transactions may be made through. The defaults are copied.
func NewBoundContract(address common.Address, abi abi.ABI, transport ContractTransport, defaults *Options) *BoundContract {
	return &BoundContract{
		address:   address,
		abi:       abi,
		transport: transport,
		defaults:  defaults.Merge(nil),
	}
}

// Address returns the deployment address of the contract.
func (c *BoundContract) Address() common.Address {
	return c.address
}

// ABI returns the interface definition the contract was bound with.
func (c *BoundContract) ABI() abi.ABI {
	return c.abi
}

// Methods returns the invocable functions of the contract sorted by their
// resolved name.
// Methods 返回合约中可调用的函数，按名称排序。
func (c *BoundContract) Methods() []abi.Method {
	methods := make([]abi.Method, 0, len(c.abi.Methods))
	for _, method := range c.abi.Methods {
		methods = append(methods, method)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })
	return methods
}

// Invoke is the generic entry point to a contract function. A trailing
// argument of type Options or *Options is taken as the per-call options and
// everything before it as the function arguments.
//
// Read-only functions (view, pure) are executed as calls and yield the decoded
// result: an empty []interface{} for no outputs, the bare value for a single
// output, a []interface{} otherwise. Every other function is submitted as a
// transaction and yields its common.Hash.
//
// Invoke 是调用合约函数的通用入口：末尾的 Options 参数作为调用选项；
// 只读函数返回解码结果，其余函数发送交易并返回交易哈希。
func (c *BoundContract) Invoke(ctx context.Context, name string, args ...interface{}) (interface{}, error) {
	method, err := c.abi.Method(name)
	if err != nil {
		return nil, err
	}
	args, opts := splitOptions(args)
	if method.IsConstant() {
		return c.call(ctx, method, opts, args)
	}
	hash, err := c.transact(ctx, method, opts, args)
	if err != nil {
		return nil, err
	}
	return hash, nil
}

// Call invokes the contract method as a read-only call with params as input
// values, regardless of its declared mutability.
func (c *BoundContract) Call(ctx context.Context, opts *Options, method string, params ...interface{}) (interface{}, error) {
	m, err := c.abi.Method(method)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, m, opts, params)
}

// Transact invokes the contract method as a transaction with params as input
// values and returns the transaction hash.
func (c *BoundContract) Transact(ctx context.Context, opts *Options, method string, params ...interface{}) (common.Hash, error) {
	m, err := c.abi.Method(method)
	if err != nil {
		return common.Hash{}, err
	}
	return c.transact(ctx, m, opts, params)
}

func (c *BoundContract) call(ctx context.Context, method abi.Method, opts *Options, params []interface{}) (interface{}, error) {
	input, err := method.EncodeCall(params...)
	if err != nil {
		return nil, err
	}
	if c.transport == nil {
		return nil, ErrNoTransport
	}
	opts = c.defaults.Merge(opts)
	log.Trace("Calling contract", "to", c.address, "method", method.Sig, "block", opts.BlockTag())

	output, err := c.transport.CallContract(ctx, CallMsg{To: c.address, Data: input.Data()}, opts)
	if err != nil {
		log.Debug("Contract call failed", "to", c.address, "method", method.Sig, "err", err)
		return nil, err
	}
	return method.DecodeResult(output)
}

func (c *BoundContract) transact(ctx context.Context, method abi.Method, opts *Options, params []interface{}) (common.Hash, error) {
	input, err := method.EncodeCall(params...)
	if err != nil {
		return common.Hash{}, err
	}
	if c.transport == nil {
		return common.Hash{}, ErrNoTransport
	}
	opts = c.defaults.Merge(opts)
	log.Trace("Submitting contract transaction", "to", c.address, "method", method.Sig, "gas", opts.GasLimit)

	hash, err := c.transport.SendTransaction(ctx, CallMsg{To: c.address, Data: input.Data()}, opts)
	if err != nil {
		log.Debug("Contract transaction failed", "to", c.address, "method", method.Sig, "err", err)
		return common.Hash{}, err
	}
	log.Debug("Submitted contract transaction", "to", c.address, "method", method.Sig, "hash", hash)
	return hash, nil
}

// splitOptions strips at most one trailing Options value from args. No ABI
// type accepts an Options value, so the rule never swallows a real argument.
func splitOptions(args []interface{}) ([]interface{}, *Options) {
	if len(args) == 0 {
		return args, nil
	}
	switch opts := args[len(args)-1].(type) {
	case Options:
		return args[:len(args)-1], &opts
	case *Options:
		return args[:len(args)-1], opts
	}
	return args, nil
}
