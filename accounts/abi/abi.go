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

package abi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
	"github.com/sunyihoo/contractcall/crypto"
)

// The ABI holds information about a contract's context and available
// invocable methods. It will allow you to type check function calls and
// packs data accordingly.
//
// An ABI is built once and is read-only afterwards, so it can be shared by
// concurrent calls.
//
// ABI 保存合约接口定义：可调用方法、事件、错误等。构建后只读，可被并发调用安全共享。
type ABI struct {
	Constructor Method
	Methods     map[string]Method
	Events      map[string]Event
	Errors      map[string]Error

	// Additional "special" functions introduced in solidity v0.6.0.
	// It's separated from the original default fallback. Each contract
	// can only define one fallback and receive function.
	Fallback Method // Note it's also used to represent legacy fallback before v0.6.0
	Receive  Method
}

// NewABI builds an ABI from pre-parsed entries.
//
// Overloaded functions get the names name, name0, name1, ... in declaration
// order. Two functions sharing a selector yield ErrSelectorCollision, a bad
// parameter type ErrUnsupportedType.
//
// NewABI 由预解析条目构建 ABI；选择器冲突返回 ErrSelectorCollision。
func NewABI(entries []Entry) (ABI, error) {
	abi := ABI{
		Methods: make(map[string]Method),
		Events:  make(map[string]Event),
		Errors:  make(map[string]Error),
	}
	selectors := make(map[[4]byte]string)
	for _, field := range entries {
		inputs, err := NewArguments(field.Inputs)
		if err != nil {
			return ABI{}, fmt.Errorf("abi: %s %q inputs: %w", field.Type, field.Name, err)
		}
		outputs, err := NewArguments(field.Outputs)
		if err != nil {
			return ABI{}, fmt.Errorf("abi: %s %q outputs: %w", field.Type, field.Name, err)
		}
		switch field.Type {
		case "constructor":
			abi.Constructor = NewMethod("", "", Constructor, field.StateMutability, field.Constant, field.Payable, inputs, nil)
		case "function", "":
			method := NewMethod("", field.Name, Function, field.StateMutability, field.Constant, field.Payable, inputs, outputs)
			sel := method.Selector()
			if prev, ok := selectors[sel]; ok {
				return ABI{}, &ContractError{
					Kind: ErrSelectorCollision,
					Name: method.Sig,
					Msg:  fmt.Sprintf("selector %#x already used by %s", sel, prev),
				}
			}
			selectors[sel] = method.Sig
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Methods[s]; return ok })
			method.Name = name
			abi.Methods[name] = method
		case "fallback":
			// New introduced function type in v0.6.0, check more detail
			// here https://solidity.readthedocs.io/en/v0.6.0/contracts.html#fallback-function
			if abi.HasFallback() {
				return ABI{}, errors.New("only single fallback is allowed")
			}
			abi.Fallback = NewMethod("", "", Fallback, field.StateMutability, field.Constant, field.Payable, nil, nil)
		case "receive":
			if abi.HasReceive() {
				return ABI{}, errors.New("only single receive is allowed")
			}
			if field.StateMutability != "payable" {
				return ABI{}, errors.New("the statemutability of receive can only be payable")
			}
			abi.Receive = NewMethod("", "", Receive, field.StateMutability, field.Constant, field.Payable, nil, nil)
		case "event":
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Events[s]; return ok })
			abi.Events[name] = NewEvent(name, field.Name, field.Anonymous, inputs)
		case "error":
			// Errors cannot be overloaded or overridden but are inherited,
			// no need to resolve the name conflict here.
			abi.Errors[field.Name] = NewError(field.Name, inputs)
		default:
			return ABI{}, fmt.Errorf("abi: could not recognize type %v of field %v", field.Type, field.Name)
		}
	}
	return abi, nil
}

// JSON returns a parsed ABI interface and error if it failed.
func JSON(reader io.Reader) (ABI, error) {
	dec := json.NewDecoder(reader)

	var abi ABI
	if err := dec.Decode(&abi); err != nil {
		return ABI{}, err
	}
	return abi, nil
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (abi *ABI) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	parsed, err := NewABI(entries)
	if err != nil {
		return err
	}
	*abi = parsed
	return nil
}

// Method looks up a function by its resolved name.
func (abi ABI) Method(name string) (Method, error) {
	method, ok := abi.Methods[name]
	if !ok {
		return Method{}, &ContractError{Kind: ErrUnknownFunction, Name: name}
	}
	return method, nil
}

// Pack the given method name to conform the ABI. Method call's data
// will consist of method_id, args0, arg1, ... argN. Method id consists
// of 4 bytes and arguments are all 32 bytes.
// Method ids are created from the first 4 bytes of the hash of the
// methods string signature. (signature = baz(uint32,string32))
//
// The empty name packs constructor arguments, which carry no selector.
func (abi ABI) Pack(name string, args ...interface{}) ([]byte, error) {
	// Fetch the ABI of the requested method
	if name == "" {
		// constructor
		return abi.Constructor.Inputs.Pack(args...)
	}
	method, err := abi.Method(name)
	if err != nil {
		return nil, err
	}
	call, err := method.EncodeCall(args...)
	if err != nil {
		return nil, err
	}
	return call.Data(), nil
}

func (abi ABI) getArguments(name string) (Arguments, error) {
	if method, ok := abi.Methods[name]; ok {
		return method.Outputs, nil
	}
	if event, ok := abi.Events[name]; ok {
		return event.Inputs, nil
	}
	if err, ok := abi.Errors[name]; ok {
		return err.Inputs, nil
	}
	return nil, &ContractError{Kind: ErrUnknownFunction, Name: name, Msg: "no method, event or error with this name"}
}

// Unpack unpacks the output according to the abi specification.
// The result is always a list, one entry per output.
func (abi ABI) Unpack(name string, data []byte) ([]interface{}, error) {
	args, err := abi.getArguments(name)
	if err != nil {
		return nil, err
	}
	return args.Unpack(data)
}

// UnpackIntoMap unpacks a log or return data into a map of argument name to value.
func (abi ABI) UnpackIntoMap(v map[string]interface{}, name string, data []byte) (err error) {
	args, err := abi.getArguments(name)
	if err != nil {
		return err
	}
	return args.UnpackIntoMap(v, data)
}

// MethodById looks up a method by the 4-byte id,
// returns nil if none found.
func (abi *ABI) MethodById(sigdata []byte) (*Method, error) {
	if len(sigdata) < 4 {
		return nil, fmt.Errorf("data too short (%d bytes) for abi method lookup", len(sigdata))
	}
	for _, method := range abi.Methods {
		if bytes.Equal(method.ID, sigdata[:4]) {
			return &method, nil
		}
	}
	return nil, &ContractError{Kind: ErrUnknownFunction, Name: fmt.Sprintf("%#x", sigdata[:4]), Msg: "no method with this id"}
}

// EventByID looks an event up by its topic hash in the
// ABI and returns nil if none found.
func (abi *ABI) EventByID(topic common.Hash) (*Event, error) {
	for _, event := range abi.Events {
		if bytes.Equal(event.ID.Bytes(), topic.Bytes()) {
			return &event, nil
		}
	}
	return nil, fmt.Errorf("no event with id: %#x", topic.Hex())
}

// ErrorByID looks up an error by the 4-byte id,
// returns nil if none found.
func (abi *ABI) ErrorByID(sigdata [4]byte) (*Error, error) {
	for _, errABI := range abi.Errors {
		if bytes.Equal(errABI.ID[:4], sigdata[:]) {
			return &errABI, nil
		}
	}
	return nil, fmt.Errorf("no error with id: %#x", sigdata[:])
}

// HasFallback returns an indicator whether a fallback function is included.
func (abi *ABI) HasFallback() bool {
	return abi.Fallback.Type == Fallback
}

// HasReceive returns an indicator whether a receive function is included.
func (abi *ABI) HasReceive() bool {
	return abi.Receive.Type == Receive
}

// revertSelector is a special function selector for revert reason unpacking.
var revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

// panicSelector is a special function selector for panic reason unpacking.
var panicSelector = crypto.Keccak256([]byte("Panic(uint256)"))[:4]

// panicReasons map is for readable panic codes
// see this linkage for the details
// https://docs.soliditylang.org/en/v0.8.21/control-structures.html#panic-via-assert-and-error-via-require
// the reason string list is copied from ether.js
// https://github.com/ethers-io/ethers.js/blob/fa3a883ff7c88611ce766f58bdd4b8ac90814470/src.ts/abi/interface.ts#L207-L218
var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

var (
	stringArgs  = Arguments{{Type: Type{T: StringTy, stringKind: "string"}}}
	uint256Args = Arguments{{Type: Type{T: UintTy, Size: 256, stringKind: "uint256"}}}
)

// UnpackRevert resolves the abi-encoded revert reason. According to the solidity
// spec https://solidity.readthedocs.io/en/latest/control-structures.html#revert,
// the provided revert reason is abi-encoded as if it were a call to function
// `Error(string)` or `Panic(uint256)`. So it's a special tool for it.
func UnpackRevert(data []byte) (string, error) {
	if len(data) < 4 {
		return "", errors.New("invalid data for unpacking")
	}
	switch {
	case bytes.Equal(data[:4], revertSelector):
		unpacked, err := stringArgs.Unpack(data[4:])
		if err != nil {
			return "", err
		}
		return unpacked[0].(string), nil
	case bytes.Equal(data[:4], panicSelector):
		unpacked, err := uint256Args.Unpack(data[4:])
		if err != nil {
			return "", err
		}
		pCode := unpacked[0].(*bignum.Int)
		// uint64 safety check for future
		// but the code is not bigger than MAX(uint64) now
		if code, err := pCode.Uint64(); err == nil {
			if reason, ok := panicReasons[code]; ok {
				return reason, nil
			}
		}
		return fmt.Sprintf("unknown panic code: %s", pCode.Hex()), nil
	default:
		return "", errors.New("invalid data for unpacking")
	}
}
