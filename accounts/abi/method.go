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
	"fmt"
	"strings"

	"github.com/sunyihoo/contractcall/crypto"
)

// FunctionType represents different types of functions a contract might have.
type FunctionType int

const (
	// Constructor represents the constructor of the contract.
	// The constructor function is called while deploying a contract.
	Constructor FunctionType = iota
	// Fallback represents the fallback function.
	// This function is executed if no other function matches the given function
	// signature and no receive function is specified.
	Fallback
	// Receive represents the receive function.
	// This function is executed on plain Ether transfers.
	Receive
	// Function represents a normal function.
	Function
)

func (ft FunctionType) String() string {
	switch ft {
	case Constructor:
		return "constructor"
	case Fallback:
		return "fallback"
	case Receive:
		return "receive"
	default:
		return "function"
	}
}

// Method represents a callable given a `Name` and whether the method is a constant.
// If the method is `Const` no transaction needs to be created for this
// particular Method call. It can easily be simulated using a local VM.
// For example a `Balance()` method only needs to retrieve something
// from the storage and therefore requires no Tx to be sent to the
// network. A method such as `Transact` does require a Tx and thus will
// be flagged `false`.
// Input specifies the required input parameters for this gives method.
//
// Method 描述一个可调用的接口条目（function/constructor/fallback/receive）。
// view 与 pure 方法通过 eth_call 读取，其余方法需要发送交易。
type Method struct {
	// Name is the method name used for internal representation. It's derived from
	// the raw name and a suffix will be added in the case of a function overload.
	//
	// e.g.
	// These are two functions that have the same name:
	// * foo(int,int)
	// * foo(uint,uint)
	// The method name of the first one will be resolved as foo while the second one
	// will be resolved as foo0.
	Name    string
	RawName string // RawName is the raw method name parsed from ABI

	// Type indicates whether the method is a
	// special fallback introduced in solidity v0.6.0
	Type FunctionType

	// StateMutability indicates the mutability state of method,
	// the default value is nonpayable. It can be empty if the abi
	// is generated by legacy compiler.
	StateMutability string

	// Legacy indicators generated by compiler before v0.6.0
	Constant bool
	Payable  bool

	Inputs  Arguments
	Outputs Arguments
	str     string
	// Sig returns the methods string signature according to the ABI spec.
	// e.g.		function foo(uint32 a, int b) = "foo(uint32,int256)"
	// Please note that "int" is substitute for its canonical representation "int256"
	Sig string
	// ID returns the canonical representation of the method's signature used by the
	// abi definition to identify method names and types.
	ID []byte
}

// NewMethod creates a new Method.
// A method should always be created using NewMethod.
// It also precomputes the sig representation and the string representation
// of the method.
func NewMethod(name string, rawName string, funType FunctionType, mutability string, isConst, isPayable bool, inputs Arguments, outputs Arguments) Method {
	var (
		types       = make([]string, len(inputs))
		inputNames  = make([]string, len(inputs))
		outputNames = make([]string, len(outputs))
	)
	for i, input := range inputs {
		inputNames[i] = fmt.Sprintf("%v %v", input.Type, input.Name)
		types[i] = input.Type.String()
	}
	for i, output := range outputs {
		outputNames[i] = output.Type.String()
		if len(output.Name) > 0 {
			outputNames[i] += fmt.Sprintf(" %v", output.Name)
		}
	}
	// legacy compilers only set constant/payable
	if mutability == "" {
		switch {
		case isConst:
			mutability = "view"
		case isPayable:
			mutability = "payable"
		default:
			mutability = "nonpayable"
		}
	}
	// calculate the signature and method id. Note only function
	// has meaningful signature and id.
	var (
		sig string
		id  []byte
	)
	if funType == Function {
		sig = fmt.Sprintf("%v(%v)", rawName, strings.Join(types, ","))
		id = crypto.Keccak256([]byte(sig))[:4]
	}
	identity := fmt.Sprintf("function %v", rawName)
	switch funType {
	case Fallback:
		identity = "fallback"
	case Receive:
		identity = "receive"
	case Constructor:
		identity = "constructor"
	}
	var modifiers string
	if mutability != "nonpayable" {
		modifiers = " " + mutability
	}
	str := fmt.Sprintf("%v(%v)%v returns(%v)", identity, strings.Join(inputNames, ", "), modifiers, strings.Join(outputNames, ", "))

	return Method{
		Name:            name,
		RawName:         rawName,
		Type:            funType,
		StateMutability: mutability,
		Constant:        isConst,
		Payable:         isPayable,
		Inputs:          inputs,
		Outputs:         outputs,
		str:             str,
		Sig:             sig,
		ID:              id,
	}
}

func (method Method) String() string {
	return method.str
}

// IsConstant returns the indicator whether the method is read-only.
// IsConstant 判断方法是否只读（view 或 pure），只读方法走 eth_call。
func (method Method) IsConstant() bool {
	return method.StateMutability == "view" || method.StateMutability == "pure"
}

// IsPayable returns the indicator whether the method can process
// plain ether transfers.
func (method Method) IsPayable() bool {
	return method.StateMutability == "payable"
}

// Selector returns the 4-byte function selector. It is zero for anything but
// plain functions.
func (method Method) Selector() (sel [4]byte) {
	copy(sel[:], method.ID)
	return sel
}

// EncodedCall is the calldata of one invocation: the function selector and
// the head/tail encoded arguments.
// EncodedCall 是一次调用的 calldata：4 字节选择器 + 头/尾编码的参数。
type EncodedCall struct {
	Selector [4]byte
	Payload  []byte
}

// Data returns selector‖payload as sent in the data field of a call.
func (c EncodedCall) Data() []byte {
	data := make([]byte, 0, 4+len(c.Payload))
	data = append(data, c.Selector[:]...)
	return append(data, c.Payload...)
}

// EncodeCall encodes args as a call to method. The argument count must match
// the declared inputs exactly.
func (method Method) EncodeCall(args ...interface{}) (EncodedCall, error) {
	payload, err := method.Inputs.Pack(args...)
	if err != nil {
		return EncodedCall{}, err
	}
	return EncodedCall{Selector: method.Selector(), Payload: payload}, nil
}

// DecodeResult decodes the return data of a call to method.
//
// The shape of the result depends on the number of declared outputs: none
// yields an empty []interface{} regardless of data, one yields the bare value,
// more yield a []interface{} with one entry per output.
//
// DecodeResult 按输出个数决定结果形态：0 个返回空切片（忽略 data），1 个返回值本身，多个返回切片。
func (method Method) DecodeResult(data []byte) (interface{}, error) {
	values, err := method.Outputs.Unpack(data)
	if err != nil {
		return nil, err
	}
	if len(method.Outputs) == 1 {
		return values[0], nil
	}
	return values, nil
}
