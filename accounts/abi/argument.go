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
	"encoding/json"
	"fmt"
	"strings"
)

// Argument holds the name of the argument and the corresponding type.
// Types are used when packing and testing arguments.
type Argument struct {
	Name    string
	Type    Type
	Indexed bool // indexed is only used by events
}

// Arguments is an ordered list of arguments, the inputs or outputs of an
// interface entry.
type Arguments []Argument

// ArgumentMarshaling is the pre-parsed form of one parameter of an interface
// entry, as found in JSON ABI files.
// ArgumentMarshaling 是接口条目中单个参数的预解析形式。
type ArgumentMarshaling struct {
	Name         string
	Type         string
	InternalType string
	Components   []ArgumentMarshaling
	Indexed      bool
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}
	*argument, err = newArgument(arg)
	return err
}

func newArgument(arg ArgumentMarshaling) (Argument, error) {
	typ, err := NewType(arg.Type, arg.InternalType, arg.Components)
	if err != nil {
		return Argument{}, err
	}
	return Argument{Name: arg.Name, Type: typ, Indexed: arg.Indexed}, nil
}

// NewArguments builds Arguments from their pre-parsed form.
func NewArguments(args []ArgumentMarshaling) (Arguments, error) {
	ret := make(Arguments, 0, len(args))
	for _, a := range args {
		arg, err := newArgument(a)
		if err != nil {
			return nil, err
		}
		ret = append(ret, arg)
	}
	return ret, nil
}

// NonIndexed returns the arguments with indexed arguments filtered out.
func (arguments Arguments) NonIndexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if !arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// TypeString returns the comma separated canonical types, as used inside a
// signature.
func (arguments Arguments) TypeString() string {
	types := make([]string, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type.String()
	}
	return strings.Join(types, ",")
}

// headSize is the size of the head region of an encoding of arguments.
func (arguments Arguments) headSize() int {
	size := 0
	for _, arg := range arguments {
		size += getTypeSize(arg.Type)
	}
	return size
}

// Pack performs the operation Go format -> Hexdata.
// The number of values must match the number of arguments; nothing is
// encoded otherwise.
//
// Pack 将参数值按头/尾方案编码；参数个数不符时直接返回 ErrArityMismatch。
func (arguments Arguments) Pack(args ...interface{}) ([]byte, error) {
	abiArgs := arguments
	if len(args) != len(abiArgs) {
		return nil, encodeErr(ErrArityMismatch, "argument count mismatch: got %d for %d", len(args), len(abiArgs))
	}
	// variable input is the output appended at the end of packed
	// output. This is used for strings and bytes types input.
	var variableInput []byte

	// input offset is the bytes offset for packed output
	inputOffset := abiArgs.headSize()
	var ret []byte
	for i, abiArg := range abiArgs {
		packed, err := abiArg.Type.pack(args[i])
		if err != nil {
			return nil, withArgContext(err, i, abiArg)
		}
		// check for dynamic types
		if isDynamicType(abiArg.Type) {
			// set the offset
			ret = append(ret, packUint(uint64(inputOffset))...)
			// calculate next offset
			inputOffset += len(packed)
			// append to variable input
			variableInput = append(variableInput, packed...)
		} else {
			// append the packed value to the input
			ret = append(ret, packed...)
		}
	}
	// append the variable input at the end of the packed input
	ret = append(ret, variableInput...)

	return ret, nil
}

// Unpack performs the operation hexdata -> Go format.
// An empty argument list yields an empty result without looking at data;
// otherwise empty data is an ErrEmptyResponse.
func (arguments Arguments) Unpack(data []byte) ([]interface{}, error) {
	if len(arguments.NonIndexed()) == 0 {
		return make([]interface{}, 0), nil
	}
	if len(data) == 0 {
		return nil, decodeErr(ErrEmptyResponse, "attempting to unmarshal an empty string while arguments are expected")
	}
	return arguments.UnpackValues(data)
}

// UnpackIntoMap performs the operation hexdata -> mapping of argument name to argument value.
func (arguments Arguments) UnpackIntoMap(v map[string]interface{}, data []byte) error {
	if v == nil {
		return fmt.Errorf("abi: cannot unpack into a nil map")
	}
	values, err := arguments.Unpack(data)
	if err != nil {
		return err
	}
	for i, arg := range arguments.NonIndexed() {
		v[arg.Name] = values[i]
	}
	return nil
}

// UnpackValues can be used to unpack ABI-encoded hexdata according to the ABI-specification,
// without supplying a struct to unpack into. Instead, this method returns a list containing the
// values. An atomic argument will be a list with one element.
func (arguments Arguments) UnpackValues(data []byte) ([]interface{}, error) {
	nonIndexedArgs := arguments.NonIndexed()
	retval := make([]interface{}, 0, len(nonIndexedArgs))
	offset := 0
	for _, arg := range nonIndexedArgs {
		marshalledValue, words, err := arg.Type.Decode(data, offset)
		if err != nil {
			return nil, err
		}
		// static arrays and tuples are laid out inline and take more than one word
		offset += words * 32
		retval = append(retval, marshalledValue)
	}
	return retval, nil
}
