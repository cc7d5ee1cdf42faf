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
	"fmt"
	"strings"

	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/crypto"
)

// Error is a custom error declared in an interface definition, such as
// `error InsufficientBalance(uint256 available)`. Reverts carry its
// selector followed by the encoded inputs.
type Error struct {
	Name   string
	Inputs Arguments
	str    string

	// Sig contains the string signature according to the ABI spec.
	// e.g.	 error foo(uint32 a, int b) = "foo(uint32,int256)"
	Sig string

	// ID returns the canonical representation of the error's signature used by the
	// abi definition to identify event names and types.
	ID common.Hash
}

// NewError creates a new Error, naming anonymous inputs arg0, arg1 ...
func NewError(name string, inputs Arguments) Error {
	names := make([]string, len(inputs))
	for i, input := range inputs {
		if input.Name == "" {
			inputs[i].Name = fmt.Sprintf("arg%d", i)
		}
		names[i] = fmt.Sprintf("%v %v", input.Type, inputs[i].Name)
	}
	sig := fmt.Sprintf("%v(%v)", name, inputs.TypeString())

	return Error{
		Name:   name,
		Inputs: inputs,
		str:    fmt.Sprintf("error %v(%v)", name, strings.Join(names, ", ")),
		Sig:    sig,
		ID:     crypto.Keccak256Hash([]byte(sig)),
	}
}

func (e Error) String() string {
	return e.str
}

// Unpack decodes revert data produced by this error.
func (e *Error) Unpack(data []byte) (interface{}, error) {
	if len(data) < 4 {
		return "", decodeErr(ErrTruncated, "insufficient data for unpacking: have %d, want at least 4", len(data))
	}
	if !bytes.Equal(data[:4], e.ID[:4]) {
		return "", fmt.Errorf("abi: invalid identifier, have %#x want %#x", data[:4], e.ID[:4])
	}
	return e.Inputs.Unpack(data[4:])
}
