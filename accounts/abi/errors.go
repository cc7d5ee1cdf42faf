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
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the codec wraps exactly one of these, so
// callers can branch with errors.Is and recover the detail with errors.As.
//
// 错误种类：编码、解码以及合约层面的错误都包装了以下某个哨兵错误，
// 调用方可使用 errors.Is 判断种类，使用 errors.As 取出 *EncodeError / *DecodeError / *ContractError。
var (
	ErrArityMismatch     = errors.New("argument count mismatch")
	ErrOutOfRange        = errors.New("value out of range")
	ErrUnsupportedType   = errors.New("unsupported type")
	ErrTruncated         = errors.New("data truncated")
	ErrEmptyResponse     = errors.New("empty response")
	ErrUnknownFunction   = errors.New("unknown function")
	ErrSelectorCollision = errors.New("selector collision")
)

// EncodeError is returned when argument values cannot be packed.
// Kind is one of ErrArityMismatch, ErrOutOfRange or ErrUnsupportedType.
type EncodeError struct {
	Kind error
	Msg  string
}

func (e *EncodeError) Error() string { return fmt.Sprintf("abi: encode: %v: %s", e.Kind, e.Msg) }
func (e *EncodeError) Unwrap() error { return e.Kind }

// DecodeError is returned when return data cannot be unpacked.
// Kind is one of ErrTruncated, ErrEmptyResponse, ErrUnsupportedType or
// ErrOutOfRange (for improperly padded words).
type DecodeError struct {
	Kind error
	Msg  string
}

func (e *DecodeError) Error() string { return fmt.Sprintf("abi: decode: %v: %s", e.Kind, e.Msg) }
func (e *DecodeError) Unwrap() error { return e.Kind }

// ContractError reports a problem with the interface definition itself or
// with a lookup into it. Kind is ErrUnknownFunction or ErrSelectorCollision.
type ContractError struct {
	Kind error
	Name string
	Msg  string
}

func (e *ContractError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("abi: %v %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("abi: %v %q: %s", e.Kind, e.Name, e.Msg)
}

func (e *ContractError) Unwrap() error { return e.Kind }

func encodeErr(kind error, format string, args ...interface{}) error {
	return &EncodeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func decodeErr(kind error, format string, args ...interface{}) error {
	return &DecodeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
