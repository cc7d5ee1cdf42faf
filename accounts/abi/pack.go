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
	"encoding/binary"
	"errors"
	"strconv"

	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
)

// Encode returns the standalone ABI encoding of v as type t: one or more head
// words for static types, the tail content (length word plus padded data)
// for dynamic ones.
//
// Encode 返回 v 按类型 t 的编码。静态类型即其内联字；动态类型为尾部内容（长度字 + 数据）。
func (t Type) Encode(v interface{}) ([]byte, error) {
	return t.pack(v)
}

func (t Type) pack(v interface{}) ([]byte, error) {
	switch t.T {
	case SliceTy:
		vals, err := sequence(t, v)
		if err != nil {
			return nil, err
		}
		body, err := packSequence(len(vals), func(int) *Type { return t.Elem }, vals)
		if err != nil {
			return nil, err
		}
		return append(packUint(uint64(len(vals))), body...), nil
	case ArrayTy:
		vals, err := sequence(t, v)
		if err != nil {
			return nil, err
		}
		if len(vals) != t.Size {
			return nil, encodeErr(ErrArityMismatch, "%v: got %d elements, want %d", t, len(vals), t.Size)
		}
		return packSequence(len(vals), func(int) *Type { return t.Elem }, vals)
	case TupleTy:
		vals, err := tupleValues(t, v)
		if err != nil {
			return nil, err
		}
		return packSequence(len(vals), func(i int) *Type { return t.TupleElems[i] }, vals)
	default:
		return packElement(t, v)
	}
}

// packSequence lays out n values with the head/tail scheme: static values
// inline in the head, dynamic values as an offset word pointing into the
// tail. Offsets are relative to the start of the sequence.
func packSequence(n int, typeAt func(int) *Type, vals []interface{}) ([]byte, error) {
	headSize := 0
	for i := 0; i < n; i++ {
		headSize += getTypeSize(*typeAt(i))
	}
	var head, tail []byte
	for i := 0; i < n; i++ {
		t := typeAt(i)
		enc, err := t.pack(vals[i])
		if err != nil {
			return nil, err
		}
		if isDynamicType(*t) {
			head = append(head, packUint(uint64(headSize+len(tail)))...)
			tail = append(tail, enc...)
		} else {
			head = append(head, enc...)
		}
	}
	return append(head, tail...), nil
}

// packBytesSlice packs the given bytes as [L, V] as the canonical representation
// bytes slice.
func packBytesSlice(bytes []byte, l int) []byte {
	len := packUint(uint64(l))
	return append(len, common.RightPadBytes(bytes, (l+31)/32*32)...)
}

// packElement packs the given value according to the abi specification in
// t. Only elementary types are handled here.
func packElement(t Type, v interface{}) ([]byte, error) {
	switch t.T {
	case IntTy, UintTy:
		n, err := toBigNum(t, v)
		if err != nil {
			return nil, err
		}
		return packNum(t, n)
	case StringTy:
		s, ok := v.(string)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		return packBytesSlice([]byte(s), len(s)), nil
	case AddressTy:
		addr, err := toAddress(t, v)
		if err != nil {
			return nil, err
		}
		return common.LeftPadBytes(addr.Bytes(), 32), nil
	case BoolTy:
		b, ok := v.(bool)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		word := make([]byte, 32)
		if b {
			word[31] = 1
		}
		return word, nil
	case BytesTy:
		b, err := toByteSlice(t, v)
		if err != nil {
			return nil, err
		}
		return packBytesSlice(b, len(b)), nil
	case FixedBytesTy, FunctionTy:
		b, err := toByteSlice(t, v)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, encodeErr(ErrOutOfRange, "%v: got %d bytes, want %d", t, len(b), t.Size)
		}
		return common.RightPadBytes(b, 32), nil
	default:
		return nil, encodeErr(ErrUnsupportedType, "could not pack element, unknown type: %v", t.T)
	}
}

// packNum checks n against the width of t and returns its 32-byte two's
// complement word.
func packNum(t Type, n *bignum.Int) ([]byte, error) {
	fits := n.FitsUnsigned(t.Size)
	if t.T == IntTy {
		fits = n.FitsSigned(t.Size)
	}
	if !fits {
		return nil, encodeErr(ErrOutOfRange, "%s does not fit in %v", n, t)
	}
	word, err := n.Bytes(32)
	if err != nil {
		return nil, encodeErr(ErrOutOfRange, "%s does not fit in %v", n, t)
	}
	return word, nil
}

// packUint returns the 32-byte word of a length or offset.
func packUint(v uint64) []byte {
	word := make([]byte, 32)
	binary.BigEndian.PutUint64(word[24:], v)
	return word
}

// withArgContext prefixes an encode error with the argument it belongs to,
// keeping its kind.
func withArgContext(err error, index int, arg Argument) error {
	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		return err
	}
	name := arg.Name
	if name == "" {
		name = "#" + strconv.Itoa(index)
	}
	return &EncodeError{Kind: encErr.Kind, Msg: "argument " + name + ": " + encErr.Msg}
}
