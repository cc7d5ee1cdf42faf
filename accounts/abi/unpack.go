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
	"math/big"

	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
)

// Decoded value model:
//
//	intN/uintN  -> *bignum.Int
//	address     -> common.Address
//	bool        -> bool
//	bytesN      -> []byte (len N)
//	bytes       -> []byte
//	string      -> string
//	T[], T[k]   -> []interface{}
//	tuple       -> []interface{} in component order
//	function    -> [24]byte
//
// 解码结果的 Go 值模型如上；所有越界读取都返回包装了 ErrTruncated 的 *DecodeError。

// Decode decodes a value of type t whose head starts at byte index of data.
// It returns the value together with the number of head words it occupies.
// Offsets of dynamic values are resolved relative to the start of data.
//
// Decode 从 data 的 index 处解码一个 t 类型的值，返回该值及其在头部占用的字数。
func (t Type) Decode(data []byte, index int) (interface{}, int, error) {
	v, err := toGoType(index, t, data)
	if err != nil {
		return nil, 0, err
	}
	return v, getTypeSize(t) / 32, nil
}

// ReadInteger reads the integer based on its kind and returns the appropriate value.
// The word must be a proper zero (unsigned) or sign (signed) extension of a
// t.Size-bit value.
func ReadInteger(typ Type, b []byte) (*bignum.Int, error) {
	if typ.T == UintTy {
		ret := bignum.FromBytes(b)
		if !ret.FitsUnsigned(typ.Size) {
			return nil, decodeErr(ErrOutOfRange, "improperly encoded %v value %s", typ, ret)
		}
		return ret, nil
	}
	ret := bignum.FromSignedBytes(b)
	if !ret.FitsSigned(typ.Size) {
		return nil, decodeErr(ErrOutOfRange, "improperly encoded %v value %s", typ, ret)
	}
	return ret, nil
}

// readBool reads a bool. Only the least significant bit may be set.
func readBool(word []byte) (bool, error) {
	for _, b := range word[:31] {
		if b != 0 {
			return false, decodeErr(ErrOutOfRange, "improperly encoded boolean value")
		}
	}
	switch word[31] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, decodeErr(ErrOutOfRange, "improperly encoded boolean value")
	}
}

// readFunctionType enforces that standard by always presenting it as a
// 24-array (address + sig = 24 bytes)
func readFunctionType(word []byte) (funcTy [24]byte, err error) {
	if garbage := binary.BigEndian.Uint64(word[24:32]); garbage != 0 {
		return funcTy, decodeErr(ErrOutOfRange, "improperly encoded function type, got %x", word)
	}
	copy(funcTy[:], word[0:24])
	return funcTy, nil
}

// forEachUnpack iteratively unpacks size elements of t.Elem starting at
// output[start:].
func forEachUnpack(t Type, output []byte, start, size int) (interface{}, error) {
	if size < 0 {
		return nil, decodeErr(ErrTruncated, "negative element count %d", size)
	}
	elemSize := getTypeSize(*t.Elem)
	if size > len(output)/elemSize || start+elemSize*size > len(output) {
		return nil, decodeErr(ErrTruncated, "%v: %d elements would go over slice boundary (len=%d)", t, size, len(output))
	}
	ret := make([]interface{}, size)
	for i, j := start, 0; j < size; i, j = i+elemSize, j+1 {
		inter, err := toGoType(i, *t.Elem, output)
		if err != nil {
			return nil, err
		}
		ret[j] = inter
	}
	return ret, nil
}

// forTupleUnpack unpacks the components of t laid out from the start of output.
func forTupleUnpack(t Type, output []byte) (interface{}, error) {
	ret := make([]interface{}, len(t.TupleElems))
	offset := 0
	for i, elem := range t.TupleElems {
		v, err := toGoType(offset, *elem, output)
		if err != nil {
			return nil, err
		}
		ret[i] = v
		offset += getTypeSize(*elem)
	}
	return ret, nil
}

// toGoType parses the output bytes and recursively assigns the value of these bytes
// into a go type with accordance with the ABI spec.
func toGoType(index int, t Type, output []byte) (interface{}, error) {
	if index < 0 || index+32 > len(output) {
		return nil, decodeErr(ErrTruncated, "length insufficient %d require %d", len(output), index+32)
	}

	var (
		word          []byte
		begin, length int
		err           error
	)

	// if we require a length prefix, find the beginning word and size returned.
	if t.requiresLengthPrefix() {
		begin, length, err = lengthPrefixPointsTo(index, output)
		if err != nil {
			return nil, err
		}
	} else {
		word = output[index : index+32]
	}

	switch t.T {
	case TupleTy:
		if isDynamicType(t) {
			begin, err := tuplePointsTo(index, output)
			if err != nil {
				return nil, err
			}
			return forTupleUnpack(t, output[begin:])
		}
		if index+getTypeSize(t) > len(output) {
			return nil, decodeErr(ErrTruncated, "length insufficient %d require %d", len(output), index+getTypeSize(t))
		}
		return forTupleUnpack(t, output[index:])
	case SliceTy:
		return forEachUnpack(t, output[begin:], 0, length)
	case ArrayTy:
		if isDynamicType(*t.Elem) {
			offset, err := tuplePointsTo(index, output)
			if err != nil {
				return nil, err
			}
			return forEachUnpack(t, output[offset:], 0, t.Size)
		}
		return forEachUnpack(t, output[index:], 0, t.Size)
	case StringTy: // variable arrays are written at the end of the return bytes
		return string(output[begin : begin+length]), nil
	case IntTy, UintTy:
		return ReadInteger(t, word)
	case BoolTy:
		return readBool(word)
	case AddressTy:
		return common.BytesToAddress(word), nil
	case BytesTy:
		return common.CopyBytes(output[begin : begin+length]), nil
	case FixedBytesTy:
		return common.CopyBytes(word[:t.Size]), nil
	case FunctionTy:
		return readFunctionType(word)
	default:
		return nil, decodeErr(ErrUnsupportedType, "unknown type %v", t.T)
	}
}

// lengthPrefixPointsTo interprets a 32 byte slice as an offset and then determines which indices to look to decode the type.
func lengthPrefixPointsTo(index int, output []byte) (start int, length int, err error) {
	bigOffsetEnd := new(big.Int).SetBytes(output[index : index+32])
	bigOffsetEnd.Add(bigOffsetEnd, common.Big32)
	outputLength := big.NewInt(int64(len(output)))

	if bigOffsetEnd.Cmp(outputLength) > 0 {
		return 0, 0, decodeErr(ErrTruncated, "offset %v would go over slice boundary (len=%v)", bigOffsetEnd, outputLength)
	}
	offsetEnd := int(bigOffsetEnd.Uint64())
	lengthBig := new(big.Int).SetBytes(output[offsetEnd-32 : offsetEnd])

	totalSize := new(big.Int).Add(bigOffsetEnd, lengthBig)
	if totalSize.Cmp(outputLength) > 0 {
		return 0, 0, decodeErr(ErrTruncated, "length insufficient %v require %v", outputLength, totalSize)
	}
	start = offsetEnd
	length = int(lengthBig.Uint64())
	return
}

// tuplePointsTo resolves the location reference for dynamic tuple.
func tuplePointsTo(index int, output []byte) (start int, err error) {
	offset := new(big.Int).SetBytes(output[index : index+32])
	outputLen := big.NewInt(int64(len(output)))

	if offset.Cmp(outputLen) > 0 {
		return 0, decodeErr(ErrTruncated, "offset %v would go over slice boundary (len=%v)", offset, outputLen)
	}
	return int(offset.Uint64()), nil
}
