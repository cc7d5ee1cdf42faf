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
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
	"github.com/sunyihoo/contractcall/common/hexutil"
)

// 本文件负责把调用方传入的 Go 值转换为编码器使用的规范值。
// 每种 ABI 类型接受的 Go 值：
//   - 整数：*bignum.Int、*big.Int、*uint256.Int、Go 整数类型、十进制或 0x 十六进制字符串
//   - address：common.Address、*common.Address、[20]byte、十六进制字符串
//   - bytesN：长度为 N 的 []byte 或 [N]byte、0x 十六进制字符串
//   - bytes：[]byte、hexutil.Bytes、0x 十六进制字符串

var addressT = reflect.TypeOf(common.Address{})

// toBigNum converts an integer-like Go value into a *bignum.Int.
func toBigNum(t Type, v interface{}) (*bignum.Int, error) {
	switch n := v.(type) {
	case *bignum.Int:
		if n == nil {
			break
		}
		return n, nil
	case bignum.Int:
		return &n, nil
	case *big.Int:
		if n == nil {
			break
		}
		return bignum.FromBig(n), nil
	case big.Int:
		return bignum.FromBig(&n), nil
	case *uint256.Int:
		if n == nil {
			break
		}
		return bignum.FromU256(n), nil
	case uint256.Int:
		return bignum.FromU256(&n), nil
	case *hexutil.Big:
		if n == nil {
			break
		}
		return bignum.FromBig(n.ToInt()), nil
	case string:
		b, err := bignum.FromString(strings.TrimSpace(n))
		if err != nil {
			return nil, encodeErr(ErrUnsupportedType, "cannot use string %q as type %v", n, t)
		}
		return b, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return bignum.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return bignum.NewUint(rv.Uint()), nil
	}
	return nil, typeMismatch(t, v)
}

// toAddress converts an address-like Go value into a common.Address.
func toAddress(t Type, v interface{}) (common.Address, error) {
	switch a := v.(type) {
	case common.Address:
		return a, nil
	case *common.Address:
		if a != nil {
			return *a, nil
		}
	case string:
		if !common.IsHexAddress(a) {
			return common.Address{}, encodeErr(ErrUnsupportedType, "cannot use string %q as type address", a)
		}
		return common.HexToAddress(a), nil
	default:
		rv := reflect.ValueOf(v)
		if rv.IsValid() && rv.Type().ConvertibleTo(addressT) && rv.Kind() == reflect.Array {
			return rv.Convert(addressT).Interface().(common.Address), nil
		}
	}
	return common.Address{}, typeMismatch(t, v)
}

// toByteSlice converts a byte-like Go value into a fresh []byte. Strings must
// carry a 0x prefix to be read as hex.
func toByteSlice(t Type, v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return common.CopyBytes(b), nil
	case hexutil.Bytes:
		return common.CopyBytes(b), nil
	case string:
		dec, err := hexutil.Decode(b)
		if err != nil {
			return nil, encodeErr(ErrUnsupportedType, "cannot use string %q as type %v: %v", b, t, err)
		}
		return dec, nil
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && (rv.Kind() == reflect.Array || rv.Kind() == reflect.Slice) && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, nil
	}
	return nil, typeMismatch(t, v)
}

// indirect dereferences pointers until a non-pointer value is reached.
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// sequence exposes the elements of a Go slice or array for packing as T[],
// T[k] or a tuple given positionally.
func sequence(t Type, v interface{}) ([]interface{}, error) {
	if vals, ok := v.([]interface{}); ok {
		return vals, nil
	}
	rv := indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, typeMismatch(t, v)
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// tupleValues orders the components of a tuple value. Accepted forms are a
// positional slice, a map keyed by component name, or a struct whose exported
// field names are the camel-cased component names.
func tupleValues(t Type, v interface{}) ([]interface{}, error) {
	rv := indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, typeMismatch(t, v)
		}
		out := make([]interface{}, len(t.TupleElems))
		for i, name := range t.TupleRawNames {
			elem := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
			if !elem.IsValid() {
				return nil, encodeErr(ErrArityMismatch, "tuple %v: missing component %q", t, name)
			}
			out[i] = elem.Interface()
		}
		return out, nil
	case reflect.Struct:
		out := make([]interface{}, len(t.TupleElems))
		for i, name := range t.TupleRawNames {
			field := rv.FieldByName(ToCamelCase(name))
			if !field.IsValid() {
				field = rv.FieldByName(name)
			}
			if !field.IsValid() || !field.CanInterface() {
				return nil, encodeErr(ErrArityMismatch, "tuple %v: field for component %q not found in %v", t, name, rv.Type())
			}
			out[i] = field.Interface()
		}
		return out, nil
	default:
		vals, err := sequence(t, v)
		if err != nil {
			return nil, err
		}
		if len(vals) != len(t.TupleElems) {
			return nil, encodeErr(ErrArityMismatch, "tuple %v: got %d components, want %d", t, len(vals), len(t.TupleElems))
		}
		return vals, nil
	}
}

func typeMismatch(t Type, v interface{}) error {
	return encodeErr(ErrUnsupportedType, "cannot use %T as type %v", v, t)
}
