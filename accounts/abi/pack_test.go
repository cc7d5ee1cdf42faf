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
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
	"github.com/sunyihoo/contractcall/common/hexutil"
)

// pad left-pads a hex word to 32 bytes, rpad right-pads it.
func pad(s string) string  { return strings.Repeat("0", 64-len(s)) + s }
func rpad(s string) string { return s + strings.Repeat("0", 64-len(s)) }

func words(ws ...string) []byte { return common.FromHex(strings.Join(ws, "")) }

func mustType(t *testing.T, typ string, components ...ArgumentMarshaling) Type {
	t.Helper()
	ty, err := NewType(typ, "", components)
	require.NoError(t, err)
	return ty
}

func mustArgs(t *testing.T, types ...string) Arguments {
	t.Helper()
	args := make(Arguments, len(types))
	for i, typ := range types {
		args[i] = Argument{Name: fmt.Sprintf("a%d", i), Type: mustType(t, typ)}
	}
	return args
}

func TestPackElementary(t *testing.T) {
	addr := "0xf8cd644baf494d13406187cf8628754dca0a10c2"
	tests := []struct {
		typ  string
		v    interface{}
		want []byte
	}{
		{"uint256", 1, words(pad("1"))},
		{"uint256", uint64(255), words(pad("ff"))},
		{"uint256", big.NewInt(256), words(pad("100"))},
		{"uint256", uint256.NewInt(7), words(pad("7"))},
		{"uint256", bignum.NewInt(8), words(pad("8"))},
		{"uint256", "0x10", words(pad("10"))},
		{"uint256", "1000000000000000000", words(pad("de0b6b3a7640000"))},
		{"uint8", uint8(255), words(pad("ff"))},
		{"int256", -1, words(strings.Repeat("f", 64))},
		{"int8", int8(-2), words(strings.Repeat("f", 63) + "e")},
		{"int8", 127, words(pad("7f"))},
		{"bool", true, words(pad("1"))},
		{"bool", false, words(pad("0"))},
		{"address", addr, words(pad(addr[2:]))},
		{"address", common.HexToAddress(addr), words(pad(addr[2:]))},
		{"address", ptrTo(common.HexToAddress(addr)), words(pad(addr[2:]))},
		{"bytes2", []byte{0xca, 0xfe}, words(rpad("cafe"))},
		{"bytes2", [2]byte{0xca, 0xfe}, words(rpad("cafe"))},
		{"bytes2", "0xcafe", words(rpad("cafe"))},
		{"bytes32", common.HexToHash("0x01"), words(pad("1"))},
		{"string", "hello", words(pad("5"), rpad("68656c6c6f"))},
		{"string", "", words(pad("0"))},
		{"bytes", []byte{1, 2, 3}, words(pad("3"), rpad("010203"))},
		{"bytes", hexutil.Bytes{1, 2, 3}, words(pad("3"), rpad("010203"))},
		{"bytes", "0x010203", words(pad("3"), rpad("010203"))},
		{"uint256[]", []int{1, 2}, words(pad("2"), pad("1"), pad("2"))},
		{"uint256[2]", [2]int64{1, 2}, words(pad("1"), pad("2"))},
		{"uint8[]", []byte{1, 2}, words(pad("2"), pad("1"), pad("2"))},
		{"bool[]", []interface{}{}, words(pad("0"))},
	}
	for _, tt := range tests {
		packed, err := mustType(t, tt.typ).Encode(tt.v)
		require.NoError(t, err, "%s %v", tt.typ, tt.v)
		assert.Equal(t, tt.want, packed, "%s %v", tt.typ, tt.v)
	}
}

func ptrTo[T any](v T) *T { return &v }

func TestPackOutOfRange(t *testing.T) {
	tests := []struct {
		typ string
		v   interface{}
	}{
		{"uint8", 256},
		{"uint8", -1},
		{"uint256", bignum.NewInt(1).Lsh(256)},
		{"uint256", "-1"},
		{"int8", 128},
		{"int8", -129},
		{"int256", bignum.NewInt(1).Lsh(255)},
		{"bytes2", []byte{1}},
		{"bytes2", []byte{1, 2, 3}},
		{"function", []byte{1}},
	}
	for _, tt := range tests {
		_, err := mustType(t, tt.typ).Encode(tt.v)
		assert.ErrorIs(t, err, ErrOutOfRange, "%s %v", tt.typ, tt.v)

		var encErr *EncodeError
		assert.ErrorAs(t, err, &encErr)
	}
	// boundaries are accepted
	_, err := mustType(t, "int8").Encode(-128)
	assert.NoError(t, err)
	_, err = mustType(t, "uint256").Encode(bignum.NewInt(1).Lsh(256).Sub(bignum.NewInt(1)))
	assert.NoError(t, err)
}

func TestPackTypeMismatch(t *testing.T) {
	tests := []struct {
		typ string
		v   interface{}
	}{
		{"bool", 1},
		{"string", []byte("x")},
		{"uint256", "ten"},
		{"uint256", 1.5},
		{"address", "0x1234"},
		{"bytes", "not hex"},
		{"uint256[]", 5},
	}
	for _, tt := range tests {
		_, err := mustType(t, tt.typ).Encode(tt.v)
		assert.ErrorIs(t, err, ErrUnsupportedType, "%s %v", tt.typ, tt.v)
	}
}

func TestPackFixedArrayLength(t *testing.T) {
	_, err := mustType(t, "uint256[2]").Encode([]int{1, 2, 3})
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestPackArity(t *testing.T) {
	args := mustArgs(t, "uint256", "address")
	for _, vals := range [][]interface{}{nil, {1}, {1, common.Address{}, 3}} {
		packed, err := args.Pack(vals...)
		assert.ErrorIs(t, err, ErrArityMismatch)
		assert.Nil(t, packed)
	}
}

// The example from the Solidity ABI specification:
// f(uint256,uint32[],bytes10,bytes) called with (0x123, [0x456, 0x789], "1234567890", "Hello, world!").
func TestPackSolidityExample(t *testing.T) {
	method := NewMethod("f", "f", Function, "", false, false, mustArgs(t, "uint256", "uint32[]", "bytes10", "bytes"), nil)
	assert.Equal(t, "f(uint256,uint32[],bytes10,bytes)", method.Sig)
	assert.Equal(t, common.FromHex("0x8be65246"), method.ID)

	call, err := method.EncodeCall(0x123, []uint32{0x456, 0x789}, []byte("1234567890"), []byte("Hello, world!"))
	require.NoError(t, err)
	want := words(
		pad("123"),
		pad("80"),
		rpad("31323334353637383930"),
		pad("e0"),
		pad("2"),
		pad("456"),
		pad("789"),
		pad("d"),
		rpad("48656c6c6f2c20776f726c6421"),
	)
	assert.Equal(t, want, call.Payload)
	assert.Equal(t, [4]byte{0x8b, 0xe6, 0x52, 0x46}, call.Selector)
	assert.Equal(t, append(common.FromHex("0x8be65246"), want...), call.Data())
}

// g(uint256[][],string[]) called with ([[1, 2], [3]], ["one", "two", "three"]).
func TestPackNestedDynamic(t *testing.T) {
	method := NewMethod("g", "g", Function, "", false, false, mustArgs(t, "uint256[][]", "string[]"), nil)
	assert.Equal(t, common.FromHex("0x2289b18c"), method.ID)

	want := words(
		pad("40"),
		pad("140"),
		pad("2"),
		pad("40"),
		pad("a0"),
		pad("2"),
		pad("1"),
		pad("2"),
		pad("1"),
		pad("3"),
		pad("3"),
		pad("60"),
		pad("a0"),
		pad("e0"),
		pad("3"),
		rpad("6f6e65"),
		pad("3"),
		rpad("74776f"),
		pad("5"),
		rpad("7468726565"),
	)
	call, err := method.EncodeCall([][]int{{1, 2}, {3}}, []string{"one", "two", "three"})
	require.NoError(t, err)
	assert.Equal(t, want, call.Payload)

	// and back again
	values, err := method.Inputs.Unpack(want)
	require.NoError(t, err)
	assert.Equal(t, "[[1 2] [3]]", fmt.Sprint(values[0]))
	assert.Equal(t, []interface{}{"one", "two", "three"}, values[1])
}

func TestPackTupleForms(t *testing.T) {
	typ := mustType(t, "tuple", ArgumentMarshaling{Name: "amount", Type: "uint256"}, ArgumentMarshaling{Name: "memo_text", Type: "string"})
	args := Arguments{{Name: "order", Type: typ}}
	want := words(pad("20"), pad("1"), pad("40"), pad("1"), rpad("78"))

	type order struct {
		Amount   *big.Int
		MemoText string
	}
	for _, v := range []interface{}{
		[]interface{}{1, "x"},
		map[string]interface{}{"amount": 1, "memo_text": "x"},
		order{big.NewInt(1), "x"},
		&order{big.NewInt(1), "x"},
	} {
		packed, err := args.Pack(v)
		require.NoError(t, err, "%T", v)
		assert.Equal(t, want, packed, "%T", v)
	}

	_, err := args.Pack(map[string]interface{}{"amount": 1})
	assert.ErrorIs(t, err, ErrArityMismatch)
	_, err = args.Pack([]interface{}{1})
	assert.ErrorIs(t, err, ErrArityMismatch)
}

func TestPackStaticInline(t *testing.T) {
	args := mustArgs(t, "uint256[2]", "uint256")
	packed, err := args.Pack([]int{1, 2}, 3)
	require.NoError(t, err)
	assert.Equal(t, words(pad("1"), pad("2"), pad("3")), packed)

	values, err := args.Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, "[[1 2] 3]", fmt.Sprint(values))
}

func TestPackErrorNamesArgument(t *testing.T) {
	args := Arguments{{Name: "amount", Type: mustType(t, "uint8")}}
	_, err := args.Pack(300)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
	assert.ErrorIs(t, err, ErrOutOfRange)
}
