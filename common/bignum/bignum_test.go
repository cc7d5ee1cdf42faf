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

package bignum

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualityAcrossConstructors(t *testing.T) {
	want := MustFromString("1000000000000000000000")
	fromBig, _ := new(big.Int).SetString("1000000000000000000000", 10)
	fromHex := MustFromString("0x3635c9adc5dea00000")

	assert.True(t, want.Equal(FromBig(fromBig)))
	assert.True(t, want.Equal(fromHex))
	assert.True(t, want.Equal(FromBytes(fromBig.Bytes())))
	assert.True(t, NewInt(-5).Equal(FromSignedBytes([]byte{0xff, 0xfb})))
	assert.True(t, NewUint(7).Equal(FromU256(uint256.NewInt(7))))
	assert.True(t, new(Int).Equal(NewInt(0)))
}

func TestFromString(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"0", "0", false},
		{"-12", "-12", false},
		{"+12", "12", false},
		{"0xff", "255", false},
		{"-0x10", "-16", false},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", "115792089237316195423570985008687907853269984665640564039457584007913129639935", false},
		{"", "", true},
		{"0x", "", true},
		{"--1", "", true},
		{"1_000", "", true},
		{"12a", "", true},
	}
	for _, tt := range tests {
		v, err := FromString(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, ErrSyntax, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, v.String(), tt.in)
	}
}

func TestBytes(t *testing.T) {
	b, err := NewInt(1).Bytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1}, b)

	b, err = NewInt(-1).Bytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, b)

	b, err = NewInt(-128).Bytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80}, b)

	b, err = NewInt(255).Bytes(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff}, b)

	_, err = NewInt(256).Bytes(1)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = NewInt(-129).Bytes(1)
	assert.ErrorIs(t, err, ErrOverflow)

	// round trip through the signed representation
	v := MustFromString("-57896044618658097711785492504343953926634992332820282019728792003956564819968")
	b, err = v.Bytes(32)
	require.NoError(t, err)
	assert.True(t, v.Equal(FromSignedBytes(b)))
}

func TestNativeConversions(t *testing.T) {
	i, err := NewInt(-42).Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-42), i)

	_, err = NewInt(-1).Uint64()
	assert.ErrorIs(t, err, ErrOverflow)

	huge := MustFromString("18446744073709551616") // 2^64
	_, err = huge.Uint64()
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = huge.Int64()
	assert.ErrorIs(t, err, ErrOverflow)
	assert.Equal(t, 18446744073709551616.0, huge.Float64())

	u, err := NewUint(9).U256()
	require.NoError(t, err)
	assert.Equal(t, uint64(9), u.Uint64())
	_, err = NewInt(-9).U256()
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = NewInt(1).Lsh(256).U256()
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestArithmetic(t *testing.T) {
	a, b := NewInt(7), NewInt(-2)

	assert.Equal(t, "5", a.Add(b).String())
	assert.Equal(t, "9", a.Sub(b).String())
	assert.Equal(t, "-14", a.Mul(b).String())
	q, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, "-3", q.String())
	r, err := a.Mod(b)
	require.NoError(t, err)
	assert.Equal(t, "1", r.String())
	assert.Equal(t, "-7", a.Neg().String())
	assert.Equal(t, "2", b.Abs().String())
	assert.Equal(t, "28", a.Lsh(2).String())
	assert.Equal(t, "3", a.Rsh(1).String())
	assert.Equal(t, "49", a.Exp(2).String())

	_, err = a.Div(new(Int))
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = a.Mod(nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	// operands are left untouched
	assert.Equal(t, "7", a.String())
	assert.Equal(t, "-2", b.String())
}

func TestComparison(t *testing.T) {
	a, b := NewInt(1), NewInt(2)
	assert.True(t, a.Lt(b))
	assert.True(t, a.Lte(a))
	assert.True(t, b.Gt(a))
	assert.True(t, b.Gte(b))
	assert.Equal(t, -1, NewInt(-3).Sign())
	assert.True(t, (*Int)(nil).IsZero())
}

func TestFits(t *testing.T) {
	assert.True(t, NewInt(127).FitsSigned(8))
	assert.False(t, NewInt(128).FitsSigned(8))
	assert.True(t, NewInt(-128).FitsSigned(8))
	assert.False(t, NewInt(-129).FitsSigned(8))
	assert.True(t, NewInt(255).FitsUnsigned(8))
	assert.False(t, NewInt(256).FitsUnsigned(8))
	assert.False(t, NewInt(-1).FitsUnsigned(256))
}

func TestJSON(t *testing.T) {
	v := MustFromString("123456789012345678901234567890")
	enc, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"123456789012345678901234567890"`, string(enc))

	var dec Int
	require.NoError(t, json.Unmarshal(enc, &dec))
	assert.True(t, v.Equal(&dec))

	require.NoError(t, json.Unmarshal([]byte("42"), &dec))
	assert.Equal(t, "42", dec.String())
	assert.Error(t, json.Unmarshal([]byte(`"4x2"`), &dec))
}

func TestTerminalString(t *testing.T) {
	assert.Equal(t, "123456", NewInt(123456).TerminalString())
	assert.Equal(t, "1,234,567", NewInt(1234567).TerminalString())
	assert.Equal(t, "-12,345,678", NewInt(-12345678).TerminalString())
	assert.Equal(t, "0x10", NewInt(16).Hex())
	assert.Equal(t, "-0x10", NewInt(-16).Hex())
}
