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

package hexutil

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unmarshalTest struct {
	input   string
	want    interface{}
	wantErr error // if set, decoding must fail
}

var (
	encodeBytesTests = []struct {
		input []byte
		want  string
	}{
		{[]byte{}, "0x"},
		{[]byte{0}, "0x00"},
		{[]byte{0x70, 0xa0, 0x82, 0x31}, "0x70a08231"},
	}

	encodeBigTests = []struct {
		input *big.Int
		want  string
	}{
		{big.NewInt(0), "0x0"},
		{big.NewInt(1), "0x1"},
		{big.NewInt(40955), "0x9ffb"},
		{big.NewInt(-5), "-0x5"},
	}

	decodeBytesTests = []unmarshalTest{
		// invalid
		{input: ``, wantErr: ErrEmptyString},
		{input: `0`, wantErr: ErrMissingPrefix},
		{input: `0x0`, wantErr: ErrOddLength},
		{input: `0x023`, wantErr: ErrOddLength},
		{input: `0xxx`, wantErr: ErrSyntax},
		{input: `0x01zz01`, wantErr: ErrSyntax},
		// valid
		{input: `0x`, want: []byte{}},
		{input: `0X`, want: []byte{}},
		{input: `0x02`, want: []byte{0x02}},
		{input: `0XffFF`, want: []byte{0xff, 0xff}},
	}

	decodeUint64Tests = []unmarshalTest{
		// invalid
		{input: `0`, wantErr: ErrMissingPrefix},
		{input: `0x`, wantErr: ErrEmptyNumber},
		{input: `0x01`, wantErr: ErrLeadingZero},
		{input: `0xfffffffffffffffff`, wantErr: ErrUint64Range},
		{input: `0xx`, wantErr: ErrSyntax},
		// valid
		{input: `0x0`, want: uint64(0)},
		{input: `0x9ffb`, want: uint64(40955)},
		{input: `0xFFFFFFFFFFFFFFFF`, want: uint64(0xffffffffffffffff)},
	}
)

func TestEncode(t *testing.T) {
	for _, test := range encodeBytesTests {
		assert.Equal(t, test.want, Encode(test.input), "input %x", test.input)
	}
	for _, test := range encodeBigTests {
		assert.Equal(t, test.want, EncodeBig(test.input), "input %v", test.input)
	}
	assert.Equal(t, "0x3b9aca00", EncodeUint64(1000000000))
}

func TestDecode(t *testing.T) {
	for _, test := range decodeBytesTests {
		dec, err := Decode(test.input)
		if test.wantErr != nil {
			assert.Equal(t, test.wantErr, err, "input %q", test.input)
			continue
		}
		require.NoError(t, err, "input %q", test.input)
		assert.Equal(t, test.want, dec, "input %q", test.input)
	}
}

func TestDecodeUint64(t *testing.T) {
	for _, test := range decodeUint64Tests {
		dec, err := DecodeUint64(test.input)
		if test.wantErr != nil {
			assert.Equal(t, test.wantErr, err, "input %q", test.input)
			continue
		}
		require.NoError(t, err, "input %q", test.input)
		assert.Equal(t, test.want, dec, "input %q", test.input)
	}
}

func TestDecodeBig(t *testing.T) {
	dec, err := DecodeBig("0xde0b6b3a7640000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", dec.String())

	_, err = DecodeBig("0x1" + strings.Repeat("0", 64))
	assert.Equal(t, ErrBig256Range, err)
}

func TestJSONWireTypes(t *testing.T) {
	var msg struct {
		Data  Bytes  `json:"data"`
		Gas   Uint64 `json:"gas"`
		Value *Big   `json:"value"`
	}
	input := `{"data":"0x70a08231","gas":"0x9ffb","value":"0x10"}`
	require.NoError(t, json.Unmarshal([]byte(input), &msg))
	assert.Equal(t, Bytes{0x70, 0xa0, 0x82, 0x31}, msg.Data)
	assert.Equal(t, Uint64(40955), msg.Gas)
	assert.Equal(t, int64(16), msg.Value.ToInt().Int64())

	out, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))

	err = json.Unmarshal([]byte(`{"gas":40955}`), &msg)
	assert.Error(t, err)
	err = json.Unmarshal([]byte(`{"data":"70a08231"}`), &msg)
	assert.ErrorContains(t, err, "hex string without 0x prefix")
}
