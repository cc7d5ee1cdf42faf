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

// Package bignum implements an immutable arbitrary-precision integer used for
// every integer-typed value crossing the ABI boundary.
//
// bignum 提供不可变的任意精度整数，ABI 编解码中的所有整数值都以 *bignum.Int 表示。
// 构造函数都是显式命名的（NewInt、FromString、FromBytes ...），不做隐式类型转换。
package bignum

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

var (
	// ErrOverflow is returned when a value does not fit the requested
	// representation (native integer, fixed-width bytes or uint256).
	ErrOverflow = errors.New("bignum: value out of range")

	// ErrSyntax is returned when a textual number cannot be parsed.
	ErrSyntax = errors.New("bignum: invalid number syntax")

	// ErrDivisionByZero is returned by Div and Mod when the divisor is zero.
	ErrDivisionByZero = errors.New("bignum: division by zero")
)

var (
	zero = new(big.Int)
	one  = big.NewInt(1)
)

// Int is an immutable signed integer of arbitrary size. The zero value is 0.
// Int 是不可变的任意精度有符号整数，零值表示 0。
type Int struct {
	v *big.Int
}

func wrap(v *big.Int) *Int { return &Int{v: v} }

// int returns the backing value. It must never be modified by callers.
func (x *Int) int() *big.Int {
	if x == nil || x.v == nil {
		return zero
	}
	return x.v
}

// NewInt returns a new Int set to v.
func NewInt(v int64) *Int { return wrap(big.NewInt(v)) }

// NewUint returns a new Int set to v.
func NewUint(v uint64) *Int { return wrap(new(big.Int).SetUint64(v)) }

// FromBig returns a new Int holding a copy of b. A nil b yields 0.
func FromBig(b *big.Int) *Int {
	if b == nil {
		return new(Int)
	}
	return wrap(new(big.Int).Set(b))
}

// FromU256 returns a new Int set to u.
func FromU256(u *uint256.Int) *Int {
	if u == nil {
		return new(Int)
	}
	return wrap(u.ToBig())
}

// FromString parses s as a base-10 integer with an optional sign. A "0x" or
// "0X" prefix after the sign selects base 16.
//
// FromString 解析十进制字符串（可带符号），0x/0X 前缀表示十六进制。
func FromString(s string) (*Int, error) {
	body := s
	neg := false
	if len(body) > 0 && (body[0] == '-' || body[0] == '+') {
		neg = body[0] == '-'
		body = body[1:]
	}
	base := 10
	if len(body) >= 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		base = 16
		body = body[2:]
	}
	if len(body) == 0 || body[0] == '+' || body[0] == '-' {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	v, ok := new(big.Int).SetString(body, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	if neg {
		v.Neg(v)
	}
	return wrap(v), nil
}

// MustFromString is like FromString but panics on malformed input.
func MustFromString(s string) *Int {
	v, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FromBytes interprets b as an unsigned big-endian magnitude.
func FromBytes(b []byte) *Int {
	return wrap(new(big.Int).SetBytes(b))
}

// FromSignedBytes interprets b as a big-endian two's complement number.
// FromSignedBytes 将 b 视为大端补码表示的有符号数。
func FromSignedBytes(b []byte) *Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(one, uint(len(b))*8))
	}
	return wrap(v)
}

// String returns the exact base-10 representation of x.
func (x *Int) String() string { return x.int().String() }

// Text returns the representation of x in the given base (2 <= base <= 62).
func (x *Int) Text(base int) string { return x.int().Text(base) }

// Hex returns x as 0x-prefixed hex, "-0x..." for negative values.
func (x *Int) Hex() string {
	v := x.int()
	if v.Sign() < 0 {
		return "-0x" + new(big.Int).Neg(v).Text(16)
	}
	return "0x" + v.Text(16)
}

// TerminalString implements log.TerminalStringer, grouping the digits of
// large values in thousands.
func (x *Int) TerminalString() string {
	s := x.String()
	if len(s) <= 6 {
		return s
	}
	var (
		buf  strings.Builder
		sign string
	)
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	buf.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	buf.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		buf.WriteByte(',')
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}

// Format implements fmt.Formatter so that %d, %x and friends work as they do
// for *big.Int.
func (x *Int) Format(s fmt.State, ch rune) { x.int().Format(s, ch) }

// Bytes returns x as a width-byte big-endian two's complement number.
// Non-negative values must fit width*8 unsigned bits, negative values width*8
// signed bits.
//
// Bytes 返回固定宽度的大端补码表示，超出范围时返回 ErrOverflow。
func (x *Int) Bytes(width int) ([]byte, error) {
	v := x.int()
	bits := width * 8
	if width < 0 {
		return nil, ErrOverflow
	}
	if v.Sign() >= 0 {
		if !x.FitsUnsigned(bits) {
			return nil, ErrOverflow
		}
		return v.FillBytes(make([]byte, width)), nil
	}
	if !x.FitsSigned(bits) {
		return nil, ErrOverflow
	}
	u := new(big.Int).Add(v, new(big.Int).Lsh(one, uint(bits)))
	return u.FillBytes(make([]byte, width)), nil
}

// Int64 returns x as an int64, or ErrOverflow if it does not fit.
func (x *Int) Int64() (int64, error) {
	v := x.int()
	if !v.IsInt64() {
		return 0, ErrOverflow
	}
	return v.Int64(), nil
}

// Uint64 returns x as a uint64, or ErrOverflow if it does not fit.
func (x *Int) Uint64() (uint64, error) {
	v := x.int()
	if !v.IsUint64() {
		return 0, ErrOverflow
	}
	return v.Uint64(), nil
}

// Float64 returns the float64 nearest to x. Values beyond the float64 range
// become ±Inf.
func (x *Int) Float64() float64 {
	f, _ := new(big.Float).SetInt(x.int()).Float64()
	return f
}

// Big returns a copy of x as a *big.Int.
func (x *Int) Big() *big.Int { return new(big.Int).Set(x.int()) }

// U256 returns x as a *uint256.Int. Negative values and values wider than 256
// bits yield ErrOverflow.
func (x *Int) U256() (*uint256.Int, error) {
	v := x.int()
	if v.Sign() < 0 {
		return nil, ErrOverflow
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, ErrOverflow
	}
	return u, nil
}

// FitsSigned reports whether x lies in [-2^(bits-1), 2^(bits-1)-1].
func (x *Int) FitsSigned(bits int) bool {
	if bits <= 0 {
		return false
	}
	v := x.int()
	if v.Sign() >= 0 {
		return v.BitLen() < bits
	}
	// -2^(bits-1) is the only negative value whose magnitude needs all bits.
	m := new(big.Int).Neg(v)
	m.Sub(m, one)
	return m.BitLen() < bits
}

// FitsUnsigned reports whether x lies in [0, 2^bits-1].
func (x *Int) FitsUnsigned(bits int) bool {
	v := x.int()
	return v.Sign() >= 0 && v.BitLen() <= bits
}

// Add returns x+y.
func (x *Int) Add(y *Int) *Int { return wrap(new(big.Int).Add(x.int(), y.int())) }

// Sub returns x-y.
func (x *Int) Sub(y *Int) *Int { return wrap(new(big.Int).Sub(x.int(), y.int())) }

// Mul returns x*y.
func (x *Int) Mul(y *Int) *Int { return wrap(new(big.Int).Mul(x.int(), y.int())) }

// Div returns x/y truncated towards zero.
func (x *Int) Div(y *Int) (*Int, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	return wrap(new(big.Int).Quo(x.int(), y.int())), nil
}

// Mod returns the remainder of the truncated division x/y. The result has the
// sign of x.
func (x *Int) Mod(y *Int) (*Int, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	return wrap(new(big.Int).Rem(x.int(), y.int())), nil
}

// Neg returns -x.
func (x *Int) Neg() *Int { return wrap(new(big.Int).Neg(x.int())) }

// Abs returns |x|.
func (x *Int) Abs() *Int { return wrap(new(big.Int).Abs(x.int())) }

// Lsh returns x << n.
func (x *Int) Lsh(n uint) *Int { return wrap(new(big.Int).Lsh(x.int(), n)) }

// Rsh returns x >> n, rounding towards negative infinity for negative x.
func (x *Int) Rsh(n uint) *Int { return wrap(new(big.Int).Rsh(x.int(), n)) }

// Exp returns x**e.
func (x *Int) Exp(e uint64) *Int {
	return wrap(new(big.Int).Exp(x.int(), new(big.Int).SetUint64(e), nil))
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x *Int) Cmp(y *Int) int { return x.int().Cmp(y.int()) }

// Equal reports whether x and y hold the same value.
func (x *Int) Equal(y *Int) bool { return x.Cmp(y) == 0 }

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x *Int) Sign() int { return x.int().Sign() }

// IsZero reports whether x is 0.
func (x *Int) IsZero() bool { return x.Sign() == 0 }

func (x *Int) Lt(y *Int) bool  { return x.Cmp(y) < 0 }
func (x *Int) Lte(y *Int) bool { return x.Cmp(y) <= 0 }
func (x *Int) Gt(y *Int) bool  { return x.Cmp(y) > 0 }
func (x *Int) Gte(y *Int) bool { return x.Cmp(y) >= 0 }

// MarshalText implements encoding.TextMarshaler.
func (x *Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(input []byte) error {
	v, err := FromString(string(input))
	if err != nil {
		return err
	}
	x.v = v.v
	return nil
}

// MarshalJSON encodes x as a JSON string of decimal digits, which keeps values
// beyond 2^53 exact for JavaScript consumers.
func (x *Int) MarshalJSON() ([]byte, error) {
	return []byte(`"` + x.String() + `"`), nil
}

// UnmarshalJSON accepts both JSON strings and bare JSON numbers.
func (x *Int) UnmarshalJSON(input []byte) error {
	input = bytes.TrimSpace(input)
	if len(input) >= 2 && input[0] == '"' && input[len(input)-1] == '"' {
		input = input[1 : len(input)-1]
	}
	return x.UnmarshalText(input)
}
