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
	"regexp"
	"strconv"
	"strings"
)

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
	FunctionTy
)

// Type is the reflection of the supported argument type.
// Type 是一个 ABI 参数类型的解析结果，创建后只读，可被并发调用共享。
type Type struct {
	Elem *Type // element type of T[] and T[k]
	Size int   // bit width for ints, byte width for bytesN, k for T[k]
	T    byte  // Our own type checking

	stringKind string // canonical type name used in signatures

	// Tuple relative fields
	TupleRawName  string   // Raw struct name defined in source code, may be empty.
	TupleElems    []*Type  // Type information of all tuple fields
	TupleRawNames []string // Raw field name of all tuple fields
}

var (
	// typeRegex parses the abi sub types
	typeRegex = regexp.MustCompile("^([a-zA-Z]+)(([0-9]+)(x([0-9]+))?)?$")

	// sliceSizeRegex grabs the slice size
	sliceSizeRegex = regexp.MustCompile("^\\[([0-9]*)\\]$")
)

// NewType creates a new reflection type of abi type given in t.
//
// Bare "int" and "uint" expand to their 256-bit forms, integer widths must be
// multiples of 8 between 8 and 256, fixed byte widths lie in 1..32 and fixed
// arrays need at least one element.
//
// NewType 根据类型字符串构造 Type；非法或不支持的类型返回包装了 ErrUnsupportedType 的错误。
func NewType(t string, internalType string, components []ArgumentMarshaling) (typ Type, err error) {
	// check that array brackets are equal if they exist
	if strings.Count(t, "[") != strings.Count(t, "]") {
		return Type{}, unsupported(t, "unbalanced array brackets")
	}
	typ.stringKind = t

	// if there are brackets, get ready to go into slice/array mode and
	// recursively create the type
	if strings.Count(t, "[") != 0 {
		// Note internalType can be empty here.
		subInternal := internalType
		if i := strings.LastIndex(internalType, "["); i != -1 {
			subInternal = subInternal[:i]
		}
		// recursively embed the type
		i := strings.LastIndex(t, "[")
		embeddedType, err := NewType(t[:i], subInternal, components)
		if err != nil {
			return Type{}, err
		}
		// grab the last cell and create a type from there
		sliced := t[i:]
		m := sliceSizeRegex.FindStringSubmatch(sliced)
		if m == nil {
			return Type{}, unsupported(t, "invalid formatting of array type")
		}
		typ.Elem = &embeddedType
		if m[1] == "" {
			typ.T = SliceTy
		} else {
			typ.T = ArrayTy
			typ.Size, err = strconv.Atoi(m[1])
			if err != nil {
				return Type{}, unsupported(t, "error parsing array size: %v", err)
			}
			if typ.Size == 0 {
				return Type{}, unsupported(t, "zero-length fixed array")
			}
		}
		typ.stringKind = embeddedType.stringKind + sliced
		return typ, nil
	}
	// parse the type and size of the abi-type.
	parsedType := typeRegex.FindStringSubmatch(t)
	if parsedType == nil {
		return Type{}, unsupported(t, "invalid type")
	}
	// varSize is the size of the variable
	var (
		varSize int
		sized   = len(parsedType[3]) > 0
	)
	if len(parsedType[4]) > 0 {
		// fixed point types carry an MxN suffix
		return Type{}, unsupported(t, "fixed point types are not supported")
	}
	if sized {
		varSize, err = strconv.Atoi(parsedType[2])
		if err != nil {
			return Type{}, unsupported(t, "error parsing variable size: %v", err)
		}
	}
	// varType is the parsed abi type
	switch varType := parsedType[1]; varType {
	case "int", "uint":
		if !sized {
			varSize = 256
		}
		if varSize < 8 || varSize > 256 || varSize%8 != 0 {
			return Type{}, unsupported(t, "integer width must be a multiple of 8 in 8..256")
		}
		typ.Size = varSize
		typ.T = IntTy
		if varType == "uint" {
			typ.T = UintTy
		}
		typ.stringKind = varType + strconv.Itoa(varSize)
	case "bool":
		typ.T = BoolTy
	case "address":
		typ.Size = 20
		typ.T = AddressTy
	case "string":
		typ.T = StringTy
	case "bytes":
		if !sized {
			typ.T = BytesTy
			break
		}
		if varSize < 1 || varSize > 32 {
			return Type{}, unsupported(t, "fixed bytes width must be in 1..32")
		}
		typ.T = FixedBytesTy
		typ.Size = varSize
	case "tuple":
		if len(components) == 0 {
			return Type{}, unsupported(t, "tuple without components")
		}
		var (
			elems      []*Type
			names      []string
			expression string // canonical parameter expression
		)
		expression += "("
		for idx, c := range components {
			cType, err := NewType(c.Type, c.InternalType, c.Components)
			if err != nil {
				return Type{}, err
			}
			elems = append(elems, &cType)
			names = append(names, c.Name)
			expression += cType.stringKind
			if idx != len(components)-1 {
				expression += ","
			}
		}
		expression += ")"

		typ.TupleElems = elems
		typ.TupleRawNames = names
		typ.T = TupleTy
		typ.stringKind = expression

		const structPrefix = "struct "
		// After solidity 0.5.10, a new field of abi "internalType"
		// is introduced. From that we can obtain the struct name
		// user defined in the source code.
		if internalType != "" && strings.HasPrefix(internalType, structPrefix) {
			// Foo.Bar type definition is not allowed in golang,
			// convert the format to FooBar
			typ.TupleRawName = strings.ReplaceAll(internalType[len(structPrefix):], ".", "")
		}
	case "function":
		typ.T = FunctionTy
		typ.Size = 24
	default:
		if strings.HasPrefix(internalType, "contract ") {
			typ.Size = 20
			typ.T = AddressTy
			typ.stringKind = "address"
		} else {
			return Type{}, unsupported(t, "unknown type")
		}
	}
	return typ, nil
}

func unsupported(t string, format string, args ...interface{}) error {
	return &EncodeError{Kind: ErrUnsupportedType, Msg: fmt.Sprintf("%q: ", t) + fmt.Sprintf(format, args...)}
}

// String implements Stringer. It returns the canonical type name.
func (t Type) String() (out string) {
	return t.stringKind
}

// requiresLengthPrefix returns whether the type requires any sort of length
// prefixing.
func (t Type) requiresLengthPrefix() bool {
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy
}

// IsDynamic reports whether values of t live in the tail region of an
// encoding, referenced from the head by an offset word.
//
// IsDynamic 判断类型是否为动态类型：string、bytes、T[]，以及包含动态成员的数组和元组。
func (t Type) IsDynamic() bool {
	return isDynamicType(t)
}

func isDynamicType(t Type) bool {
	if t.T == TupleTy {
		for _, elem := range t.TupleElems {
			if isDynamicType(*elem) {
				return true
			}
		}
		return false
	}
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy || (t.T == ArrayTy && isDynamicType(*t.Elem))
}

// getTypeSize returns the size that this type needs to occupy in the head
// region. Dynamic types only need an offset word there; static arrays and
// tuples are laid out inline.
func getTypeSize(t Type) int {
	if t.T == ArrayTy && !isDynamicType(*t.Elem) {
		// Recursively calculate type size if it is a nested array
		if t.Elem.T == ArrayTy || t.Elem.T == TupleTy {
			return t.Size * getTypeSize(*t.Elem)
		}
		return t.Size * 32
	} else if t.T == TupleTy && !isDynamicType(t) {
		total := 0
		for _, elem := range t.TupleElems {
			total += getTypeSize(*elem)
		}
		return total
	}
	return 32
}

// HeadSize returns the number of bytes t occupies in the head region.
func (t Type) HeadSize() int {
	return getTypeSize(t)
}
