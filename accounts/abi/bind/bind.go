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

// Package bind binds contract interfaces to remote contracts.
//
// A BoundContract encodes invocations with the abi package, hands the calldata
// to a ContractTransport and decodes what comes back. Bind renders typed Go
// wrappers over BoundContract from JSON interface definitions.
//
// bind 包将合约接口绑定到远端合约：编码调用、经传输层分发、解码结果；Bind 生成类型化的 Go 包装代码。
package bind

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sunyihoo/contractcall/accounts/abi"
)

func isKeyWord(arg string) bool {
	switch arg {
	case "break":
	case "case":
	case "chan":
	case "const":
	case "continue":
	case "default":
	case "defer":
	case "else":
	case "fallthrough":
	case "for":
	case "func":
	case "go":
	case "goto":
	case "if":
	case "import":
	case "interface":
	case "iota":
	case "map":
	case "make":
	case "new":
	case "package":
	case "range":
	case "return":
	case "select":
	case "struct":
	case "switch":
	case "type":
	case "var":
	default:
		return false
	}
	return true
}

// isReserved reports whether a parameter name clashes with the identifiers
// every generated method declares itself.
func isReserved(arg string) bool {
	switch arg {
	case "ctx", "opts", "out", "err", "values":
		return true
	}
	return isKeyWord(arg)
}

// Bind generates a Go wrapper around a contract ABI. This wrapper isn't meant
// to be used as is in client code, but rather as an intermediate struct which
// enforces compile time type safety and naming convention as opposed to having to
// manually maintain hard coded strings that break on runtime.
//
// types and abis are parallel slices: the wrapper type name and the JSON
// interface definition of each contract.
//
// Bind 围绕合约 ABI 生成 Go 包装器。types 与 abis 一一对应：包装类型名与 JSON 接口定义。
func Bind(types []string, abis []string, pkg string) (string, error) {
	if len(types) != len(abis) {
		return "", fmt.Errorf("mismatched binding input: %d types for %d interfaces", len(types), len(abis))
	}
	// contracts is the map of each individual contract requested binding
	// contracts 是每个单独请求绑定的合约映射
	contracts := make(map[string]*tmplContract)

	for i := 0; i < len(types); i++ {
		// Parse the actual ABI to generate the binding for
		// 解析实际的 ABI 以生成绑定
		parsed, err := abi.JSON(strings.NewReader(abis[i]))
		if err != nil {
			return "", err
		}
		// Strip any whitespace from the JSON ABI
		// 从 JSON ABI 中去除任何空白
		strippedABI := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, abis[i])

		var (
			calls     = make(map[string]*tmplMethod)
			transacts = make(map[string]*tmplMethod)

			// Calls and transactions end up as methods of the same wrapper type,
			// so they share one identifier space.
			identifiers = mapset.NewThreadUnsafeSet[string]()
		)
		for _, original := range parsed.Methods {
			// Normalize the method for capital cases and non-anonymous inputs/outputs
			// 规范化方法以处理大写情况和非匿名输入/输出
			normalized := original
			normalizedName := abi.ToCamelCase(original.Name)

			// Name shouldn't start with a digit. It will make the generated code invalid.
			// 名称不应以数字开头。这会使生成的代码无效。
			if len(normalizedName) > 0 && unicode.IsDigit(rune(normalizedName[0])) {
				normalizedName = abi.ResolveNameConflict(fmt.Sprintf("M%s", normalizedName), func(name string) bool {
					return identifiers.Contains(name)
				})
			}
			if normalizedName == "" || normalizedName == "Contract" {
				return "", fmt.Errorf("method %q cannot be bound to a Go identifier", original.Name)
			}
			if !identifiers.Add(normalizedName) {
				return "", fmt.Errorf("duplicated identifier \"%s\"(normalized \"%s\")", original.Name, normalizedName)
			}

			normalized.Name = normalizedName
			normalized.Inputs = make([]abi.Argument, len(original.Inputs))
			copy(normalized.Inputs, original.Inputs)
			used := mapset.NewThreadUnsafeSet[string]()
			for j, input := range normalized.Inputs {
				if input.Name == "" || isReserved(input.Name) || used.Contains(input.Name) {
					normalized.Inputs[j].Name = fmt.Sprintf("arg%d", j)
				}
				used.Add(normalized.Inputs[j].Name)
			}
			method := &tmplMethod{Original: original, Normalized: normalized}
			if original.IsConstant() {
				calls[original.Name] = method
			} else {
				transacts[original.Name] = method
			}
		}
		contracts[types[i]] = &tmplContract{
			Type:      capitalise(types[i]),
			InputABI:  strings.ReplaceAll(strippedABI, "\"", "\\\""),
			Calls:     calls,
			Transacts: transacts,
		}
	}
	// Generate the contract template data content and render it
	// 生成合约模板数据内容并渲染
	data := &tmplData{
		Package:   pkg,
		Contracts: contracts,
	}
	buffer := new(bytes.Buffer)

	funcs := map[string]interface{}{
		"bindtype":   bindTypeGo,
		"capitalise": capitalise,
	}
	tmpl := template.Must(template.New("").Funcs(funcs).Parse(tmplSourceGo))
	if err := tmpl.Execute(buffer, data); err != nil {
		return "", err
	}
	// Pass the code through gofmt to clean it up
	// 通过 gofmt 处理代码以清理
	code, err := format.Source(buffer.Bytes())
	if err != nil {
		return "", fmt.Errorf("%v\n%s", err, buffer)
	}
	return string(code), nil
}

// bindTypeGo converts solidity types to the Go types the decoder produces for
// them. Every integer width maps onto *bignum.Int, arrays and tuples onto
// []interface{}.
// bindTypeGo 将 Solidity 类型转换为解码器产出的 Go 类型。
func bindTypeGo(kind abi.Type) string {
	switch kind.T {
	case abi.IntTy, abi.UintTy:
		return "*bignum.Int"
	case abi.AddressTy:
		return "common.Address"
	case abi.BoolTy:
		return "bool"
	case abi.StringTy:
		return "string"
	case abi.FixedBytesTy, abi.BytesTy:
		return "[]byte"
	case abi.FunctionTy:
		return "[24]byte"
	default:
		// arrays, slices and tuples
		// 数组、切片与元组
		return "[]interface{}"
	}
}

// capitalise makes a camel-case string which starts with an upper case character.
// capitalise 生成一个以大写字符开头的驼峰式字符串。
var capitalise = abi.ToCamelCase
