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

package bind

import "github.com/sunyihoo/contractcall/accounts/abi"

// tmplData is the data structure required to fill the binding template.
// tmplData 是填充绑定模板所需的数据结构。
type tmplData struct {
	Package   string                   // Name of the package to place the generated file in
	Contracts map[string]*tmplContract // List of contracts to generate into this file
}

// tmplContract contains the data needed to generate an individual contract binding.
// tmplContract 包含生成单个合约绑定所需的数据。
type tmplContract struct {
	Type      string                 // Type name of the main contract binding
	InputABI  string                 // JSON ABI used as the input to generate the binding from
	Calls     map[string]*tmplMethod // Contract calls that only read state data
	Transacts map[string]*tmplMethod // Contract calls that write state data
}

// tmplMethod is a wrapper around an abi.Method that contains a few preprocessed
// and cached data fields.
// tmplMethod 是 abi.Method 的包装器，包含一些预处理和缓存的数据字段。
type tmplMethod struct {
	Original   abi.Method // Original method as parsed by the abi package
	Normalized abi.Method // Normalized version of the parsed method (capitalized names, non-anonymous args)
}

// tmplSourceGo is the Go source template that the generated Go contract binding
// is based on.
// tmplSourceGo 是生成的 Go 合约绑定所基于的 Go 源代码模板。
const tmplSourceGo = `
// Code generated - DO NOT EDIT.
// This file is a generated binding and any manual changes will be lost.

package {{.Package}}

import (
	"context"
	"strings"

	"github.com/sunyihoo/contractcall/accounts/abi"
	"github.com/sunyihoo/contractcall/accounts/abi/bind"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
)

// Reference imports to suppress errors if they are not otherwise used.
var (
	_ = context.Background
	_ = strings.NewReader
	_ = abi.JSON
	_ = common.Address{}
	_ = bignum.NewInt
)

{{range $contract := .Contracts}}
	// {{.Type}}ABI is the input ABI used to generate the binding from.
	const {{.Type}}ABI = "{{.InputABI}}"

	// {{.Type}} is a typed wrapper around a deployed {{.Type}} contract.
	type {{.Type}} struct {
		contract *bind.BoundContract
	}

	// New{{.Type}} creates a new instance of {{.Type}}, bound to a specific deployed contract.
	func New{{.Type}}(address common.Address, transport bind.ContractTransport, defaults *bind.Options) (*{{.Type}}, error) {
		parsed, err := abi.JSON(strings.NewReader({{.Type}}ABI))
		if err != nil {
			return nil, err
		}
		return &{{.Type}}{contract: bind.NewBoundContract(address, parsed, transport, defaults)}, nil
	}

	// Contract returns the generic binding the wrapper dispatches through.
	func (_{{$contract.Type}} *{{$contract.Type}}) Contract() *bind.BoundContract {
		return _{{$contract.Type}}.contract
	}

	{{range .Calls}}
		// {{.Normalized.Name}} is a free data retrieval call binding the contract method 0x{{printf "%x" .Original.ID}}.
		//
		// Solidity: {{.Original.String}}
		func (_{{$contract.Type}} *{{$contract.Type}}) {{.Normalized.Name}}(ctx context.Context, opts *bind.Options{{range .Normalized.Inputs}}, {{.Name}} {{bindtype .Type}}{{end}}) ({{range .Normalized.Outputs}}{{bindtype .Type}}, {{end}}error) {
			{{if eq (len .Normalized.Outputs) 0}}
				_, err := _{{$contract.Type}}.contract.Call(ctx, opts, "{{.Original.Name}}"{{range .Normalized.Inputs}}, {{.Name}}{{end}})
				return err
			{{else if eq (len .Normalized.Outputs) 1}}
				out, err := _{{$contract.Type}}.contract.Call(ctx, opts, "{{.Original.Name}}"{{range .Normalized.Inputs}}, {{.Name}}{{end}})
				if err != nil {
					return *new({{bindtype (index .Normalized.Outputs 0).Type}}), err
				}
				out0, _ := out.({{bindtype (index .Normalized.Outputs 0).Type}})
				return out0, nil
			{{else}}
				out, err := _{{$contract.Type}}.contract.Call(ctx, opts, "{{.Original.Name}}"{{range .Normalized.Inputs}}, {{.Name}}{{end}})
				if err != nil {
					return {{range .Normalized.Outputs}}*new({{bindtype .Type}}), {{end}}err
				}
				values := out.([]interface{})
				{{range $i, $_ := .Normalized.Outputs}}out{{$i}}, _ := values[{{$i}}].({{bindtype .Type}})
				{{end}}
				return {{range $i, $_ := .Normalized.Outputs}}out{{$i}}, {{end}}nil
			{{end}}
		}
	{{end}}

	{{range .Transacts}}
		// {{.Normalized.Name}} is a paid mutator transaction binding the contract method 0x{{printf "%x" .Original.ID}}.
		//
		// Solidity: {{.Original.String}}
		func (_{{$contract.Type}} *{{$contract.Type}}) {{.Normalized.Name}}(ctx context.Context, opts *bind.Options{{range .Normalized.Inputs}}, {{.Name}} {{bindtype .Type}}{{end}}) (common.Hash, error) {
			return _{{$contract.Type}}.contract.Transact(ctx, opts, "{{.Original.Name}}"{{range .Normalized.Inputs}}, {{.Name}}{{end}})
		}
	{{end}}
{{end}}
`
