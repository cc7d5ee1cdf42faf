// Copyright 2015 The go-ethereum Authors
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

package flags

import "github.com/urfave/cli/v2"

// 命令行帮助输出按类别分组，每个标志通过 Category 字段归入下面的某一组。

const (
	// RPCCategory 是与节点连接（端点、请求头、JWT）相关的标志的类别。
	RPCCategory = "RPC ENDPOINT"
	// ContractCategory 是与目标合约（地址、ABI 文件）相关的标志的类别。
	ContractCategory = "CONTRACT"
	// TxCategory 是与调用选项（from、gas、value、区块）相关的标志的类别。
	TxCategory = "CALL OPTIONS"
	// CodegenCategory 是与类型化包装代码生成相关的标志的类别。
	CodegenCategory = "CODE GENERATION"
	// LoggingCategory 是与 Logging and Debugging 相关的标志的类别。
	LoggingCategory = "LOGGING AND DEBUGGING"
	// MiscCategory 是与 Miscellaneous 相关的标志的类别。
	MiscCategory = "MISC"
)

func init() {
	// 将帮助标志的类别设置为 MiscCategory。
	cli.HelpFlag.(*cli.BoolFlag).Category = MiscCategory
	// 将版本标志的类别设置为 MiscCategory。
	cli.VersionFlag.(*cli.BoolFlag).Category = MiscCategory
}
