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

// Package abi implements the Ethereum ABI (Application Binary
// Interface) for dynamically typed callers.
//
// An interface definition is a list of pre-parsed entries (see Entry and
// NewABI). Calls are encoded as a 4-byte selector, the first bytes of the
// Keccak-256 hash of the canonical signature, followed by the head/tail
// encoding of the arguments. Return data is decoded back into a small value
// model in which every integer is a *bignum.Int, so no precision is lost
// for 256-bit values.
//
// abi 包实现以太坊 ABI 的编码与解码。
//
// 调用数据 = 4 字节选择器（keccak256(规范签名) 的前 4 字节）+ 参数的头/尾编码。
// 返回数据按声明的输出类型解码，整数统一解码为 *bignum.Int，不丢失精度。
package abi

//1. 头/尾编码
//静态类型（uintN、intN、address、bool、bytesN、function）占用一个 32 字节字：
//数字、地址、布尔左侧补零；bytesN 与 function 右侧补零。
//动态类型（string、bytes、T[]，以及含动态成员的数组/元组）在头部只写一个偏移字，
//内容（长度字 + 数据）追加到尾部。
//2. 结果形态
//0 个输出：返回空切片，不检查返回数据。
//1 个输出：直接返回该值。
//多个输出：按声明顺序返回切片。
