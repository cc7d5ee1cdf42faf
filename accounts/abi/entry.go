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

// Entry is one pre-parsed element of an interface definition. Type is one of
// "function", "constructor", "fallback", "receive", "event" or "error"; an
// empty Type means "function", as in ABIs produced by old compilers.
//
// Entry 是接口定义中一个预解析的条目；JSON 文本的解析在核心流程之外（见 JSON）。
type Entry struct {
	Type    string               `json:"type"`
	Name    string               `json:"name"`
	Inputs  []ArgumentMarshaling `json:"inputs"`
	Outputs []ArgumentMarshaling `json:"outputs"`

	// StateMutability is one of "pure", "view", "nonpayable" or "payable".
	StateMutability string `json:"stateMutability"`

	// Legacy flags, consulted only when StateMutability is empty.
	Constant bool `json:"constant"`
	Payable  bool `json:"payable"`

	Anonymous bool `json:"anonymous"`
}
