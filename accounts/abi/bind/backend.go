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

import (
	"context"
	"errors"

	"github.com/sunyihoo/contractcall/accounts/abi"
	"github.com/sunyihoo/contractcall/common"
)

var (
	// ErrUnknownFunction is returned when a contract is asked to invoke a name
	// its interface does not declare. No transport interaction takes place.
	// ErrUnknownFunction 在调用接口中未声明的函数名时返回，此时不会访问传输层。
	ErrUnknownFunction = abi.ErrUnknownFunction

	// ErrNoTransport is returned when a bound contract was created without a
	// transport to dispatch through.
	ErrNoTransport = errors.New("no transport to dispatch contract call")
)

// CallMsg contains the parameters of a contract invocation that are fixed by
// the binding itself: the target contract and the encoded calldata. Caller
// supplied parameters travel separately in Options.
// CallMsg 包含由绑定决定的调用参数：目标合约地址和编码后的 calldata；调用方参数通过 Options 单独传递。
type CallMsg struct {
	To   common.Address // Contract the message is directed at
	Data []byte         // Selector followed by the encoded arguments
}

// ContractCaller defines the methods needed to allow operating with a contract on a read
// only basis.
// ContractCaller 定义了以只读方式与合约交互所需的方法。
type ContractCaller interface {
	// CallContract executes a read-only contract call with the specified data as
	// the input and returns the raw return data.
	// CallContract 以只读方式执行合约调用并返回原始返回数据。
	CallContract(ctx context.Context, call CallMsg, opts *Options) ([]byte, error)
}

// ContractTransactor defines the methods needed to allow operating with a contract
// on a write only basis.
// ContractTransactor 定义了以只写方式与合约交互所需的方法。
type ContractTransactor interface {
	// SendTransaction submits a state-changing call and returns the hash of the
	// transaction handle. Signing is left to the remote endpoint.
	// SendTransaction 提交修改状态的调用并返回交易哈希，签名由远端节点负责。
	SendTransaction(ctx context.Context, call CallMsg, opts *Options) (common.Hash, error)
}

// ContractTransport defines the methods needed to work with contracts on a read-write basis.
// ContractTransport 定义了以读写方式与合约交互所需的方法。
type ContractTransport interface {
	ContractCaller     // 合约调用器
	ContractTransactor // 合约交易器
}
