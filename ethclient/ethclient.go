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

// Package ethclient provides a client for the Ethereum RPC API.
//
// Client implements bind.ContractTransport on top of eth_call and
// eth_sendTransaction.
package ethclient

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sunyihoo/contractcall/accounts/abi/bind"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/hexutil"
	"github.com/sunyihoo/contractcall/log"
	"github.com/sunyihoo/contractcall/rpc"
)

// Client defines typed wrappers for the Ethereum RPC API.
// Client 为以太坊 RPC API 提供类型化的封装。
type Client struct {
	c *rpc.Client
}

var _ bind.ContractTransport = (*Client)(nil)

// Dial connects a client to the given URL.
func Dial(rawurl string) (*Client, error) {
	return DialContext(context.Background(), rawurl)
}

// DialContext connects a client to the given URL with context.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	c, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return NewClient(c), nil
}

// NewClient creates a client that uses the given RPC client.
func NewClient(c *rpc.Client) *Client {
	return &Client{c}
}

// Close closes the underlying RPC connection.
func (ec *Client) Close() {
	ec.c.Close()
}

// Client gets the underlying RPC client.
func (ec *Client) Client() *rpc.Client {
	return ec.c
}

// ChainID retrieves the current chain ID for transaction replay protection.
func (ec *Client) ChainID(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	if err := ec.c.CallContext(ctx, &result, "eth_chainId"); err != nil {
		return 0, err
	}
	return uint64(result), nil
}

// BlockNumber returns the most recent block number
func (ec *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	err := ec.c.CallContext(ctx, &result, "eth_blockNumber")
	return uint64(result), err
}

// CallContract executes a message call transaction, which is directly executed in the VM
// of the node, but never mined into the blockchain.
//
// opts.Block selects the block at which the call runs. It defaults to the
// latest known block. Note that state from very old blocks might not be available.
//
// CallContract 通过 "eth_call" 在节点的 VM 中执行调用，不会上链，返回原始返回数据。
func (ec *Client) CallContract(ctx context.Context, msg bind.CallMsg, opts *bind.Options) ([]byte, error) {
	block, err := toBlockArg(opts.BlockTag())
	if err != nil {
		return nil, err
	}
	var hex hexutil.Bytes
	if err := ec.c.CallContext(ctx, &hex, "eth_call", toCallArg(msg, opts), block); err != nil {
		if data, ok := RevertErrorData(err); ok {
			log.Debug("Contract call reverted", "to", msg.To, "data", hexutil.Encode(data))
		}
		return nil, err
	}
	return hex, nil
}

// SendTransaction submits a state-changing call through eth_sendTransaction.
// The node signs the transaction with the key of opts.From, which therefore
// has to be unlocked there.
//
// SendTransaction 通过 eth_sendTransaction 提交交易，由节点负责签名，返回交易哈希。
func (ec *Client) SendTransaction(ctx context.Context, msg bind.CallMsg, opts *bind.Options) (common.Hash, error) {
	var hash common.Hash
	if err := ec.c.CallContext(ctx, &hash, "eth_sendTransaction", toCallArg(msg, opts)); err != nil {
		return common.Hash{}, err
	}
	return hash, nil
}

// RevertErrorData returns the 'revert reason' data of a contract call.
//
// This can be used with CallContract, and only when the server is Geth or
// speaks its error format.
// RevertErrorData 函数从错误中提取合约调用的 revert 原因数据。
func RevertErrorData(err error) ([]byte, bool) {
	var ec rpc.Error
	var ed rpc.DataError
	if errors.As(err, &ec) && errors.As(err, &ed) && ec.ErrorCode() == 3 {
		if eds, ok := ed.ErrorData().(string); ok {
			revertData, err := hexutil.Decode(eds)
			if err == nil {
				return revertData, true
			}
		}
	}
	return nil, false
}

// toBlockArg validates a block tag. Decimal numbers are converted to the hex
// quantity the API expects.
func toBlockArg(tag string) (string, error) {
	switch tag {
	case "latest", "pending", "earliest", "safe", "finalized":
		return tag, nil
	}
	if strings.HasPrefix(tag, "0x") || strings.HasPrefix(tag, "0X") {
		n, err := hexutil.DecodeUint64(strings.ToLower(tag))
		if err != nil {
			return "", fmt.Errorf("invalid block tag %q: %w", tag, err)
		}
		return hexutil.EncodeUint64(n), nil
	}
	n, err := strconv.ParseUint(tag, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid block tag %q", tag)
	}
	return hexutil.EncodeUint64(n), nil
}

func toCallArg(msg bind.CallMsg, opts *bind.Options) interface{} {
	arg := map[string]interface{}{
		"to": msg.To,
	}
	if len(msg.Data) > 0 {
		arg["data"] = hexutil.Bytes(msg.Data)
	}
	if opts == nil {
		return arg
	}
	if opts.From != nil {
		arg["from"] = *opts.From
	}
	if opts.GasLimit != 0 {
		arg["gas"] = hexutil.Uint64(opts.GasLimit)
	}
	if opts.GasPrice != nil {
		arg["gasPrice"] = (*hexutil.Big)(opts.GasPrice.Big())
	}
	if opts.Value != nil {
		arg["value"] = (*hexutil.Big)(opts.Value.Big())
	}
	// transport specific fields never shadow the ones above
	for k, v := range opts.Extra {
		if _, ok := arg[k]; !ok {
			arg[k] = v
		}
	}
	return arg
}
