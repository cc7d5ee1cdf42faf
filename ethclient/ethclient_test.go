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

package ethclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/contractcall/accounts/abi"
	"github.com/sunyihoo/contractcall/accounts/abi/bind"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
	"github.com/sunyihoo/contractcall/common/hexutil"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode records requests and answers them from a canned table.
type fakeNode struct {
	mu       sync.Mutex
	requests []rpcRequest
	answer   func(req rpcRequest) (result interface{}, errObj map[string]interface{})
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n.mu.Lock()
	n.requests = append(n.requests, req)
	n.mu.Unlock()

	result, errObj := n.answer(req)
	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if errObj != nil {
		resp["error"] = errObj
	} else {
		resp["result"] = result
	}
	json.NewEncoder(w).Encode(resp)
}

func (n *fakeNode) last(t *testing.T) (rpcRequest, map[string]interface{}) {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.requests)
	req := n.requests[len(n.requests)-1]
	var call map[string]interface{}
	require.NoError(t, json.Unmarshal(req.Params[0], &call))
	return req, call
}

func newFakeNode(t *testing.T, answer func(req rpcRequest) (interface{}, map[string]interface{})) (*fakeNode, *Client) {
	node := &fakeNode{answer: answer}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	client, err := Dial(srv.URL)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return node, client
}

var (
	contractAddr = common.HexToAddress("0x575ccd8e2d300e2377b43478339e364000318e2c")
	holderAddr   = common.HexToAddress("0xf8cd644baf494d13406187cf8628754dca0a10c2")
)

func TestCallContract(t *testing.T) {
	node, client := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return "0x" + strings.Repeat("0", 63) + "7", nil
	})

	data := common.FromHex("0x70a08231000000000000000000000000f8cd644baf494d13406187cf8628754dca0a10c2")
	out, err := client.CallContract(context.Background(), bind.CallMsg{To: contractAddr, Data: data}, nil)
	require.NoError(t, err)
	assert.Equal(t, common.LeftPadBytes([]byte{7}, 32), out)

	req, call := node.last(t)
	assert.Equal(t, "eth_call", req.Method)
	require.Len(t, req.Params, 2)
	assert.Equal(t, `"latest"`, string(req.Params[1]))
	assert.Equal(t, hexutil.Encode(data), call["data"])
	assert.Equal(t, strings.ToLower(contractAddr.Hex()), strings.ToLower(call["to"].(string)))
	assert.NotContains(t, call, "from")
	assert.NotContains(t, call, "gas")
}

func TestCallContractOptions(t *testing.T) {
	node, client := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return "0x", nil
	})

	opts := &bind.Options{
		From:     &holderAddr,
		GasLimit: 40955,
		GasPrice: bignum.NewInt(1000000000),
		Value:    bignum.NewInt(16),
		Block:    "100",
		Extra:    map[string]interface{}{"nonce": "0x1", "gas": "0xffff"},
	}
	_, err := client.CallContract(context.Background(), bind.CallMsg{To: contractAddr}, opts)
	require.NoError(t, err)

	req, call := node.last(t)
	assert.Equal(t, `"0x64"`, string(req.Params[1]))
	assert.Equal(t, "0x9ffb", call["gas"])
	assert.Equal(t, "0x3b9aca00", call["gasPrice"])
	assert.Equal(t, "0x10", call["value"])
	assert.Equal(t, "0x1", call["nonce"])
	assert.Equal(t, strings.ToLower(holderAddr.Hex()), strings.ToLower(call["from"].(string)))
	assert.NotContains(t, call, "data")
}

func TestCallContractBlockTag(t *testing.T) {
	node, client := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return "0x", nil
	})
	for tag, want := range map[string]string{
		"pending":  `"pending"`,
		"earliest": `"earliest"`,
		"0x1b4":    `"0x1b4"`,
		"0":        `"0x0"`,
	} {
		_, err := client.CallContract(context.Background(), bind.CallMsg{To: contractAddr}, &bind.Options{Block: tag})
		require.NoError(t, err, tag)
		req, _ := node.last(t)
		assert.Equal(t, want, string(req.Params[1]), tag)
	}

	before := len(node.requests)
	for _, tag := range []string{"newest", "0xzz", "-1", "0x01"} {
		_, err := client.CallContract(context.Background(), bind.CallMsg{To: contractAddr}, &bind.Options{Block: tag})
		assert.Error(t, err, tag)
	}
	assert.Len(t, node.requests, before)
}

func revertReason(reason string) string {
	enc := "08c379a0" +
		common.Bytes2Hex(common.LeftPadBytes([]byte{0x20}, 32)) +
		common.Bytes2Hex(common.LeftPadBytes([]byte{byte(len(reason))}, 32)) +
		common.Bytes2Hex(common.RightPadBytes([]byte(reason), 32))
	return "0x" + enc
}

func TestCallContractRevert(t *testing.T) {
	_, client := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return nil, map[string]interface{}{"code": 3, "message": "execution reverted: not admin", "data": revertReason("not admin")}
	})

	_, err := client.CallContract(context.Background(), bind.CallMsg{To: contractAddr}, nil)
	require.Error(t, err)

	data, ok := RevertErrorData(err)
	require.True(t, ok)
	reason, err := abi.UnpackRevert(data)
	require.NoError(t, err)
	assert.Equal(t, "not admin", reason)
}

func TestRevertErrorDataOtherErrors(t *testing.T) {
	_, client := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return nil, map[string]interface{}{"code": -32000, "message": "header not found"}
	})
	_, err := client.CallContract(context.Background(), bind.CallMsg{To: contractAddr}, nil)
	require.Error(t, err)
	_, ok := RevertErrorData(err)
	assert.False(t, ok)
}

func TestSendTransaction(t *testing.T) {
	hash := common.HexToHash("0x9fc76417374aa880d4449a1f7f31ec597f00b1f6f3dd2d66f4c9c6c445836d8b")
	node, client := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return hash.Hex(), nil
	})

	got, err := client.SendTransaction(context.Background(), bind.CallMsg{To: contractAddr, Data: common.FromHex("0x4e71d92d")}, &bind.Options{From: &holderAddr})
	require.NoError(t, err)
	assert.Equal(t, hash, got)

	req, call := node.last(t)
	assert.Equal(t, "eth_sendTransaction", req.Method)
	assert.Len(t, req.Params, 1)
	assert.Equal(t, "0x4e71d92d", call["data"])
}

func TestChainIDAndBlockNumber(t *testing.T) {
	_, client := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		switch req.Method {
		case "eth_chainId":
			return "0x1", nil
		default:
			return "0x1312d00", nil
		}
	})
	id, err := client.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	number, err := client.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(20000000), number)
}

func TestBoundContractOverRPC(t *testing.T) {
	const def = `[{"type":"function","name":"balanceOf","inputs":[{"name":"_recipient","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}]`
	node, client := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return "0x" + strings.Repeat("0", 48) + "0de0b6b3a7640000", nil
	})
	parsed, err := abi.JSON(strings.NewReader(def))
	require.NoError(t, err)

	contract := bind.NewBoundContract(contractAddr, parsed, client, &bind.Options{Block: "pending"})
	balance, err := contract.Invoke(context.Background(), "balanceOf", holderAddr, &bind.Options{GasLimit: 50000})
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", balance.(*bignum.Int).String())

	req, call := node.last(t)
	assert.Equal(t, `"pending"`, string(req.Params[1]))
	assert.Equal(t, "0xc350", call["gas"])
	assert.Equal(t, "0x70a08231000000000000000000000000f8cd644baf494d13406187cf8628754dca0a10c2", call["data"])
}
