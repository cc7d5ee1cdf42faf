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

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/contractcall/accounts/abi"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
	"github.com/sunyihoo/contractcall/common/hexutil"
	"github.com/sunyihoo/contractcall/crypto"
)

const vestingABI = `[
	{"type":"function","name":"balanceOf","inputs":[{"name":"_recipient","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"vestedSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"admin","inputs":[],"outputs":[{"name":"","type":"address"},{"name":"","type":"bool"}],"stateMutability":"view"},
	{"type":"function","name":"claim","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"setConfig","inputs":[{"name":"cfg","type":"tuple","components":[{"name":"owner","type":"address"},{"name":"limit","type":"uint256"}]}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"toggle","inputs":[{"name":"on","type":"bool"},{"name":"ids","type":"uint8[]"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"error","name":"Unauthorized","inputs":[{"name":"caller","type":"address"}]}
]`

const (
	contractHex = "0x575ccd8e2d300e2377b43478339e364000318e2c"
	holderHex   = "0xf8cd644baf494d13406187cf8628754dca0a10c2"
	adminHex    = "0xD533a949740bb3306d119CC777fa900bA034cd52"
)

func pad(hex string) string {
	return strings.Repeat("0", 64-len(hex)) + hex
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the abicall app with the given arguments and returns what it
// printed to standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"abicall"}, args...))
	return out.String(), err
}

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode answers JSON-RPC requests and keeps the last one with its headers.
type fakeNode struct {
	mu      sync.Mutex
	last    rpcRequest
	headers http.Header
	answer  func(req rpcRequest) (interface{}, map[string]interface{})
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n.mu.Lock()
	n.last, n.headers = req, r.Header.Clone()
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

func (n *fakeNode) call(t *testing.T) map[string]interface{} {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.last.Params)
	var call map[string]interface{}
	require.NoError(t, json.Unmarshal(n.last.Params[0], &call))
	return call
}

func newFakeNode(t *testing.T, answer func(req rpcRequest) (interface{}, map[string]interface{})) (*fakeNode, string) {
	node := &fakeNode{answer: answer}
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)
	return node, srv.URL
}

func TestEncode(t *testing.T) {
	abiFile := writeFile(t, "vesting.json", vestingABI)

	out, err := run(t, "--abi", abiFile, "encode", "balanceOf", holderHex)
	require.NoError(t, err)
	assert.Equal(t, "0x70a08231000000000000000000000000f8cd644baf494d13406187cf8628754dca0a10c2\n", out)

	out, err = run(t, "--abi", abiFile, "encode", "setConfig", `{"owner":"0x0000000000000000000000000000000000000001","limit":5}`)
	require.NoError(t, err)
	sel := hexutil.Encode(crypto.Keccak256([]byte("setConfig((address,uint256))"))[:4])
	assert.Equal(t, sel+pad("1")+pad("5")+"\n", out)

	out, err = run(t, "--abi", abiFile, "encode", "toggle", "true", "[1, 2]")
	require.NoError(t, err)
	sel = hexutil.Encode(crypto.Keccak256([]byte("toggle(bool,uint8[])"))[:4])
	assert.Equal(t, sel+pad("1")+pad("40")+pad("2")+pad("1")+pad("2")+"\n", out)
}

func TestEncodeErrors(t *testing.T) {
	abiFile := writeFile(t, "vesting.json", vestingABI)

	_, err := run(t, "--abi", abiFile, "encode", "mint", "1")
	assert.ErrorIs(t, err, abi.ErrUnknownFunction)

	_, err = run(t, "--abi", abiFile, "encode", "balanceOf")
	assert.ErrorIs(t, err, abi.ErrArityMismatch)

	_, err = run(t, "--abi", abiFile, "encode", "toggle", "maybe", "[]")
	assert.Error(t, err)

	_, err = run(t, "encode", "balanceOf", holderHex)
	assert.ErrorContains(t, err, "no ABI file")
}

func TestSelector(t *testing.T) {
	out, err := run(t, "selector", "transfer(address, uint256)")
	require.NoError(t, err)
	assert.Equal(t, "0xa9059cbb\n", out)

	abiFile := writeFile(t, "vesting.json", vestingABI)
	out, err = run(t, "--abi", abiFile, "selector", "balanceOf")
	require.NoError(t, err)
	assert.Equal(t, "0x70a08231 balanceOf(address)\n", out)

	out, err = run(t, "--abi", abiFile, "selector")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasSuffix(lines[0], " admin()"), lines[0])
	assert.Equal(t, "0x70a08231 balanceOf(address)", lines[1])
}

func TestDecode(t *testing.T) {
	abiFile := writeFile(t, "vesting.json", vestingABI)

	out, err := run(t, "--abi", abiFile, "decode", "vestedSupply", "0x"+pad("de0b6b3a7640000"))
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000\n", out)

	out, err = run(t, "--abi", abiFile, "decode", "admin", "0x"+pad(strings.ToLower(adminHex[2:]))+pad("1"))
	require.NoError(t, err)
	assert.Equal(t, adminHex+"\ntrue\n", out)

	out, err = run(t, "--abi", abiFile, "decode", "claim", "0x")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "--abi", abiFile, "decode", "vestedSupply", "0x")
	assert.ErrorIs(t, err, abi.ErrEmptyResponse)

	out, err = run(t, "--abi", abiFile, "decode", "--verbose", "vestedSupply", "0x"+pad("7"))
	require.NoError(t, err)
	assert.Contains(t, out, "bignum.Int")
}

func TestCall(t *testing.T) {
	node, url := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return "0x" + pad("7"), nil
	})
	abiFile := writeFile(t, "vesting.json", vestingABI)

	out, err := run(t, "--rpc", url, "--contract", contractHex, "--abi", abiFile,
		"--from", holderHex, "--block", "pending", "--gas", "40955",
		"call", "balanceOf", holderHex)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)

	node.mu.Lock()
	assert.Equal(t, "eth_call", node.last.Method)
	require.Len(t, node.last.Params, 2)
	assert.Equal(t, `"pending"`, string(node.last.Params[1]))
	node.mu.Unlock()

	call := node.call(t)
	assert.Equal(t, contractHex, call["to"])
	assert.Equal(t, holderHex, call["from"])
	assert.Equal(t, "0x9ffb", call["gas"])
	assert.Equal(t, "0x70a08231000000000000000000000000f8cd644baf494d13406187cf8628754dca0a10c2", call["data"])
}

func TestCallRevert(t *testing.T) {
	reason := "0x08c379a0" + pad("20") + pad("9") + hexutil.Encode([]byte("not admin"))[2:] + strings.Repeat("0", 46)
	custom := hexutil.Encode(crypto.Keccak256([]byte("Unauthorized(address)"))[:4]) + pad("1")

	var revert string
	_, url := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return nil, map[string]interface{}{"code": 3, "message": "execution reverted", "data": revert}
	})
	abiFile := writeFile(t, "vesting.json", vestingABI)
	args := []string{"--rpc", url, "--contract", contractHex, "--abi", abiFile, "call", "vestedSupply"}

	revert = reason
	_, err := run(t, args...)
	assert.EqualError(t, err, "execution reverted: not admin")

	revert = custom
	_, err = run(t, args...)
	assert.EqualError(t, err, "execution reverted: Unauthorized(0x0000000000000000000000000000000000000001)")
}

func TestSend(t *testing.T) {
	hash := common.HexToHash("0x6f8e3b1c5e6b4c1c2f8c58c4cd2d1e4a8e6d5f6a4b3c2d1e0f9a8b7c6d5e4f3a")
	node, url := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return hash, nil
	})
	abiFile := writeFile(t, "vesting.json", vestingABI)

	out, err := run(t, "--rpc", url, "--contract", contractHex, "--abi", abiFile,
		"--from", holderHex, "--value", "1000000000000000000", "--gasprice", "0x3b9aca00",
		"send", "claim")
	require.NoError(t, err)
	assert.Equal(t, hash.Hex()+"\n", out)

	node.mu.Lock()
	assert.Equal(t, "eth_sendTransaction", node.last.Method)
	node.mu.Unlock()
	call := node.call(t)
	assert.Equal(t, holderHex, call["from"])
	assert.Equal(t, "0xde0b6b3a7640000", call["value"])
	assert.Equal(t, "0x3b9aca00", call["gasPrice"])
	assert.Equal(t, "0x4e71d92d", call["data"])
}

func TestHeadersAndJWT(t *testing.T) {
	node, url := newFakeNode(t, func(req rpcRequest) (interface{}, map[string]interface{}) {
		return "0x" + pad("1"), nil
	})
	abiFile := writeFile(t, "vesting.json", vestingABI)
	secret := writeFile(t, "jwt.hex", strings.Repeat("ab", 32)+"\n")

	_, err := run(t, "--rpc", url, "--contract", contractHex, "--abi", abiFile,
		"--rpc.header", "X-Api-Key: secret", "--rpc.jwtsecret", secret,
		"call", "vestedSupply")
	require.NoError(t, err)

	node.mu.Lock()
	defer node.mu.Unlock()
	assert.Equal(t, "secret", node.headers.Get("X-Api-Key"))
	assert.True(t, strings.HasPrefix(node.headers.Get("Authorization"), "Bearer "))

	bad := writeFile(t, "short.hex", "abcd")
	_, err = run(t, "--rpc", url, "--contract", contractHex, "--abi", abiFile, "--rpc.jwtsecret", bad, "call", "vestedSupply")
	assert.ErrorContains(t, err, "invalid JWT secret")
}

func TestConfigFile(t *testing.T) {
	abiFile := writeFile(t, "vesting.json", vestingABI)
	cfgFile := writeFile(t, "abicall.toml", `
[RPC]
Endpoint = "http://127.0.0.1:8551"

[Contract]
Address = "`+contractHex+`"
ABI = "`+abiFile+`"

[Defaults]
From = "`+holderHex+`"
GasLimit = 50000
Block = "safe"
`)

	out, err := run(t, "--config", cfgFile, "--block", "pending", "dumpconfig")
	require.NoError(t, err)
	assert.Contains(t, out, `Endpoint = "http://127.0.0.1:8551"`)
	assert.Contains(t, out, `Address = "`+contractHex+`"`)
	assert.Contains(t, out, "GasLimit = 50000")
	assert.Contains(t, out, `Block = "pending"`)

	// the file alone is enough for offline commands
	out, err = run(t, "--config", cfgFile, "encode", "claim")
	require.NoError(t, err)
	assert.Equal(t, "0x4e71d92d\n", out)

	broken := writeFile(t, "broken.toml", "[RPC]\nEndpont = \"http://localhost:8545\"\n")
	_, err = run(t, "--config", broken, "dumpconfig")
	assert.ErrorContains(t, err, "field 'Endpont' is not defined")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "-5", formatValue(bignum.NewInt(-5)))
	assert.Equal(t, adminHex, formatValue(common.HexToAddress(adminHex)))
	assert.Equal(t, "0x0102", formatValue([]byte{1, 2}))
	assert.Equal(t, "[1, [true, abc]]", formatValue([]interface{}{bignum.NewInt(1), []interface{}{true, "abc"}}))
}
