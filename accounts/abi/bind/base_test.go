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
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/contractcall/accounts/abi"
	"github.com/sunyihoo/contractcall/common"
	"github.com/sunyihoo/contractcall/common/bignum"
	"golang.org/x/sync/errgroup"
)

const vestingABI = `[
	{"type":"function","name":"balanceOf","inputs":[{"name":"_recipient","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"vestedSupply","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"total_claimed","inputs":[{"name":"arg0","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"token","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"view"},
	{"type":"function","name":"can_disable","inputs":[],"outputs":[{"name":"","type":"bool"}],"stateMutability":"view"},
	{"type":"function","name":"ping","inputs":[],"outputs":[],"stateMutability":"pure"},
	{"type":"function","name":"claim","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"getConfig","inputs":[],"outputs":[{"name":"admin","type":"address"},{"name":"start","type":"uint256"},{"name":"label","type":"string"}],"stateMutability":"view"},
	{"type":"function","name":"setConfig","inputs":[{"name":"cfg","type":"tuple","components":[{"name":"admin","type":"address"},{"name":"start","type":"uint256"}]}],"outputs":[],"stateMutability":"nonpayable"}
]`

var (
	vestingAddr = common.HexToAddress("0x575ccd8e2d300e2377b43478339e364000318e2c")
	holderAddr  = common.HexToAddress("0xf8cd644baf494d13406187cf8628754dca0a10c2")
	crvAddr     = common.HexToAddress("0xd533a949740bb3306d119cc777fa900ba034cd52")
)

// mockTransport records every dispatch and answers with canned data.
type mockTransport struct {
	mu    sync.Mutex
	calls []CallMsg
	opts  []*Options
	sent  []CallMsg

	callFn func(ctx context.Context, call CallMsg) ([]byte, error)
	hash   common.Hash
	err    error
}

func (m *mockTransport) CallContract(ctx context.Context, call CallMsg, opts *Options) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.opts = append(m.opts, opts)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.callFn != nil {
		return m.callFn(ctx, call)
	}
	return make([]byte, 32), nil
}

func (m *mockTransport) SendTransaction(ctx context.Context, call CallMsg, opts *Options) (common.Hash, error) {
	m.mu.Lock()
	m.sent = append(m.sent, call)
	m.opts = append(m.opts, opts)
	m.mu.Unlock()

	if m.err != nil {
		return common.Hash{}, m.err
	}
	return m.hash, nil
}

func (m *mockTransport) touched() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls) + len(m.sent)
}

func word(hex string) []byte {
	return common.LeftPadBytes(common.FromHex(hex), 32)
}

func newVesting(t *testing.T, transport ContractTransport, defaults *Options) *BoundContract {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(vestingABI))
	require.NoError(t, err)
	return NewBoundContract(vestingAddr, parsed, transport, defaults)
}

func TestInvokeBalanceOf(t *testing.T) {
	transport := &mockTransport{}
	contract := newVesting(t, transport, nil)

	result, err := contract.Invoke(context.Background(), "balanceOf", holderAddr.Hex())
	require.NoError(t, err)
	require.IsType(t, &bignum.Int{}, result)
	assert.Equal(t, "0", result.(*bignum.Int).String())

	require.Len(t, transport.calls, 1)
	assert.Equal(t, vestingAddr, transport.calls[0].To)
	assert.Equal(t, "70a08231000000000000000000000000f8cd644baf494d13406187cf8628754dca0a10c2", common.Bytes2Hex(transport.calls[0].Data))
	assert.Empty(t, transport.sent)
}

func TestInvokeTrailingOptions(t *testing.T) {
	transport := &mockTransport{
		callFn: func(ctx context.Context, call CallMsg) ([]byte, error) {
			return word("de0b6b3a7640000"), nil
		},
	}
	contract := newVesting(t, transport, nil)

	// a read with no arguments but an options object
	result, err := contract.Invoke(context.Background(), "vestedSupply", &Options{GasLimit: 40955})
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", result.(*bignum.Int).String())
	assert.Equal(t, common.FromHex("0xd9844dc0"), transport.calls[0].Data)
	assert.Equal(t, uint64(40955), transport.opts[0].GasLimit)

	// an empty options object passed by value
	_, err = contract.Invoke(context.Background(), "total_claimed", holderAddr, Options{})
	require.NoError(t, err)
	assert.Equal(t, "b8638e1e", common.Bytes2Hex(transport.calls[1].Data[:4]))
	assert.Len(t, transport.calls[1].Data, 36)

	// only one options value is stripped
	_, err = contract.Invoke(context.Background(), "vestedSupply", Options{}, Options{})
	assert.ErrorIs(t, err, abi.ErrArityMismatch)
}

func TestInvokeResultShapes(t *testing.T) {
	transport := &mockTransport{}
	contract := newVesting(t, transport, nil)

	transport.callFn = func(ctx context.Context, call CallMsg) ([]byte, error) {
		return word("d533a949740bb3306d119cc777fa900ba034cd52"), nil
	}
	token, err := contract.Invoke(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, crvAddr, token)
	assert.Equal(t, "0xD533a949740bb3306d119CC777fa900bA034cd52", token.(common.Address).Hex())

	transport.callFn = func(ctx context.Context, call CallMsg) ([]byte, error) {
		return word("1"), nil
	}
	canDisable, err := contract.Invoke(context.Background(), "can_disable")
	require.NoError(t, err)
	assert.Equal(t, true, canDisable)

	// pure functions without outputs never look at the data
	transport.callFn = func(ctx context.Context, call CallMsg) ([]byte, error) {
		return nil, nil
	}
	pong, err := contract.Invoke(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, pong)

	transport.callFn = func(ctx context.Context, call CallMsg) ([]byte, error) {
		data := append(word("1"), word("2a")...)
		data = append(data, word("60")...)
		data = append(data, word("3")...)
		return append(data, common.RightPadBytes([]byte("crv"), 32)...), nil
	}
	config, err := contract.Invoke(context.Background(), "getConfig")
	require.NoError(t, err)
	values, ok := config.([]interface{})
	require.True(t, ok)
	require.Len(t, values, 3)
	assert.Equal(t, common.HexToAddress("0x01"), values[0])
	assert.Equal(t, "42", values[1].(*bignum.Int).String())
	assert.Equal(t, "crv", values[2])
}

func TestInvokeEmptyResponse(t *testing.T) {
	transport := &mockTransport{
		callFn: func(ctx context.Context, call CallMsg) ([]byte, error) { return []byte{}, nil },
	}
	contract := newVesting(t, transport, nil)
	_, err := contract.Invoke(context.Background(), "vestedSupply")
	assert.ErrorIs(t, err, abi.ErrEmptyResponse)

	var derr *abi.DecodeError
	assert.ErrorAs(t, err, &derr)
}

func TestInvokeTransaction(t *testing.T) {
	hash := common.HexToHash("0x5b2c1d2e3f")
	transport := &mockTransport{hash: hash}
	contract := newVesting(t, transport, &Options{From: &holderAddr})

	result, err := contract.Invoke(context.Background(), "claim", &Options{GasLimit: 100000})
	require.NoError(t, err)
	assert.Equal(t, hash, result)

	require.Len(t, transport.sent, 1)
	assert.Empty(t, transport.calls)
	assert.Equal(t, common.FromHex("0x4e71d92d"), transport.sent[0].Data)
	assert.Equal(t, &holderAddr, transport.opts[0].From)
	assert.Equal(t, uint64(100000), transport.opts[0].GasLimit)

	// tuple arguments given as a map are arguments, never options
	_, err = contract.Transact(context.Background(), nil, "setConfig", map[string]interface{}{"admin": holderAddr, "start": 1})
	require.NoError(t, err)
	assert.Len(t, transport.sent[1].Data, 4+64)
}

func TestInvokeUnknownFunction(t *testing.T) {
	transport := &mockTransport{}
	contract := newVesting(t, transport, nil)

	_, err := contract.Invoke(context.Background(), "mint", 1)
	assert.ErrorIs(t, err, ErrUnknownFunction)
	_, err = contract.Call(context.Background(), nil, "mint")
	assert.ErrorIs(t, err, ErrUnknownFunction)
	_, err = contract.Transact(context.Background(), nil, "mint")
	assert.ErrorIs(t, err, ErrUnknownFunction)

	assert.Zero(t, transport.touched())
}

func TestInvokeEncodeErrorSkipsTransport(t *testing.T) {
	transport := &mockTransport{}
	contract := newVesting(t, transport, nil)

	_, err := contract.Invoke(context.Background(), "balanceOf")
	assert.ErrorIs(t, err, abi.ErrArityMismatch)

	_, err = contract.Invoke(context.Background(), "balanceOf", true)
	assert.ErrorIs(t, err, abi.ErrUnsupportedType)

	_, err = contract.Invoke(context.Background(), "claim", 1)
	assert.ErrorIs(t, err, abi.ErrArityMismatch)

	assert.Zero(t, transport.touched())
}

func TestInvokeTransportError(t *testing.T) {
	errNode := errors.New("connection refused")
	transport := &mockTransport{err: errNode}
	contract := newVesting(t, transport, nil)

	_, err := contract.Invoke(context.Background(), "vestedSupply")
	assert.ErrorIs(t, err, errNode)
	_, err = contract.Invoke(context.Background(), "claim")
	assert.ErrorIs(t, err, errNode)
}

func TestInvokeContextCancelled(t *testing.T) {
	transport := &mockTransport{
		callFn: func(ctx context.Context, call CallMsg) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	contract := newVesting(t, transport, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := contract.Invoke(ctx, "vestedSupply")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNoTransport(t *testing.T) {
	contract := newVesting(t, nil, nil)
	_, err := contract.Invoke(context.Background(), "vestedSupply")
	assert.ErrorIs(t, err, ErrNoTransport)
}

func TestDefaultsNotMutated(t *testing.T) {
	defaults := &Options{Block: "pending", Extra: map[string]interface{}{"a": 1}}
	transport := &mockTransport{}
	contract := newVesting(t, transport, defaults)

	_, err := contract.Invoke(context.Background(), "vestedSupply", &Options{Block: "0x10", Extra: map[string]interface{}{"a": 2, "b": 3}})
	require.NoError(t, err)
	_, err = contract.Invoke(context.Background(), "vestedSupply")
	require.NoError(t, err)

	assert.Equal(t, "0x10", transport.opts[0].Block)
	assert.Equal(t, map[string]interface{}{"a": 2, "b": 3}, transport.opts[0].Extra)
	assert.Equal(t, "pending", transport.opts[1].Block)
	assert.Equal(t, map[string]interface{}{"a": 1}, transport.opts[1].Extra)
	assert.Equal(t, map[string]interface{}{"a": 1}, defaults.Extra)
}

func TestInvokeConcurrent(t *testing.T) {
	transport := &mockTransport{
		callFn: func(ctx context.Context, call CallMsg) ([]byte, error) {
			// echo the queried address back as the balance
			return call.Data[4:], nil
		},
	}
	contract := newVesting(t, transport, nil)

	var g errgroup.Group
	for i := 1; i <= 64; i++ {
		i := i
		g.Go(func() error {
			addr := common.BytesToAddress([]byte{byte(i)})
			result, err := contract.Invoke(context.Background(), "balanceOf", addr)
			if err != nil {
				return err
			}
			if got := result.(*bignum.Int); !got.Equal(bignum.NewInt(int64(i))) {
				return errors.New("mismatched result " + got.String())
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Len(t, transport.calls, 64)
}

func TestMethods(t *testing.T) {
	contract := newVesting(t, &mockTransport{}, nil)

	var names []string
	for _, method := range contract.Methods() {
		names = append(names, method.Name)
	}
	assert.Equal(t, []string{"balanceOf", "can_disable", "claim", "getConfig", "ping", "setConfig", "token", "total_claimed", "vestedSupply"}, names)
	assert.Equal(t, vestingAddr, contract.Address())
	assert.Contains(t, contract.ABI().Methods, "token")
}
