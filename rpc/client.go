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

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"sync/atomic"

	"github.com/sunyihoo/contractcall/log"
)

// conn is a connection able to carry one request and hand back its response.
// Implementations must be safe for concurrent use.
type conn interface {
	roundTrip(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error)
	close()
}

// Client represents a connection to an RPC server.
// Client 表示到 RPC 服务器的连接，可被并发使用。
type Client struct {
	conn conn

	idCounter atomic.Uint32
	closed    atomic.Bool
}

// Dial creates a new client for the given URL.
//
// The currently supported URL schemes are "http", "https", "ws" and "wss".
//
// If you want to further configure the transport, use DialOptions instead of this
// function.
func Dial(rawurl string) (*Client, error) {
	return DialOptions(context.Background(), rawurl)
}

// DialContext creates a new RPC client, just like Dial.
//
// The context is used to cancel or time out the initial connection establishment. It does
// not affect subsequent interactions with the client.
func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	return DialOptions(ctx, rawurl)
}

// DialOptions creates a new RPC client for the given URL. You can supply any of the
// pre-defined client options to configure the underlying transport.
//
// The context is used to cancel or time out the initial connection establishment. It does
// not affect subsequent interactions with the client.
//
// DialOptions 根据 URL 协议选择传输方式创建客户端，ctx 仅作用于初始连接。
func DialOptions(ctx context.Context, rawurl string, options ...ClientOption) (*Client, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}

	cfg := new(clientConfig)
	for _, opt := range options {
		opt.applyOption(cfg)
	}

	c := new(Client)
	switch u.Scheme {
	case "http", "https":
		c.conn = newHTTPConn(rawurl, cfg)
	case "ws", "wss":
		wc, err := dialWebsocket(ctx, rawurl, cfg)
		if err != nil {
			return nil, err
		}
		c.conn = wc
	default:
		return nil, fmt.Errorf("no known transport for URL scheme %q", u.Scheme)
	}
	log.Debug("Dialed JSON-RPC endpoint", "scheme", u.Scheme, "host", u.Host)
	return c, nil
}

// Close closes the client, aborting any in-flight requests.
func (c *Client) Close() {
	if c.closed.Swap(true) {
		return
	}
	c.conn.close()
}

// Call performs a JSON-RPC call with the given arguments and unmarshals into
// result if no error occurred.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
func (c *Client) Call(result interface{}, method string, args ...interface{}) error {
	ctx := context.Background()
	return c.CallContext(ctx, result, method, args...)
}

// CallContext performs a JSON-RPC call with the given arguments. If the context is
// canceled before the call has successfully returned, CallContext returns immediately.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
//
// CallContext 执行一次 JSON-RPC 调用；result 必须是指针或 nil。
func (c *Client) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if result != nil && reflect.TypeOf(result).Kind() != reflect.Ptr {
		return fmt.Errorf("call result parameter must be pointer or nil interface: %v", result)
	}
	if c.closed.Load() {
		return ErrClientQuit
	}
	msg, err := c.newMessage(method, args...)
	if err != nil {
		return err
	}
	resp, err := c.conn.roundTrip(ctx, msg)
	if err != nil {
		return err
	}
	return resp.result(result)
}

func (c *Client) nextID() json.RawMessage {
	id := c.idCounter.Add(1)
	return strconv.AppendUint(nil, uint64(id), 10)
}

func (c *Client) newMessage(method string, paramsIn ...interface{}) (*jsonrpcMessage, error) {
	msg := &jsonrpcMessage{Version: vsn, ID: c.nextID(), Method: method}
	if paramsIn != nil { // prevent sending "params":null
		var err error
		if msg.Params, err = json.Marshal(paramsIn); err != nil {
			return nil, err
		}
	}
	return msg, nil
}
