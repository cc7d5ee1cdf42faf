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

/*
Package rpc implements the client side of JSON-RPC 2.0 over HTTP and WebSocket.

A Client is created with Dial or DialOptions. The URL scheme selects the
transport: "http" and "https" post every request separately, "ws" and "wss"
keep one connection open and match responses to requests by id.

	client, err := rpc.DialOptions(ctx, "https://node.example.org", rpc.WithHeader("x-api-key", key))
	if err != nil {
		return err
	}
	defer client.Close()

	var block string
	err = client.CallContext(ctx, &block, "eth_blockNumber")

Errors returned by the remote end implement the Error interface and, when the
server attaches data to them, DataError. Non-2xx HTTP responses are reported as
HTTPError.

rpc 包实现 JSON-RPC 2.0 客户端，支持 HTTP 与 WebSocket 两种传输方式。
*/
package rpc
