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
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
)

const (
	defaultBodyLimit = 5 * 1024 * 1024    // 响应体大小上限
	contentType      = "application/json" // JSON-RPC 请求的标准内容类型
)

// httpConn posts every request separately. It holds no connection state
// beyond what http.Client pools internally.
type httpConn struct {
	client  *http.Client // HTTP 客户端实例，用于发送请求
	url     string       // 目标服务器的 URL（如 "http://localhost:8545"）
	mu      sync.Mutex   // protects headers 保护 headers 的互斥锁
	headers http.Header  // HTTP 请求头部
	auth    HTTPAuth     // HTTP 认证信息
}

func newHTTPConn(endpoint string, cfg *clientConfig) *httpConn {
	headers := make(http.Header, 2+len(cfg.httpHeaders))
	headers.Set("accept", contentType)
	headers.Set("content-type", contentType)
	for key, values := range cfg.httpHeaders {
		headers[key] = values
	}

	client := cfg.httpClient
	if client == nil {
		client = new(http.Client)
	}
	return &httpConn{
		client:  client,
		headers: headers,
		url:     endpoint,
		auth:    cfg.httpAuth,
	}
}

func (hc *httpConn) close() {
	hc.client.CloseIdleConnections()
}

func (hc *httpConn) roundTrip(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	respBody, err := hc.doRequest(ctx, msg)
	if err != nil {
		return nil, err
	}
	defer respBody.Close()

	var resp jsonrpcMessage
	if err := json.NewDecoder(io.LimitReader(respBody, defaultBodyLimit)).Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (hc *httpConn) doRequest(ctx context.Context, msg interface{}) (io.ReadCloser, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hc.url, io.NopCloser(bytes.NewReader(body)))
	if err != nil {
		return nil, err
	}
	req.ContentLength = int64(len(body))
	req.GetBody = func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(body)), nil }

	// set headers
	hc.mu.Lock()
	req.Header = hc.headers.Clone()
	hc.mu.Unlock()
	setHeaders(req.Header, headersFromContext(ctx))

	if hc.auth != nil {
		if err := hc.auth(req.Header); err != nil {
			return nil, err
		}
	}

	// do request
	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 { // 状态码不在 2xx 范围内时构造 HTTPError 返回
		var buf bytes.Buffer
		var body []byte
		if _, err := buf.ReadFrom(io.LimitReader(resp.Body, defaultBodyLimit)); err == nil {
			body = buf.Bytes()
		}
		resp.Body.Close()
		return nil, HTTPError{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}
	return resp.Body, nil
}
