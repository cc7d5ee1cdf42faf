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
	"encoding/base64"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sunyihoo/contractcall/log"
)

const (
	wsReadBuffer       = 1024             // WebSocket 读取缓冲区大小（字节）
	wsWriteBuffer      = 1024             // WebSocket 写入缓冲区大小（字节）
	wsPingInterval     = 30 * time.Second // WebSocket Ping 消息发送间隔
	wsPingWriteTimeout = 5 * time.Second  // WebSocket Ping 消息写入超时时间
	wsPongTimeout      = 30 * time.Second // WebSocket Pong 消息接收超时时间
	wsDefaultReadLimit = 32 * 1024 * 1024 // WebSocket 默认读取限制（字节）
)

var wsBufferPool = new(sync.Pool) // WebSocket 写缓冲区池

// websocketConn multiplexes requests over one websocket connection. A single
// read loop dispatches responses to the waiting callers by id.
//
// websocketConn 在单个 WebSocket 连接上复用请求，读循环按 id 将响应分发给等待的调用方。
type websocketConn struct {
	conn  *websocket.Conn
	encMu sync.Mutex // serialises writes, gorilla allows one concurrent writer

	mu      sync.Mutex
	pending map[string]chan *jsonrpcMessage // in-flight requests by id
	err     error                           // set once the read loop exits

	closeOnce sync.Once
	closing   chan struct{} // closed by close()
	done      chan struct{} // closed when the read loop exits
	wg        sync.WaitGroup
}

func dialWebsocket(ctx context.Context, endpoint string, cfg *clientConfig) (*websocketConn, error) {
	dialer := cfg.wsDialer
	if dialer == nil {
		dialer = &websocket.Dialer{
			ReadBufferSize:  wsReadBuffer,
			WriteBufferSize: wsWriteBuffer,
			WriteBufferPool: wsBufferPool,
			Proxy:           http.ProxyFromEnvironment,
		}
	}
	dialURL, header, err := wsClientHeaders(endpoint, "")
	if err != nil {
		return nil, err
	}
	for key, values := range cfg.httpHeaders {
		header[key] = values
	}
	setHeaders(header, headersFromContext(ctx))
	if cfg.httpAuth != nil {
		if err := cfg.httpAuth(header); err != nil {
			return nil, err
		}
	}
	conn, resp, err := dialer.DialContext(ctx, dialURL, header)
	if err != nil {
		hErr := wsHandshakeError{err: err}
		if resp != nil {
			hErr.status = resp.Status
		}
		return nil, hErr
	}
	messageSizeLimit := int64(wsDefaultReadLimit)
	if cfg.wsMessageSizeLimit != nil && *cfg.wsMessageSizeLimit >= 0 {
		messageSizeLimit = *cfg.wsMessageSizeLimit
	}
	return newWebsocketConn(conn, messageSizeLimit), nil
}

// wsClientHeaders moves basic auth credentials embedded in the endpoint URL
// into an authorization header.
func wsClientHeaders(endpoint, origin string) (string, http.Header, error) {
	endpointURL, err := url.Parse(endpoint)
	if err != nil {
		return endpoint, nil, err
	}
	header := make(http.Header)
	if origin != "" {
		header.Add("origin", origin)
	}
	if endpointURL.User != nil {
		b64auth := base64.StdEncoding.EncodeToString([]byte(endpointURL.User.String()))
		header.Add("authorization", "Basic "+b64auth)
		endpointURL.User = nil
	}
	return endpointURL.String(), header, nil
}

func newWebsocketConn(conn *websocket.Conn, readLimit int64) *websocketConn {
	conn.SetReadLimit(readLimit)
	wc := &websocketConn{
		conn:    conn,
		pending: make(map[string]chan *jsonrpcMessage),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	pongReceived := make(chan struct{}, 1)
	conn.SetPongHandler(func(appData string) error {
		select {
		case pongReceived <- struct{}{}:
		default:
		}
		return nil
	})
	wc.wg.Add(2)
	go wc.readLoop()
	go wc.pingLoop(pongReceived)
	return wc
}

func (wc *websocketConn) roundTrip(ctx context.Context, msg *jsonrpcMessage) (*jsonrpcMessage, error) {
	id := string(msg.ID)
	respCh := make(chan *jsonrpcMessage, 1)

	wc.mu.Lock()
	if wc.err != nil {
		err := wc.err
		wc.mu.Unlock()
		return nil, err
	}
	wc.pending[id] = respCh
	wc.mu.Unlock()

	if err := wc.write(ctx, msg); err != nil {
		wc.forget(id)
		return nil, err
	}
	select {
	case resp := <-respCh:
		return resp, nil
	case <-ctx.Done():
		wc.forget(id)
		return nil, ctx.Err()
	case <-wc.done:
		wc.forget(id)
		// the response may have raced the shutdown
		select {
		case resp := <-respCh:
			return resp, nil
		default:
		}
		wc.mu.Lock()
		defer wc.mu.Unlock()
		return nil, wc.err
	}
}

func (wc *websocketConn) write(ctx context.Context, msg *jsonrpcMessage) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultWriteTimeout)
	}
	wc.encMu.Lock()
	defer wc.encMu.Unlock()

	wc.conn.SetWriteDeadline(deadline)
	return wc.conn.WriteJSON(msg)
}

func (wc *websocketConn) forget(id string) {
	wc.mu.Lock()
	delete(wc.pending, id)
	wc.mu.Unlock()
}

// readLoop delivers responses until the connection fails or is closed.
func (wc *websocketConn) readLoop() {
	defer wc.wg.Done()
	defer close(wc.done)

	for {
		var msg jsonrpcMessage
		if err := wc.conn.ReadJSON(&msg); err != nil {
			select {
			case <-wc.closing:
				err = ErrClientQuit
			default:
				log.Debug("WebSocket read failed", "err", err)
			}
			wc.mu.Lock()
			wc.err = err
			wc.mu.Unlock()
			return
		}
		if !msg.isResponse() {
			if msg.isNotification() {
				log.Trace("Dropping JSON-RPC notification", "method", msg.Method)
			} else {
				log.Debug("Dropping invalid JSON-RPC message", "msg", msg.String())
			}
			continue
		}
		wc.mu.Lock()
		respCh, ok := wc.pending[string(msg.ID)]
		delete(wc.pending, string(msg.ID))
		wc.mu.Unlock()

		if !ok {
			log.Trace("Dropping unsolicited JSON-RPC response", "id", string(msg.ID))
			continue
		}
		respCh <- &msg
	}
}

// pingLoop sends periodic ping frames so that idle connections stay open
// through proxies, and fails the read side if no pong comes back.
func (wc *websocketConn) pingLoop(pongReceived <-chan struct{}) {
	pingTimer := time.NewTimer(wsPingInterval)
	defer wc.wg.Done()
	defer pingTimer.Stop()

	for {
		select {
		case <-wc.done:
			return

		case <-pingTimer.C:
			wc.encMu.Lock()
			wc.conn.SetWriteDeadline(time.Now().Add(wsPingWriteTimeout))
			wc.conn.WriteMessage(websocket.PingMessage, nil)
			wc.conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
			wc.encMu.Unlock()
			pingTimer.Reset(wsPingInterval)

		case <-pongReceived:
			wc.conn.SetReadDeadline(time.Time{})
		}
	}
}

func (wc *websocketConn) close() {
	wc.closeOnce.Do(func() {
		close(wc.closing)
		wc.encMu.Lock()
		wc.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsPingWriteTimeout))
		wc.encMu.Unlock()
		wc.conn.Close()
	})
	wc.wg.Wait()
}
