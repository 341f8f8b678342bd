package dreocloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dreoctl/dreocloud/internal/logging"
)

const (
	// wsHandshakeTimeout bounds the websocket dial and upgrade.
	wsHandshakeTimeout = 10 * time.Second

	// wsCloseGrace is how long Disconnect waits for the read loop to drain
	// after sending the close frame.
	wsCloseGrace = 2 * time.Second
)

// WebSocketClient receives server-pushed device events from the Dreo cloud.
// The region is derived from the token suffix exactly as for HTTP calls,
// and login happens via query parameters carrying the clean token and a
// timestamp.
//
// Callbacks must be assigned before Connect and run on the client's read
// goroutine; a panicking or blocking callback stalls event delivery.
type WebSocketClient struct {
	// OnOpen is called once the connection is established.
	OnOpen func()
	// OnMessage is called for each pushed event payload.
	OnMessage func(message []byte)
	// OnError is called for read failures other than a normal close.
	OnError func(err error)
	// OnClose is called when the connection ends, with the close code and
	// reason if the server sent one.
	OnClose func(code int, reason string)

	rawToken string
	dialer   *websocket.Dialer

	// endpointOverride lets tests dial a local server instead of the
	// regional table entry.
	endpointOverride *Endpoint

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	done      chan struct{}
}

// NewWebSocketClient creates a push-event client for the given access
// token. The token may carry a region suffix; it is resolved and stripped
// at Connect time.
func NewWebSocketClient(rawToken string) *WebSocketClient {
	return &WebSocketClient{
		rawToken: rawToken,
		dialer:   &websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout},
	}
}

// Connect resolves the region, dials the regional websocket endpoint, and
// starts the background read loop. Connect fails with the same token and
// region errors as the HTTP pipeline, or a TransportError if the dial
// fails.
func (c *WebSocketClient) Connect(ctx context.Context) error {
	region, cleanToken, err := ParseToken(c.rawToken)
	if err != nil {
		return err
	}
	endpoint, err := ResolveEndpoint(region)
	if err != nil {
		return err
	}
	if c.endpointOverride != nil {
		endpoint = *c.endpointOverride
	}

	loginTarget := loginURL(endpoint, cleanToken, time.Now().UnixMilli())

	logging.Debug("connecting websocket",
		zap.Stringer("region", region),
		zap.String("endpoint", endpoint.WebSocketURL),
		zap.String("token", logging.RedactToken(cleanToken)),
	)

	header := http.Header{}
	header.Set("User-Agent", UserAgent)

	conn, resp, err := c.dialer.DialContext(ctx, loginTarget, header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return NewAuthRejectedError(resp.StatusCode)
		}
		return NewTransportError("websocket dial failed", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.done = make(chan struct{})
	c.mu.Unlock()

	if c.OnOpen != nil {
		c.OnOpen()
	}

	go c.readLoop(conn)
	return nil
}

// Disconnect sends a close frame, closes the connection, and waits briefly
// for the read loop to finish.
func (c *WebSocketClient) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	done := c.done
	c.conn = nil
	c.connected = false
	c.mu.Unlock()

	if conn == nil {
		return
	}

	deadline := time.Now().Add(wsCloseGrace)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = conn.Close()

	if done != nil {
		select {
		case <-done:
		case <-time.After(wsCloseGrace):
		}
	}
}

// Connected reports whether the client currently holds an open connection.
func (c *WebSocketClient) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *WebSocketClient) readLoop(conn *websocket.Conn) {
	defer func() {
		c.mu.Lock()
		c.connected = false
		done := c.done
		c.done = nil
		c.mu.Unlock()
		if done != nil {
			close(done)
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			code, reason := websocket.CloseNormalClosure, ""
			var closeErr *websocket.CloseError
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Debug("websocket read error", zap.Error(err))
				if c.OnError != nil {
					c.OnError(err)
				}
			}
			if ok := asCloseError(err, &closeErr); ok {
				code, reason = closeErr.Code, closeErr.Text
			}
			if c.OnClose != nil {
				c.OnClose(code, reason)
			}
			return
		}

		if c.OnMessage != nil {
			c.OnMessage(message)
		}
	}
}

func asCloseError(err error, target **websocket.CloseError) bool {
	if ce, ok := err.(*websocket.CloseError); ok {
		*target = ce
		return true
	}
	return false
}

// loginURL builds the websocket login URL. Only the clean token appears in
// the query string.
func loginURL(endpoint Endpoint, cleanToken string, timestamp int64) string {
	query := url.Values{}
	query.Set("accessToken", cleanToken)
	query.Set("timestamp", fmt.Sprintf("%d", timestamp))
	return endpoint.WebSocketURL + "/websocket?" + query.Encode()
}
