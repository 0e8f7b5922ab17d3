package client

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	ws "github.com/coder/websocket"
)

const eventBufferSize = 32

// Subscription is a managed connection to the server's change feed. Its
// lifetime is explicit: Start dials and begins delivering events, Stop
// tears the connection down and closes the event channel. There is no
// automatic reconnect; a broken connection closes the channel and the
// terminal error is available from Err.
type Subscription struct {
	url    string
	token  string
	events chan Event

	mu      sync.Mutex
	cancel  context.CancelFunc
	conn    *ws.Conn
	err     error
	started bool
}

// Subscribe creates a Subscription for the client's change feed. The
// returned subscription is inert until Start is called.
func (c *Client) Subscribe() *Subscription {
	url := c.baseURL + "/api/ws"
	if strings.HasPrefix(url, "http") {
		url = "ws" + strings.TrimPrefix(url, "http")
	}
	return &Subscription{
		url:    url,
		token:  c.token,
		events: make(chan Event, eventBufferSize),
	}
}

// Events returns the channel change events are delivered on. It is closed
// when the subscription stops, for any reason.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Start dials the change feed and begins delivering events. It returns
// once the connection is established.
func (s *Subscription) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	url := s.url
	if s.token != "" {
		url += "?token=" + s.token
	}

	conn, _, err := ws.Dial(ctx, url, nil)
	if err != nil {
		return &Error{Code: CodeNetwork, Message: err.Error()}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.conn = conn
	s.cancel = cancel
	s.started = true

	go s.readLoop(runCtx, conn)
	return nil
}

func (s *Subscription) readLoop(ctx context.Context, conn *ws.Conn) {
	defer close(s.events)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			s.mu.Lock()
			if s.started {
				s.err = err
			}
			s.mu.Unlock()
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			// Skip frames that are not change events
			continue
		}

		select {
		case s.events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// Stop tears down the connection. The event channel is closed once the
// read loop exits. Stop is safe to call more than once.
func (s *Subscription) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.conn.Close(ws.StatusNormalClosure, "client stopped")
	s.cancel()
}

// Err returns the terminal error of a subscription that ended without
// Stop being called, or nil.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
