package client

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Registry owns the push-channel connections, keyed by task ID. At most
// one connection exists per task; views attach to an existing connection
// by reference count instead of dialing again.
type Registry struct {
	dialer *websocket.Dialer
	logf   func(format string, args ...any)

	mu    sync.Mutex
	conns map[string]*channelConn
}

type channelConn struct {
	ws   *websocket.Conn
	refs int
}

// NewRegistry constructs a Registry. A nil dialer uses the default.
func NewRegistry(dialer *websocket.Dialer) *Registry {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	return &Registry{
		dialer: dialer,
		logf:   log.Printf,
		conns:  make(map[string]*channelConn),
	}
}

// Count returns the number of open connections.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Attach ensures a connection exists for the task and delivers its
// events through the given callback. If a connection is already open the
// attach is idempotent: the reference count is bumped and no second
// channel is dialed. Malformed frames are logged and dropped.
func (r *Registry) Attach(taskID, channelURL string, deliver func(Event)) error {
	r.mu.Lock()
	if cc, ok := r.conns[taskID]; ok {
		cc.refs++
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()

	ws, resp, err := r.dialer.Dial(channelURL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.conns[taskID]; ok {
		// Lost the dial race; keep the first connection.
		r.conns[taskID].refs++
		r.mu.Unlock()
		ws.Close()
		return nil
	}
	r.conns[taskID] = &channelConn{ws: ws, refs: 1}
	r.mu.Unlock()

	deliver(ChannelOpened{TaskID: taskID})
	go r.readLoop(taskID, ws, deliver)
	return nil
}

// Ref bumps the reference count of an open connection. It is a no-op for
// tasks without one.
func (r *Registry) Ref(taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cc, ok := r.conns[taskID]; ok {
		cc.refs++
	}
}

// Unref releases one view reference. The connection stays open even at
// zero references so background tracking continues.
func (r *Registry) Unref(taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cc, ok := r.conns[taskID]; ok && cc.refs > 0 {
		cc.refs--
	}
}

// Close tears down the connection for the task, best-effort. No
// acknowledgement is awaited.
func (r *Registry) Close(taskID string) {
	r.mu.Lock()
	cc, ok := r.conns[taskID]
	if ok {
		delete(r.conns, taskID)
	}
	r.mu.Unlock()
	if !ok {
		return
	}
	deadline := time.Now().Add(time.Second)
	_ = cc.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = cc.ws.Close()
}

func (r *Registry) readLoop(taskID string, ws *websocket.Conn, deliver func(Event)) {
	for {
		_, payload, err := ws.ReadMessage()
		if err != nil {
			r.drop(taskID)
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				deliver(ChannelClosed{TaskID: taskID})
			} else {
				deliver(ChannelError{TaskID: taskID, Err: err})
			}
			return
		}

		ev, err := ParseFrame(payload)
		if err != nil {
			if errors.Is(err, ErrMalformedFrame) {
				r.logf("client: dropping malformed frame for task %s", taskID)
				continue
			}
			continue
		}
		deliver(ev)
	}
}

// drop removes the connection entry without closing it; the read loop
// calls it once the transport has already failed or closed.
func (r *Registry) drop(taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, taskID)
}
