package wsutils

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// EventMessage is the wire envelope for every websocket message, in both
// directions. Data carries the JSON-encoded payload as a string.
type EventMessage struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

type ThreadSafeWriter struct {
	*websocket.Conn
	sync.Mutex
}

func (t *ThreadSafeWriter) WriteJSON(val interface{}) error {
	t.Lock()
	defer t.Unlock()

	return t.Conn.WriteJSON(val)
}

// WriteEvent wraps the payload into an EventMessage envelope. A nil payload
// produces an empty data field.
func (t *ThreadSafeWriter) WriteEvent(event string, payload any) error {
	var data string
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		data = string(raw)
	}
	return t.WriteJSON(&EventMessage{Event: event, Data: data})
}

func (t *ThreadSafeWriter) Close() error {
	return t.Conn.Close()
}

func (t *ThreadSafeWriter) ReadJSON(val any) error {
	return t.Conn.ReadJSON(val)
}

func NewThreadSafeWriter(conn *websocket.Conn) *ThreadSafeWriter {
	return &ThreadSafeWriter{
		Conn: conn,
	}
}
