package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// streamMessage is the envelope for state-stream frames.
type streamMessage struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// Stream message types sent by the daemon.
const (
	streamTypeState = "state"
	streamTypePing  = "ping"
	streamTypePong  = "pong"
)

// StateStream is a live feed of robot state over WebSocket.
type StateStream struct {
	conn *websocket.Conn
}

// Stream opens the robot's state feed. The caller owns the stream and must
// Close it.
func (s *StateClient) Stream(ctx context.Context) (*StateStream, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	header := http.Header{}
	if tok := s.c.Token(); tok != "" {
		header.Set("Authorization", "Bearer "+tok)
	}

	conn, _, err := dialer.DialContext(ctx, s.c.StreamURL+"/api/robot/state/stream", header)
	if err != nil {
		return nil, fmt.Errorf("state stream dial failed: %w", err)
	}
	return &StateStream{conn: conn}, nil
}

// Next blocks until the next state frame arrives. Ping frames are answered
// inline; frames of unknown type are skipped. The context's deadline bounds
// the wait.
func (st *StateStream) Next(ctx context.Context) (RobotState, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := st.conn.SetReadDeadline(deadline); err != nil {
			return RobotState{}, fmt.Errorf("failed to set stream deadline: %w", err)
		}
	}

	for {
		var msg streamMessage
		if err := st.conn.ReadJSON(&msg); err != nil {
			return RobotState{}, fmt.Errorf("state stream read failed: %w", err)
		}

		switch msg.Type {
		case streamTypeState:
			var state RobotState
			if err := json.Unmarshal(msg.Data, &state); err != nil {
				return RobotState{}, fmt.Errorf("failed to parse state frame: %w", err)
			}
			return state, nil
		case streamTypePing:
			pong := streamMessage{Type: streamTypePong, Timestamp: time.Now().UnixMilli()}
			if err := st.conn.WriteJSON(pong); err != nil {
				return RobotState{}, fmt.Errorf("state stream pong failed: %w", err)
			}
		default:
			// Skip unknown frame types so new daemon versions don't break us.
		}
	}
}

// Close shuts down the stream connection.
func (st *StateStream) Close() error {
	return st.conn.Close()
}
