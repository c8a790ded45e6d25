package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/benoitkugler/svgstyler/editor"
	"github.com/benoitkugler/svgstyler/logging"
	"github.com/benoitkugler/svgstyler/viewport"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming websocket message format.
type wsRequest struct {
	Type         string  `json:"type"` // "wheel", "pointerdown", "pointermove", "pointerup", "resize" or "click"
	DeltaY       float64 `json:"deltaY,omitempty"`
	X            float64 `json:"x,omitempty"`
	Y            float64 `json:"y,omitempty"`
	OverViewport bool    `json:"overViewport,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Index        int     `json:"index,omitempty"`
}

// wsResponse is the outgoing websocket message format.
type wsResponse struct {
	Type  string           `json:"type"` // "state" or "error"
	State *editor.Snapshot `json:"state,omitempty"`
	Error string           `json:"error,omitempty"`
}

// viewportEvent converts req, and reports false for other kinds of message.
func (req wsRequest) viewportEvent() (viewport.Event, bool) {
	pos := viewport.Point{X: req.X, Y: req.Y}
	switch req.Type {
	case "wheel":
		return viewport.Wheel{DeltaY: req.DeltaY}, true
	case "pointerdown":
		return viewport.PointerDown{Pos: pos, OverViewport: req.OverViewport}, true
	case "pointermove":
		return viewport.PointerMove{Pos: pos}, true
	case "pointerup":
		return viewport.PointerUp{}, true
	case "resize":
		return viewport.Resize{Size: viewport.Size{W: req.Width, H: req.Height}}, true
	}
	return nil, false
}

// wsConn serializes the writes on a connection.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) send(resp wsResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(resp); err != nil {
		logging.Logger().Debug("websocket write", slog.Any("error", err))
	}
}

func (c *wsConn) sendError(msg string) {
	c.send(wsResponse{Type: "error", Error: msg})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("websocket upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()
	c := &wsConn{conn: conn}

	updates, cancel, err := s.ed.Subscribe(r.Context())
	if err != nil {
		c.sendError(err.Error())
		return
	}
	defer cancel()

	snap, err := s.ed.Snapshot(r.Context())
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.send(wsResponse{Type: "state", State: &snap})

	go func() {
		for snap := range updates {
			c.send(wsResponse{Type: "state", State: &snap})
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Logger().Warn("websocket read", slog.Any("error", err))
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			c.sendError("invalid message format")
			continue
		}

		var apply func(*editor.Session) error
		if ev, ok := req.viewportEvent(); ok {
			apply = func(sess *editor.Session) error {
				sess.HandleViewport(ev)
				return nil
			}
		} else if req.Type == "click" {
			apply = func(sess *editor.Session) error { return sess.ClickShape(req.Index) }
		} else {
			c.sendError("unknown message type: " + req.Type)
			continue
		}
		if err := s.ed.Do(r.Context(), apply); err != nil {
			c.sendError(err.Error())
		}
	}
}
