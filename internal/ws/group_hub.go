package ws

import (
    "encoding/json"
    "log"
    "time"

    "github.com/gorilla/websocket"
)

const (
    writeWait      = 10 * time.Second
    pongWait       = 60 * time.Second
    pingPeriod     = (pongWait * 9) / 10
    sendBufferSize = 256
)

// GroupEvent is pushed to dashboards watching an assignment's group table.
type GroupEvent struct {
    Type         string    `json:"type"` // group_created, group_deleted, groups_saved
    AssignmentID uint      `json:"assignment_id"`
    GroupID      *int64    `json:"group_id,omitempty"`
    At           time.Time `json:"at"`
}

type groupMessage struct {
    assignmentID uint
    payload      []byte
}

// GroupHub fans group-table change events out to websocket clients. Each
// client watches a single assignment.
type GroupHub struct {
    register   chan *groupClient
    unregister chan *groupClient
    broadcast  chan groupMessage
    clients    map[*groupClient]struct{}
}

func NewGroupHub() *GroupHub {
    return &GroupHub{
        register:   make(chan *groupClient),
        unregister: make(chan *groupClient),
        broadcast:  make(chan groupMessage, 256),
        clients:    make(map[*groupClient]struct{}),
    }
}

func (h *GroupHub) Run() {
    for {
        select {
        case client := <-h.register:
            h.clients[client] = struct{}{}
        case client := <-h.unregister:
            if _, ok := h.clients[client]; ok {
                delete(h.clients, client)
                close(client.send)
                client.conn.Close()
            }
        case msg := <-h.broadcast:
            for client := range h.clients {
                if client.assignmentID != msg.assignmentID {
                    continue
                }
                select {
                case client.send <- msg.payload:
                default:
                    delete(h.clients, client)
                    close(client.send)
                    client.conn.Close()
                }
            }
        }
    }
}

// Broadcast pushes the event to every client watching its assignment.
func (h *GroupHub) Broadcast(event GroupEvent) {
    if h == nil {
        return
    }
    if event.At.IsZero() {
        event.At = time.Now().UTC()
    }
    data, err := json.Marshal(event)
    if err != nil {
        log.Printf("ws: failed to marshal event: %v", err)
        return
    }
    h.broadcast <- groupMessage{
        assignmentID: event.AssignmentID,
        payload:      data,
    }
}

type groupClient struct {
    hub          *GroupHub
    conn         *websocket.Conn
    send         chan []byte
    assignmentID uint
}

func newGroupClient(hub *GroupHub, conn *websocket.Conn, assignmentID uint) *groupClient {
    return &groupClient{
        hub:          hub,
        conn:         conn,
        send:         make(chan []byte, sendBufferSize),
        assignmentID: assignmentID,
    }
}

func (c *groupClient) readPump() {
    defer func() {
        c.hub.unregister <- c
    }()
    c.conn.SetReadLimit(512)
    c.conn.SetReadDeadline(time.Now().Add(pongWait))
    c.conn.SetPongHandler(func(string) error {
        c.conn.SetReadDeadline(time.Now().Add(pongWait))
        return nil
    })
    for {
        if _, _, err := c.conn.ReadMessage(); err != nil {
            break
        }
    }
}

func (c *groupClient) writePump() {
    ticker := time.NewTicker(pingPeriod)
    defer func() {
        ticker.Stop()
        c.conn.Close()
    }()
    for {
        select {
        case msg, ok := <-c.send:
            c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if !ok {
                c.conn.WriteMessage(websocket.CloseMessage, []byte{})
                return
            }
            w, err := c.conn.NextWriter(websocket.TextMessage)
            if err != nil {
                return
            }
            if _, err := w.Write(msg); err != nil {
                return
            }
            if err := w.Close(); err != nil {
                return
            }
        case <-ticker.C:
            c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
                return
            }
        }
    }
}
