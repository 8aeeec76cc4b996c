package ws

import (
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

type eventMessage struct {
    exhibitionID string
    payload      []byte
}

// EventHub fans exhibition change events out to websocket clients.
// Each client subscribes to exactly one exhibition's stream.
type EventHub struct {
    register   chan *eventClient
    unregister chan *eventClient
    broadcast  chan eventMessage
    clients    map[*eventClient]struct{}
}

func NewEventHub() *EventHub {
    return &EventHub{
        register:   make(chan *eventClient),
        unregister: make(chan *eventClient),
        broadcast:  make(chan eventMessage, 256),
        clients:    make(map[*eventClient]struct{}),
    }
}

func (h *EventHub) Run() {
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
                if client.exhibitionID != msg.exhibitionID {
                    continue
                }
                select {
                case client.send <- msg.payload:
                default:
                    // slow client; drop it rather than block the hub
                    delete(h.clients, client)
                    close(client.send)
                    client.conn.Close()
                }
            }
        }
    }
}

// Broadcast pushes payload to every client subscribed to the
// exhibition. Safe to call on a nil hub.
func (h *EventHub) Broadcast(exhibitionID string, payload []byte) {
    if h == nil {
        return
    }
    h.broadcast <- eventMessage{exhibitionID: exhibitionID, payload: payload}
}

type eventClient struct {
    hub          *EventHub
    conn         *websocket.Conn
    send         chan []byte
    exhibitionID string
}

func newEventClient(hub *EventHub, conn *websocket.Conn, exhibitionID string) *eventClient {
    return &eventClient{
        hub:          hub,
        conn:         conn,
        send:         make(chan []byte, sendBufferSize),
        exhibitionID: exhibitionID,
    }
}

func (c *eventClient) readPump() {
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

func (c *eventClient) writePump() {
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

// logUpgradeError keeps handler code terse.
func logUpgradeError(err error) {
    log.Printf("ws: upgrade failed: %v", err)
}
