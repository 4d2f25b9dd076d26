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

// RosterUpdate is pushed to reviewer dashboards whenever a provisional
// attendance status changes.
type RosterUpdate struct {
	GroupID   uint      `json:"group_id"`
	StudentID uint      `json:"student_id"`
	FullName  string    `json:"full_name"`
	SubjectID uint      `json:"subject_id"`
	ClassTime time.Time `json:"class_time"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type rosterMessage struct {
	groupID uint
	payload []byte
}

// RosterHub handles websocket clients who watch live attendance per group.
type RosterHub struct {
	register   chan *rosterClient
	unregister chan *rosterClient
	broadcast  chan rosterMessage
	clients    map[*rosterClient]struct{}
}

func NewRosterHub() *RosterHub {
	return &RosterHub{
		register:   make(chan *rosterClient),
		unregister: make(chan *rosterClient),
		broadcast:  make(chan rosterMessage, 256),
		clients:    make(map[*rosterClient]struct{}),
	}
}

func (h *RosterHub) Run() {
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
				if !client.allowAll {
					if _, ok := client.allowedGroups[msg.groupID]; !ok {
						continue
					}
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

// Broadcast pushes an update to every client watching its group.
func (h *RosterHub) Broadcast(update RosterUpdate) {
	if h == nil {
		return
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("ws: failed to marshal roster update: %v", err)
		return
	}
	h.broadcast <- rosterMessage{
		groupID: update.GroupID,
		payload: data,
	}
}

type rosterClient struct {
	hub           *RosterHub
	conn          *websocket.Conn
	send          chan []byte
	allowedGroups map[uint]struct{}
	allowAll      bool
}

func newRosterClient(hub *RosterHub, conn *websocket.Conn, allowed map[uint]struct{}, allowAll bool) *rosterClient {
	return &rosterClient{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, sendBufferSize),
		allowedGroups: allowed,
		allowAll:      allowAll,
	}
}

func (c *rosterClient) readPump() {
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

func (c *rosterClient) writePump() {
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
