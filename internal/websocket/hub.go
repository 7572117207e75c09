// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package websocket pushes live feed events (new posts, new comments) to
// connected clients.
package websocket

import (
	"context"
	"sync"

	"github.com/goccy/go-json"

	"github.com/inkwell-hq/inkwell/internal/logging"
	"github.com/inkwell-hq/inkwell/internal/metrics"
	"github.com/inkwell-hq/inkwell/internal/models"
)

// Message types pushed to clients.
const (
	MessageTypePost    = "post"
	MessageTypeComment = "comment"
	MessageTypePing    = "ping"
	MessageTypePong    = "pong"
)

// Message is one event on the wire.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a hub. Run Serve under a supervisor to start it.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Serve runs the hub event loop until ctx is canceled, then closes all
// clients. Satisfies suture.Service so the hub can be restarted by the
// supervisor without orphaning connections.
func (h *Hub) Serve(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			logging.Info().Str("component", "websocket-hub").Msg("hub stopped")
			return ctx.Err()

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			metrics.WebSocketClients.Set(float64(count))
			logging.Info().Int("total_clients", count).Msg("websocket client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			metrics.WebSocketClients.Set(float64(count))
			logging.Info().Int("total_clients", count).Msg("websocket client disconnected")

		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// String identifies the service in supervisor logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

// BroadcastNewPost pushes a freshly created post to all clients.
func (h *Hub) BroadcastNewPost(post *models.Post) {
	h.enqueue(Message{Type: MessageTypePost, Data: post})
}

// BroadcastNewComment pushes a freshly created comment to all clients.
func (h *Hub) BroadcastNewComment(comment *models.Comment) {
	h.enqueue(Message{Type: MessageTypeComment, Data: comment})
}

// enqueue queues a message for broadcast, dropping it if the hub is
// saturated. Live updates are best-effort; clients reconcile via the feed
// endpoints.
func (h *Hub) enqueue(message Message) {
	select {
	case h.broadcast <- message:
	default:
		logging.Warn().Str("type", message.Type).Msg("websocket broadcast queue full, dropping message")
	}
}

// broadcastToClients serializes once and fans out to every client. Clients
// with a full send buffer are disconnected rather than allowed to block the
// hub.
func (h *Hub) broadcastToClients(message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal websocket message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// closeAllClients closes every client's send channel.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	metrics.WebSocketClients.Set(0)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
