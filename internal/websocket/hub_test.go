// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-hq/inkwell/internal/models"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Serve(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("hub did not stop")
		}
	})
	return hub, cancel
}

func newTestClient(hub *Hub) *Client {
	return &Client{hub: hub, send: make(chan []byte, 8)}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub, _ := startHub(t)

	client := newTestClient(hub)
	hub.Register <- client

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.Unregister <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)

	// The hub closed the client's send channel on unregister.
	_, open := <-client.send
	assert.False(t, open)
}

func TestHubBroadcastNewPost(t *testing.T) {
	hub, _ := startHub(t)

	client := newTestClient(hub)
	hub.Register <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	post := &models.Post{Text: "breaking news", Author: "leo"}
	hub.BroadcastNewPost(post)

	select {
	case data := <-client.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, MessageTypePost, msg.Type)
	case <-time.After(time.Second):
		t.Fatal("broadcast never arrived")
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	hub, _ := startHub(t)

	slow := &Client{hub: hub, send: make(chan []byte)} // unbuffered, never read
	hub.Register <- slow
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.BroadcastNewComment(&models.Comment{Text: "hi"})

	// The saturated client is disconnected rather than blocking the hub.
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}
