// Inkwell - Server-Rendered Blog and Social Feed Platform
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package api

import (
	"net/http"
	"time"

	"github.com/inkwell-hq/inkwell/internal/websocket"
)

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Database      string `json:"database"`
	Clients       int    `json:"websocket_clients"`
}

// HandleHealth reports liveness and a database round-trip check. Degraded
// database connectivity is a 503 so load balancers stop routing here.
// GET /api/v1/health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := &HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Database:      "ok",
		Clients:       h.hub.ClientCount(),
	}

	if err := h.db.Ping(r.Context()); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeDatabaseError, "Database unreachable", status)
		return
	}

	rw.Success(status)
}

// HandleWS upgrades the connection and streams live feed events.
// GET /api/v1/ws
func (h *Handler) HandleWS(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWS(h.hub, w, r)
}
