package models

import (
	"encoding/json"
	"time"
)

// NotificationType tags stored notifications.
type NotificationType string

const (
	NotificationGeneral      NotificationType = "general"
	NotificationHeatDetected NotificationType = "heat_detected"
	NotificationReminder     NotificationType = "reminder"
)

// Notification is a stored message for a user, also published on the
// redis channel so connected clients can refetch.
type Notification struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"user_id"`
	Title     string           `db:"title" json:"title"`
	Message   string           `db:"message" json:"message"`
	Type      NotificationType `db:"type" json:"type"`
	Data      json.RawMessage  `db:"data" json:"data,omitempty"`
	IsRead    bool             `db:"is_read" json:"is_read"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// PushSubscription is a registered client endpoint for a user.
type PushSubscription struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Endpoint  string    `db:"endpoint" json:"endpoint"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
