// Package notification defines the read-only notification feed.
package notification

import "context"

// Notification is one entry in the user's notification feed. Age is the
// human-readable relative time the fixture carries ("2 hours ago").
type Notification struct {
	ID      string
	Title   string
	Message string
	Age     string
	Read    bool
}

// Repository defines read operations over the notification feed.
type Repository interface {
	List(ctx context.Context) ([]Notification, error)
}

// UnreadCount returns how many notifications are unread.
func UnreadCount(ns []Notification) int {
	n := 0
	for _, v := range ns {
		if !v.Read {
			n++
		}
	}
	return n
}
