package memory

import (
	"context"

	"github.com/wearwow/storefront/internal/domain/notification"
)

var _ notification.Repository = (*NotificationRepository)(nil)

// NotificationRepository serves the fixed notification feed.
type NotificationRepository struct {
	notifications []notification.Notification
}

// NewNotificationRepository builds a repository over the fixture feed.
func NewNotificationRepository(ns []notification.Notification) *NotificationRepository {
	return &NotificationRepository{notifications: ns}
}

// List returns all notifications, newest first as the fixture orders them.
func (r *NotificationRepository) List(_ context.Context) ([]notification.Notification, error) {
	out := make([]notification.Notification, len(r.notifications))
	copy(out, r.notifications)
	return out, nil
}
