package service

import (
	"context"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/repository"
)

type notificationService struct {
	store repository.TxStore
}

func NewNotificationService(store repository.TxStore) NotificationService {
	return &notificationService{store: store}
}

func (s *notificationService) Notify(ctx context.Context, userID int32, title, message string, severity domain.NotificationSeverity, actionURL string) error {
	n := &domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Severity:  severity,
		ActionURL: actionURL,
	}
	return s.store.Notifications().Create(ctx, n)
}

func (s *notificationService) GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.store.Notifications().List(ctx, userID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID int32) error {
	return s.store.Notifications().MarkAsRead(ctx, notificationID, userID)
}
