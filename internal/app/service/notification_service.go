package service

import (
	"errors"

	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/model"
	"github.com/Ritu-r8j/DINEEZY-sub001/internal/app/repository"
	"github.com/Ritu-r8j/DINEEZY-sub001/pkg/logger"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Pusher delivers real-time events to connected clients. The websocket hub
// implements it; a nil pusher means persistence only.
type Pusher interface {
	Push(userID uint, event string, payload interface{})
}

type NotificationService interface {
	Notify(userID uint, notifType model.NotificationType, title, message string)
	List(userID uint, unreadOnly bool) ([]model.Notification, error)
	MarkRead(userID, notificationID uint) error
	MarkAllRead(userID uint) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	pusher           Pusher
}

func NewNotificationService(notificationRepo repository.NotificationRepository, pusher Pusher) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		pusher:           pusher,
	}
}

// Notify persists the notification and pushes it to connected clients.
// Failures are logged, never surfaced; notifications must not break the
// operation that triggered them.
func (s *notificationService) Notify(userID uint, notifType model.NotificationType, title, message string) {
	notification := &model.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("Failed to persist notification", err, map[string]interface{}{
			"user_id": userID,
			"type":    notifType,
		})
		return
	}

	if s.pusher != nil {
		s.pusher.Push(userID, "notification", notification)
	}
}

func (s *notificationService) List(userID uint, unreadOnly bool) ([]model.Notification, error) {
	return s.notificationRepo.FindByUserID(userID, unreadOnly)
}

func (s *notificationService) MarkRead(userID, notificationID uint) error {
	return s.notificationRepo.MarkRead(notificationID, userID)
}

func (s *notificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}
