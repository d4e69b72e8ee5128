package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationService is the sink the workflows emit into. Callers treat
// a failed Notify as log-and-continue; the state transition that already
// committed is the source of truth.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Notify(recipient identity.AccountID, kind, title, message string, data map[string]interface{}) error {
	n := models.Notification{
		ID:      uuid.New(),
		UserID:  recipient,
		Kind:    kind,
		Title:   title,
		Message: message,
	}
	if len(data) > 0 {
		b, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode notification data: %w", err)
		}
		n.Data = datatypes.JSON(b)
	}
	if err := s.db.Create(&n).Error; err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}

// ListForUser returns the recipient's notifications, newest first.
func (s *NotificationService) ListForUser(userID identity.AccountID, limit, offset int) ([]models.Notification, int64, error) {
	var total int64
	if err := s.db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error
	return notifications, total, err
}
