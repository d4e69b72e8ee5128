package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/models"
)

type CreateTransactionRequest struct {
	PropertyID          uuid.UUID  `json:"propertyId"`
	RequestType         string     `json:"requestType"`
	Message             string     `json:"message"`
	OfferAmount         *float64   `json:"offerAmount,omitempty"`
	PreferredMoveInDate *time.Time `json:"preferredMoveInDate,omitempty"`
}

type RespondTransactionRequest struct {
	Status          string `json:"status"`
	ResponseMessage string `json:"responseMessage,omitempty"`
}

type TransactionListResponse struct {
	Requests []models.PropertyRequest `json:"requests"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	Limit    int                      `json:"limit"`
}

type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
}
