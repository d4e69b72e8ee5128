package dto

import "github.com/propspace/propspace-backend/internal/models"

type ReportPropertyRequest struct {
	Reason string `json:"reason"`
}

type ActionReportRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note"`
}

type ReportListResponse struct {
	Reports []models.PropertyReport `json:"reports"`
	Total   int64                   `json:"total"`
	Limit   int                     `json:"limit"`
	Offset  int                     `json:"offset"`
}
