package services

import (
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"gorm.io/gorm"
)

var BannedWords = []string{
	"fuck", "fucking", "shit", "bullshit", "asshole", "bastard", "bitch",
	"scam", "scammer", "phishing", "malware", "spam",
}

// ModerationService screens user-supplied text on listings and
// transaction requests, and owns the append-only property report queue.
type ModerationService struct {
	db                *gorm.DB
	bannedWordRegexps []*regexp.Regexp
	urlPattern        *regexp.Regexp
	emailPattern      *regexp.Regexp
	phonePattern      *regexp.Regexp
	mu                sync.RWMutex
}

func NewModerationService(db *gorm.DB) *ModerationService {
	s := &ModerationService{db: db}
	s.compilePatterns()
	return s
}

func (s *ModerationService) compilePatterns() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bannedWordRegexps = make([]*regexp.Regexp, 0, len(BannedWords))
	for _, word := range BannedWords {
		pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		re, err := regexp.Compile(pattern)
		if err == nil {
			s.bannedWordRegexps = append(s.bannedWordRegexps, re)
		}
	}

	s.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	s.emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	s.phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`)
}

// FilterContent returns whether the text is acceptable and, when it is
// not, a stable rejection reason code.
func (s *ModerationService) FilterContent(text string) (bool, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if text == "" {
		return true, ""
	}
	for _, re := range s.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if s.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if s.emailPattern.MatchString(text) || s.phonePattern.MatchString(text) {
		return false, "contact_info_not_allowed"
	}
	return true, ""
}

// CheckText wraps FilterContent into the error taxonomy for callers
// validating workflow input.
func (s *ModerationService) CheckText(field, text string) error {
	if ok, reason := s.FilterContent(text); !ok {
		return apperr.Validation("%s rejected by content filter: %s", field, reason)
	}
	return nil
}

// ReportProperty appends a complaint against a listing.
func (s *ModerationService) ReportProperty(reporterID identity.AccountID, propertyID uuid.UUID, reason string) (*models.PropertyReport, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validation("report reason is required")
	}

	report := models.PropertyReport{
		ID:         uuid.New(),
		PropertyID: propertyID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     "pending",
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *ModerationService) ListReports(status string, limit, offset int) ([]models.PropertyReport, int64, error) {
	var reports []models.PropertyReport
	var total int64

	query := s.db.Model(&models.PropertyReport{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (s *ModerationService) ActionReport(reportID uuid.UUID, status, adminNote string) error {
	validStatuses := map[string]bool{"reviewed": true, "dismissed": true}
	if !validStatuses[status] {
		return apperr.Validation("invalid status: must be reviewed or dismissed")
	}

	result := s.db.Model(&models.PropertyReport{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":     status,
			"admin_note": adminNote,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("report not found")
	}
	return nil
}
