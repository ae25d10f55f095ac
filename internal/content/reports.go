package content

import (
	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/models"
)

// CreateReport files a moderation report against a content item and
// records REPORT_CREATE for the reporter.
func (s *Service) CreateReport(userID int, kind models.ContentType, contentID int, reason string) (*models.Report, error) {
	if !kind.Valid() {
		return nil, apperror.BadRequest("report.invalid-content-type")
	}
	item, err := s.loadInfo(s.db, kind, contentID)
	if err != nil {
		return nil, err
	}

	r := &models.Report{
		ReportedByID: userID,
		ContentType:  kind,
		ContentID:    contentID,
		Reason:       reason,
	}
	if err := s.db.Create(r).Error; err != nil {
		return nil, err
	}

	s.recordHistory(userID, models.HistoryReportCreate, item.Title, item.QuestionID)
	return r, nil
}

// ListReports returns all reports newest-first, reporter preloaded. Admin
// surface.
func (s *Service) ListReports() ([]models.Report, error) {
	var reports []models.Report
	err := s.db.Preload("ReportedBy").Order("created_at desc").Find(&reports).Error
	return reports, err
}
