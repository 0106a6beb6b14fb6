package repository

import (
	"github.com/yumeno/gachapon-api/pkg/database/models"
	"github.com/yumeno/gachapon-api/pkg/logging"
	"gorm.io/gorm"
)

// ErrorLogRepository persists warning and error logs for the logging package
type ErrorLogRepository struct {
	db *gorm.DB
}

var _ logging.LogRepository = (*ErrorLogRepository)(nil)

func NewErrorLogRepository(db *gorm.DB) *ErrorLogRepository {
	return &ErrorLogRepository{db: db}
}

// SaveLog implements logging.LogRepository
func (r *ErrorLogRepository) SaveLog(entry logging.LogEntry) error {
	return r.db.Create(&models.ErrorLog{
		Component: entry.Component,
		Level:     entry.Level,
		Message:   entry.Message,
		Error:     entry.Error,
		Fields:    models.JSONMap(entry.Fields),
		UserID:    entry.UserID,
		GachaID:   entry.GachaID,
		Route:     entry.Route,
	}).Error
}
