package database

import (
	"asset-scan/internal/models"

	log "github.com/sirupsen/logrus"
)

// CreateAuditLog records one staff action. Without a database it does nothing,
// and a failed insert never fails the action itself.
func CreateAuditLog(userName, entity, entityKey, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserName:  userName,
		Entity:    entity,
		EntityKey: entityKey,
		Action:    action,
		Details:   details,
	}
	if err := DB.Create(&record).Error; err != nil {
		log.WithError(err).Warn("failed to write audit log")
	}
}

// RecentAuditLogs returns the newest entries first.
func RecentAuditLogs(limit int) ([]models.AuditLog, error) {
	if DB == nil {
		return nil, nil
	}
	var logs []models.AuditLog
	err := DB.Order("created_at desc").Limit(limit).Find(&logs).Error
	return logs, err
}
