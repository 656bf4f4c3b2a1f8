package database

import (
	"time"

	"catalog-backend/internal/models"
)

// AuditRepo handles audit log database operations
type AuditRepo struct {
	db *DB
}

// NewAuditRepo creates a new audit repository
func NewAuditRepo(db *DB) *AuditRepo {
	return &AuditRepo{db: db}
}

// Create creates a new audit log entry
func (r *AuditRepo) Create(log *models.AuditLog) error {
	var userID interface{}
	if log.UserID != 0 {
		userID = log.UserID
	}

	result, err := r.db.sql.Exec(`
		INSERT INTO audit_logs (timestamp, user_id, username, action, target, ip_address)
		VALUES (?, ?, ?, ?, ?, ?)
	`, log.Timestamp, userID, log.Username, log.Action, log.Target, log.IPAddress)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	log.ID = id
	return nil
}

// Log is a convenience method to create an audit log entry with current timestamp
func (r *AuditRepo) Log(userID int64, username, action, target, ipAddress string) error {
	return r.Create(&models.AuditLog{
		Timestamp: time.Now(),
		UserID:    userID,
		Username:  username,
		Action:    action,
		Target:    target,
		IPAddress: ipAddress,
	})
}

// ListRecent retrieves the most recent audit log entries, newest first
func (r *AuditRepo) ListRecent(limit int) ([]*models.AuditLog, error) {
	rows, err := r.db.sql.Query(`
		SELECT id, timestamp, COALESCE(user_id, 0), COALESCE(username, ''), action, COALESCE(target, ''), COALESCE(ip_address, '')
		FROM audit_logs ORDER BY timestamp DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		log := &models.AuditLog{}
		err := rows.Scan(&log.ID, &log.Timestamp, &log.UserID, &log.Username, &log.Action, &log.Target, &log.IPAddress)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
