package models

import "time"

// Audit actions recorded by the handlers.
const (
	AuditActionLogin       = "auth.login"
	AuditActionLoginFailed = "auth.login_failed"
	AuditActionLogout      = "auth.logout"
	AuditActionSignup      = "auth.signup"
	AuditActionUpload      = "catalog.upload"
)

// AuditLog represents a single audit trail entry.
type AuditLog struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	UserID    int64     `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
}
