package models

import (
	"encoding/json"
	"time"
)

// AuditLog records a mutating request after it completed successfully.
type AuditLog struct {
	ID        string          `db:"id" json:"id"`
	UserID    *int            `db:"user_id" json:"user_id,omitempty"`
	Action    string          `db:"action" json:"action"`
	Resource  string          `db:"resource" json:"resource"`
	Detail    json.RawMessage `db:"detail" json:"detail,omitempty"`
	IPAddress string          `db:"ip_address" json:"ip_address"`
	UserAgent string          `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
