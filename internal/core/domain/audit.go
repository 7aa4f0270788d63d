package domain

import "time"

// Audit event types recorded by the auth flows.
const (
	AuditSignup   = "signup"
	AuditLogin    = "login"
	AuditLogout   = "logout"
	AuditPromote  = "promote"
	AuditDemote   = "demote"
	AuditRejected = "input_rejected"
)

// AuditEvent is an append-only record of a security-relevant action. Events
// are written asynchronously and never block the request that produced them.
type AuditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"event_type"`
	Username  string    `json:"username,omitempty"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
}
