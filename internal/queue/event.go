// Package queue defines message payloads exchanged over the message broker
// and the background consumer that persists them.
package queue

// LoginAuditQueue is the durable queue carrying login attempt events.
const LoginAuditQueue = "pbx.login.audit"

// LoginEvent is published on every login attempt, from the bot or the HTTP
// API. It carries enough for an audit trail without another database query.
// The password is never part of the event.
type LoginEvent struct {
	Source    string `json:"source"` // "bot" or "api"
	ChatID    int64  `json:"chat_id,omitempty"`
	Username  string `json:"username"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RemoteIP  string `json:"remote_ip,omitempty"`
	Timestamp string `json:"timestamp"` // RFC 3339
}
