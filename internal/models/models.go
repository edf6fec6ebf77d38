// filepath: internal/models/models.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles a user account can hold.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SeedAdminUsername is the bootstrap administrator account. It is created at
// startup when missing and cannot be deleted.
const SeedAdminUsername = "admin"

// User is an account in the users table. The username is the primary key.
type User struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash,omitempty"`
	Role         string `json:"role"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	EmployeeID   string `json:"employee_id"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserFilter narrows a user listing. Filters combine conjunctively.
// NameContains is a case-sensitive substring match; Department and Role are
// exact matches, with "" or "all" meaning no filter.
type UserFilter struct {
	NameContains string
	Department   string
	Role         string
}

// Template is a named set of weighted performance indicators.
type Template struct {
	ID          int64       `json:"template_id"`
	Name        string      `json:"template_name"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
	Indicators  []Indicator `json:"indicators,omitempty"`
}

// TemplateFilter narrows a template listing.
type TemplateFilter struct {
	NameContains string
	CreatedSince time.Time // zero value: no window
}

// Indicator is one weighted criterion within a template. Weight is a
// percentage with at most two decimal places; the weights of a template's
// indicators may never sum above 100.
type Indicator struct {
	ID                 int64           `json:"indicator_id"`
	TemplateID         int64           `json:"template_id"`
	SequenceNumber     int             `json:"sequence_number"`
	Category           string          `json:"category"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	EvaluationCriteria string          `json:"evaluation_criteria"`
	Weight             decimal.Decimal `json:"weight"`
}

// TemplateIndicators bundles a template's indicator list with the current
// weight total, the way the admin view presents it.
type TemplateIndicators struct {
	TemplateID  int64           `json:"template_id"`
	Indicators  []Indicator     `json:"indicators"`
	WeightTotal decimal.Decimal `json:"weight_total"`
}

// Info describes the running service.
type Info struct {
	ServiceName string    `json:"service_name"`
	Version     string    `json:"version"`
	UptimeSince time.Time `json:"uptime_since"`
}
