package api

import (
	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the office registration
// endpoint. Registration creates the tenant and its first admin user in
// one step.
type RegisterRequest struct {
	OfficeName  string `json:"office_name"   validate:"required,min=2,max=200"`
	OfficeTaxID string `json:"office_tax_id" validate:"required,min=8,max=20"`
	Email       string `json:"email"         validate:"required,email"`
	Password    string `json:"password"      validate:"required,min=12,max=72"`
	Name        string `json:"name"          validate:"required,min=2,max=200"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// TenantID is the accounting office the user belongs to
	TenantID uuid.UUID `json:"tenant_id"`

	// Token is the JWT token used for API authorization
	Token string `json:"token"`
}

// CreateClientRequest defines the payload for creating a client.
type CreateClientRequest struct {
	Type      string  `json:"type"       validate:"required,oneof=company individual"`
	TaxID     string  `json:"tax_id"     validate:"required,min=8,max=20"`
	LegalName string  `json:"legal_name" validate:"required,min=2,max=200"`
	TradeName string  `json:"trade_name" validate:"max=200"`
	TaxRegime *string `json:"tax_regime" validate:"omitempty,oneof=simples_nacional lucro_presumido lucro_real"`
	Email     string  `json:"email"      validate:"omitempty,email"`
	Phone     string  `json:"phone"      validate:"max=30"`
}

// CreateTemplateRequest defines the payload for creating a task template.
type CreateTemplateRequest struct {
	Name                string   `json:"name"                   validate:"required,min=2,max=200"`
	Description         string   `json:"description"            validate:"max=2000"`
	Recurrence          string   `json:"recurrence"             validate:"required,oneof=monthly quarterly yearly"`
	DueDay              int      `json:"due_day"                validate:"required,min=1,max=31"`
	AdjustToBusinessDay bool     `json:"adjust_to_business_day"`
	AppliesToRegimes    []string `json:"applies_to_regimes"     validate:"dive,oneof=simples_nacional lucro_presumido lucro_real"`
}

// UpdateTaskStatusRequest defines the payload for the task status endpoint.
type UpdateTaskStatusRequest struct {
	Status  string `json:"status"  validate:"required,oneof=pending in_progress awaiting_client review completed"`
	Comment string `json:"comment" validate:"max=2000"`
}

// GenerateTasksRequest defines the payload for the task generation endpoint.
type GenerateTasksRequest struct {
	// Competence is the target period in "MM/YYYY" form; the pattern is
	// enforced here at the boundary, stricter than the engine's parser.
	Competence string `json:"competence" validate:"required"`

	// Async runs the generation in the background and returns a job ID
	// instead of an outcome. Intended for tenants with large portfolios.
	Async bool `json:"async"`
}

// TaskResponse wraps a task with derived deadline fields for list views.
type TaskResponse struct {
	*domain.Task

	// DaysUntilDue is negative when the due date has passed.
	DaysUntilDue int `json:"days_until_due"`

	// Overdue is true for uncompleted tasks past their due date.
	Overdue bool `json:"overdue"`
}

// GenerationAcceptedResponse defines the response for asynchronous
// generation requests.
type GenerationAcceptedResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}
