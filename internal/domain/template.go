package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Template-specific validation errors
var (
	// ErrTemplateIDEmpty is returned when a template ID is empty or nil.
	ErrTemplateIDEmpty = errors.New("template ID cannot be empty")

	// ErrTemplateTenantIDEmpty is returned when a template's tenant ID is empty or nil.
	ErrTemplateTenantIDEmpty = errors.New("template tenant ID cannot be empty")

	// ErrTemplateNameEmpty is returned when a template's name is empty.
	ErrTemplateNameEmpty = errors.New("template name cannot be empty")

	// ErrTemplateDueDayRange is returned when a template's due day is
	// outside the 1-31 range.
	ErrTemplateDueDayRange = errors.New("template due day must be between 1 and 31")
)

// Recurrence is the cadence at which a template produces task instances.
type Recurrence string

// Supported recurrence cadences.
const (
	RecurrenceMonthly   Recurrence = "monthly"
	RecurrenceQuarterly Recurrence = "quarterly"
	RecurrenceYearly    Recurrence = "yearly"
)

// Valid reports whether the recurrence is one of the supported cadences.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		return true
	default:
		return false
	}
}

// TaskTemplate is a reusable definition of a recurring compliance
// obligation. Templates are created and edited by tenant administrators
// and are read-only from the generation engine's perspective.
type TaskTemplate struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Recurrence  Recurrence `json:"recurrence"`

	// DueDay is the target day of month for the due date (1-31). Days
	// beyond the length of the due month are clamped at calculation time.
	DueDay int `json:"due_day"`

	// AdjustToBusinessDay shifts due dates that land on a weekend forward
	// to the next business day.
	AdjustToBusinessDay bool `json:"adjust_to_business_day"`

	// AppliesToRegimes restricts which client tax regimes this template
	// generates tasks for. An empty set applies to all regimes.
	AppliesToRegimes []TaxRegime `json:"applies_to_regimes"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTaskTemplate creates a new active TaskTemplate with a generated ID
// and timestamps. Returns an error if validation fails.
func NewTaskTemplate(
	tenantID uuid.UUID,
	name, description string,
	recurrence Recurrence,
	dueDay int,
	adjustToBusinessDay bool,
	regimes []TaxRegime,
) (*TaskTemplate, error) {
	now := time.Now().UTC()
	template := &TaskTemplate{
		ID:                  uuid.New(),
		TenantID:            tenantID,
		Name:                name,
		Description:         description,
		Recurrence:          recurrence,
		DueDay:              dueDay,
		AdjustToBusinessDay: adjustToBusinessDay,
		AppliesToRegimes:    regimes,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := template.Validate(); err != nil {
		return nil, err
	}

	return template, nil
}

// Validate checks if the TaskTemplate has valid data.
func (t *TaskTemplate) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTemplateIDEmpty
	}

	if t.TenantID == uuid.Nil {
		return ErrTemplateTenantIDEmpty
	}

	if t.Name == "" {
		return ErrTemplateNameEmpty
	}

	if !t.Recurrence.Valid() {
		return ErrInvalidRecurrence
	}

	if t.DueDay < 1 || t.DueDay > 31 {
		return ErrTemplateDueDayRange
	}

	for _, regime := range t.AppliesToRegimes {
		if !regime.Valid() {
			return ErrInvalidTaxRegime
		}
	}

	return nil
}

// AppliesTo reports whether this template generates tasks for a client
// with the given tax regime. A nil regime always matches: the membership
// test only applies to clients that have a regime set. Templates with an
// empty regime set apply to every client.
func (t *TaskTemplate) AppliesTo(regime *TaxRegime) bool {
	if len(t.AppliesToRegimes) == 0 || regime == nil {
		return true
	}

	for _, r := range t.AppliesToRegimes {
		if r == *regime {
			return true
		}
	}

	return false
}
