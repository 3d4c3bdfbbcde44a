package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Tenant-specific validation errors
var (
	// ErrTenantIDEmpty is returned when a tenant ID is empty or nil.
	ErrTenantIDEmpty = errors.New("tenant ID cannot be empty")

	// ErrTenantNameEmpty is returned when a tenant's name is empty.
	ErrTenantNameEmpty = errors.New("tenant name cannot be empty")

	// ErrTenantTaxIDEmpty is returned when a tenant's tax ID (CNPJ) is empty.
	ErrTenantTaxIDEmpty = errors.New("tenant tax ID cannot be empty")
)

// Tenant represents one accounting office using the system. All clients,
// templates, tasks and users belong to exactly one tenant, and every
// store query is scoped by tenant ID.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTenant creates a new active Tenant with a generated ID and
// creation/update timestamps. Returns an error if validation fails.
func NewTenant(name, taxID, email string) (*Tenant, error) {
	now := time.Now().UTC()
	tenant := &Tenant{
		ID:        uuid.New(),
		Name:      name,
		TaxID:     taxID,
		Email:     email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := tenant.Validate(); err != nil {
		return nil, err
	}

	return tenant, nil
}

// Validate checks if the Tenant has valid data.
func (t *Tenant) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTenantIDEmpty
	}

	if t.Name == "" {
		return ErrTenantNameEmpty
	}

	if t.TaxID == "" {
		return ErrTenantTaxIDEmpty
	}

	return nil
}
