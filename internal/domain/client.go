package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Client-specific validation errors
var (
	// ErrClientIDEmpty is returned when a client ID is empty or nil.
	ErrClientIDEmpty = errors.New("client ID cannot be empty")

	// ErrClientTenantIDEmpty is returned when a client's tenant ID is empty or nil.
	ErrClientTenantIDEmpty = errors.New("client tenant ID cannot be empty")

	// ErrClientNameEmpty is returned when a client's legal name is empty.
	ErrClientNameEmpty = errors.New("client legal name cannot be empty")

	// ErrClientTaxIDEmpty is returned when a client's tax ID (CNPJ/CPF) is empty.
	ErrClientTaxIDEmpty = errors.New("client tax ID cannot be empty")
)

// TaxRegime classifies a client's taxation method. Templates may restrict
// which regimes they apply to; clients with no regime set always match.
type TaxRegime string

// Supported tax regimes.
const (
	RegimeSimplesNacional TaxRegime = "simples_nacional"
	RegimeLucroPresumido  TaxRegime = "lucro_presumido"
	RegimeLucroReal       TaxRegime = "lucro_real"
)

// Valid reports whether the regime is one of the supported values.
func (r TaxRegime) Valid() bool {
	switch r {
	case RegimeSimplesNacional, RegimeLucroPresumido, RegimeLucroReal:
		return true
	default:
		return false
	}
}

// EntityType distinguishes corporate clients from individuals.
type EntityType string

// Supported entity types.
const (
	EntityCompany    EntityType = "company"
	EntityIndividual EntityType = "individual"
)

// Client represents a taxpayer entity served by a tenant. The task
// generation engine reads clients but never mutates them; LegalName is
// used in generation failure messages.
type Client struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Type      EntityType `json:"type"`
	TaxID     string     `json:"tax_id"`
	LegalName string     `json:"legal_name"`
	TradeName string     `json:"trade_name,omitempty"`
	TaxRegime *TaxRegime `json:"tax_regime,omitempty"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewClient creates a new active Client with a generated ID and timestamps.
// regime may be nil for clients without a tax regime classification.
// Returns an error if validation fails.
func NewClient(
	tenantID uuid.UUID,
	entityType EntityType,
	taxID, legalName string,
	regime *TaxRegime,
) (*Client, error) {
	now := time.Now().UTC()
	client := &Client{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Type:      entityType,
		TaxID:     taxID,
		LegalName: legalName,
		TaxRegime: regime,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := client.Validate(); err != nil {
		return nil, err
	}

	return client, nil
}

// Validate checks if the Client has valid data.
func (c *Client) Validate() error {
	if c.ID == uuid.Nil {
		return ErrClientIDEmpty
	}

	if c.TenantID == uuid.Nil {
		return ErrClientTenantIDEmpty
	}

	if c.TaxID == "" {
		return ErrClientTaxIDEmpty
	}

	if c.LegalName == "" {
		return ErrClientNameEmpty
	}

	if c.TaxRegime != nil && !c.TaxRegime.Valid() {
		return ErrInvalidTaxRegime
	}

	return nil
}
