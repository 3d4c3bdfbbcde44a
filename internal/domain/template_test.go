package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewTaskTemplate(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()

	template, err := NewTaskTemplate(
		tenantID,
		"DAS payment",
		"Monthly Simples Nacional payment",
		RecurrenceMonthly,
		20,
		true,
		[]TaxRegime{RegimeSimplesNacional},
	)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if template.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if template.TenantID != tenantID {
		t.Errorf("Expected tenant ID %v, got %v", tenantID, template.TenantID)
	}
	if !template.Active {
		t.Error("Expected new template to be active")
	}
	if template.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Invalid recurrence
	_, err = NewTaskTemplate(tenantID, "x", "", Recurrence("weekly"), 10, false, nil)
	if err != ErrInvalidRecurrence {
		t.Errorf("Expected ErrInvalidRecurrence, got %v", err)
	}

	// Due day out of range
	_, err = NewTaskTemplate(tenantID, "x", "", RecurrenceMonthly, 0, false, nil)
	if err != ErrTemplateDueDayRange {
		t.Errorf("Expected ErrTemplateDueDayRange, got %v", err)
	}
	_, err = NewTaskTemplate(tenantID, "x", "", RecurrenceMonthly, 32, false, nil)
	if err != ErrTemplateDueDayRange {
		t.Errorf("Expected ErrTemplateDueDayRange, got %v", err)
	}

	// Empty name
	_, err = NewTaskTemplate(tenantID, "", "", RecurrenceMonthly, 10, false, nil)
	if err != ErrTemplateNameEmpty {
		t.Errorf("Expected ErrTemplateNameEmpty, got %v", err)
	}

	// Invalid regime in the filter set
	_, err = NewTaskTemplate(tenantID, "x", "", RecurrenceMonthly, 10, false,
		[]TaxRegime{TaxRegime("mei")})
	if err != ErrInvalidTaxRegime {
		t.Errorf("Expected ErrInvalidTaxRegime, got %v", err)
	}
}

func TestTemplateAppliesTo(t *testing.T) {
	t.Parallel()

	simples := RegimeSimplesNacional
	presumido := RegimeLucroPresumido

	testCases := []struct {
		name     string
		regimes  []TaxRegime
		client   *TaxRegime
		expected bool
	}{
		{
			name:     "empty set applies to everyone",
			regimes:  nil,
			client:   &simples,
			expected: true,
		},
		{
			name:     "empty set applies to client without regime",
			regimes:  nil,
			client:   nil,
			expected: true,
		},
		{
			name:     "client without regime always matches",
			regimes:  []TaxRegime{RegimeLucroReal},
			client:   nil,
			expected: true,
		},
		{
			name:     "matching regime",
			regimes:  []TaxRegime{RegimeSimplesNacional, RegimeLucroPresumido},
			client:   &simples,
			expected: true,
		},
		{
			name:     "non-matching regime",
			regimes:  []TaxRegime{RegimeLucroReal},
			client:   &presumido,
			expected: false,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			template := &TaskTemplate{AppliesToRegimes: tc.regimes}
			if got := template.AppliesTo(tc.client); got != tc.expected {
				t.Errorf("Expected AppliesTo=%v, got %v", tc.expected, got)
			}
		})
	}
}
