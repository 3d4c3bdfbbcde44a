package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/domain/schedule"
	"github.com/fiscaldesk/fiscaldesk-api/internal/platform/logger"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// GenerationOutcome summarizes one generation run.
type GenerationOutcome struct {
	// Created is the number of task instances persisted by this run.
	Created int `json:"created"`

	// Failures lists the (template, client) pairs that could not be
	// processed, one human-readable message each. A non-empty Failures
	// with a non-zero Created means the run partially succeeded.
	Failures []string `json:"failures,omitempty"`

	// Message is a short human-readable summary of the run.
	Message string `json:"message"`
}

// TruncateFailures returns at most limit failure messages, replacing the
// remainder with a single "... and N more" marker.
func (o *GenerationOutcome) TruncateFailures(limit int) []string {
	if limit <= 0 || len(o.Failures) <= limit {
		return o.Failures
	}

	truncated := make([]string, 0, limit+1)
	truncated = append(truncated, o.Failures[:limit]...)
	truncated = append(truncated, fmt.Sprintf("... and %d more", len(o.Failures)-limit))
	return truncated
}

// GenerationService generates the task instances for a tenant's active
// templates and clients in a competence period. Generation is idempotent:
// re-running for the same period never duplicates tasks, both through an
// existence pre-check and through the unique index backing
// store.ErrTaskExists.
type GenerationService struct {
	taskStore     store.TaskStore
	templateStore store.TemplateStore
	clientStore   store.ClientStore
	auditStore    store.AuditLogStore
	logger        *slog.Logger
}

// NewGenerationService creates a new GenerationService.
// All dependencies are required.
func NewGenerationService(
	taskStore store.TaskStore,
	templateStore store.TemplateStore,
	clientStore store.ClientStore,
	auditStore store.AuditLogStore,
	log *slog.Logger,
) (*GenerationService, error) {
	if taskStore == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if templateStore == nil {
		return nil, fmt.Errorf("template store cannot be nil")
	}
	if clientStore == nil {
		return nil, fmt.Errorf("client store cannot be nil")
	}
	if auditStore == nil {
		return nil, fmt.Errorf("audit store cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	return &GenerationService{
		taskStore:     taskStore,
		templateStore: templateStore,
		clientStore:   clientStore,
		auditStore:    auditStore,
		logger:        log.With(slog.String("component", "generation_service")),
	}, nil
}

// Run fetches the tenant's active templates and clients and generates
// tasks for the given competence period. This is the entry point used by
// both the synchronous HTTP path and the background job.
func (s *GenerationService) Run(
	ctx context.Context,
	tenantID uuid.UUID,
	competence string,
) (*GenerationOutcome, error) {
	templates, err := s.templateStore.ListActive(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active templates: %w", err)
	}

	clients, err := s.clientStore.ListActive(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active clients: %w", err)
	}

	return s.Generate(ctx, tenantID, competence, templates, clients)
}

// Generate runs the generation plan over the given templates and clients
// for one competence period. Inputs are assumed pre-filtered to active
// records belonging to the tenant.
//
// The plan is the cross product of templates and clients, restricted by
// each template's regime filter. Pairs whose task already exists are
// skipped silently. A failing pair is recorded in the outcome and never
// aborts the batch; only a malformed competence fails the run as a whole.
func (s *GenerationService) Generate(
	ctx context.Context,
	tenantID uuid.UUID,
	competence string,
	templates []*domain.TaskTemplate,
	clients []*domain.Client,
) (*GenerationOutcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("tenant_id", tenantID.String()),
		slog.String("competence", competence),
	)

	period, err := domain.ParseCompetence(competence)
	if err != nil {
		return nil, err
	}
	canonical := period.String()

	outcome := &GenerationOutcome{}

	if len(templates) == 0 {
		outcome.Message = "no active templates"
		outcome.Failures = append(outcome.Failures, outcome.Message)
		log.Info("generation skipped", "reason", outcome.Message)
		return outcome, nil
	}
	if len(clients) == 0 {
		outcome.Message = "no active clients"
		outcome.Failures = append(outcome.Failures, outcome.Message)
		log.Info("generation skipped", "reason", outcome.Message)
		return outcome, nil
	}

	for _, template := range templates {
		dueDate := schedule.DueDate(period, template.DueDay, template.AdjustToBusinessDay)

		for _, client := range clients {
			if !template.AppliesTo(client.TaxRegime) {
				continue
			}

			exists, err := s.taskStore.ExistsForCompetence(
				ctx, tenantID, client.ID, template.ID, canonical)
			if err != nil {
				outcome.Failures = append(outcome.Failures, pairFailure(template, client, err))
				continue
			}
			if exists {
				continue
			}

			task, err := domain.NewGeneratedTask(template, client, canonical, dueDate)
			if err != nil {
				outcome.Failures = append(outcome.Failures, pairFailure(template, client, err))
				continue
			}

			if err := s.taskStore.Create(ctx, task); err != nil {
				// A concurrent run got there first; the unique index makes
				// this a skip, not a failure.
				if errors.Is(err, store.ErrTaskExists) {
					continue
				}
				outcome.Failures = append(outcome.Failures, pairFailure(template, client, err))
				continue
			}

			outcome.Created++
			s.recordCreation(ctx, task, template, client)
		}
	}

	outcome.Message = fmt.Sprintf("%d tasks created for %s", outcome.Created, canonical)
	log.Info("generation run complete",
		"created", outcome.Created,
		"failures", len(outcome.Failures))

	return outcome, nil
}

// recordCreation appends the audit entry for a generated task. The trail
// is best effort: a failed append is logged but never fails the pair,
// since the task itself is already persisted.
func (s *GenerationService) recordCreation(
	ctx context.Context,
	task *domain.Task,
	template *domain.TaskTemplate,
	client *domain.Client,
) {
	entry := domain.NewAuditEntry(
		task.ID,
		nil,
		"system",
		domain.ChangeTypeCreation,
		fmt.Sprintf("task generated from template %q for client %q, competence %s",
			template.Name, client.LegalName, task.Competence),
	)

	if err := s.auditStore.Append(ctx, entry); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to append creation audit entry",
			"task_id", task.ID,
			"error", err)
	}
}

// pairFailure formats the failure message for one (template, client) pair.
func pairFailure(template *domain.TaskTemplate, client *domain.Client, err error) string {
	return fmt.Sprintf("template %q, client %q: %v", template.Name, client.LegalName, err)
}
