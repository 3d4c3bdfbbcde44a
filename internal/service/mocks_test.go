package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
	"github.com/fiscaldesk/fiscaldesk-api/internal/store"
)

// pairKey identifies one (client, template) pair in mock bookkeeping.
type pairKey struct {
	clientID   uuid.UUID
	templateID uuid.UUID
}

// mockTaskStore is a configurable in-memory TaskStore for service tests.
type mockTaskStore struct {
	created []*domain.Task

	// existing marks pairs whose task already exists.
	existing map[pairKey]bool

	// existsErrs makes ExistsForCompetence fail for specific pairs.
	existsErrs map[pairKey]error

	// createErrs makes Create fail for specific pairs.
	createErrs map[pairKey]error

	// tasks backs GetByID and UpdateStatus.
	tasks map[uuid.UUID]*domain.Task

	existsCalls int
	updateErr   error
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{
		existing:   make(map[pairKey]bool),
		existsErrs: make(map[pairKey]error),
		createErrs: make(map[pairKey]error),
		tasks:      make(map[uuid.UUID]*domain.Task),
	}
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	key := pairKey{clientID: task.ClientID, templateID: task.TemplateID}
	if err := m.createErrs[key]; err != nil {
		return err
	}
	m.created = append(m.created, task)
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskStore) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok || task.TenantID != tenantID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockTaskStore) ExistsForCompetence(
	ctx context.Context,
	tenantID, clientID, templateID uuid.UUID,
	competence string,
) (bool, error) {
	m.existsCalls++
	key := pairKey{clientID: clientID, templateID: templateID}
	if err := m.existsErrs[key]; err != nil {
		return false, err
	}
	return m.existing[key], nil
}

func (m *mockTaskStore) List(
	ctx context.Context,
	tenantID uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for _, task := range m.tasks {
		if task.TenantID == tenantID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *mockTaskStore) UpdateStatus(
	ctx context.Context,
	tenantID, id uuid.UUID,
	status domain.TaskStatus,
	completedAt *time.Time,
) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	task, ok := m.tasks[id]
	if !ok || task.TenantID != tenantID {
		return store.ErrTaskNotFound
	}
	task.Status = status
	task.CompletedAt = completedAt
	return nil
}

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// mockTemplateStore serves a fixed set of templates.
type mockTemplateStore struct {
	templates []*domain.TaskTemplate
	listErr   error
}

func (m *mockTemplateStore) Create(ctx context.Context, template *domain.TaskTemplate) error {
	m.templates = append(m.templates, template)
	return nil
}

func (m *mockTemplateStore) GetByID(
	ctx context.Context,
	tenantID, id uuid.UUID,
) (*domain.TaskTemplate, error) {
	for _, template := range m.templates {
		if template.ID == id && template.TenantID == tenantID {
			return template, nil
		}
	}
	return nil, store.ErrTemplateNotFound
}

func (m *mockTemplateStore) List(
	ctx context.Context,
	tenantID uuid.UUID,
) ([]*domain.TaskTemplate, error) {
	return m.templates, m.listErr
}

func (m *mockTemplateStore) ListActive(
	ctx context.Context,
	tenantID uuid.UUID,
) ([]*domain.TaskTemplate, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var active []*domain.TaskTemplate
	for _, template := range m.templates {
		if template.Active {
			active = append(active, template)
		}
	}
	return active, nil
}

func (m *mockTemplateStore) WithTx(tx *sql.Tx) store.TemplateStore {
	return m
}

// mockClientStore serves a fixed set of clients.
type mockClientStore struct {
	clients []*domain.Client
	listErr error
}

func (m *mockClientStore) Create(ctx context.Context, client *domain.Client) error {
	m.clients = append(m.clients, client)
	return nil
}

func (m *mockClientStore) GetByID(
	ctx context.Context,
	tenantID, id uuid.UUID,
) (*domain.Client, error) {
	for _, client := range m.clients {
		if client.ID == id && client.TenantID == tenantID {
			return client, nil
		}
	}
	return nil, store.ErrClientNotFound
}

func (m *mockClientStore) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Client, error) {
	return m.clients, m.listErr
}

func (m *mockClientStore) ListActive(
	ctx context.Context,
	tenantID uuid.UUID,
) ([]*domain.Client, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var active []*domain.Client
	for _, client := range m.clients {
		if client.Active {
			active = append(active, client)
		}
	}
	return active, nil
}

func (m *mockClientStore) WithTx(tx *sql.Tx) store.ClientStore {
	return m
}

// mockAuditStore records appended audit entries.
type mockAuditStore struct {
	entries   []*domain.AuditEntry
	appendErr error
}

func (m *mockAuditStore) Append(ctx context.Context, entry *domain.AuditEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditStore) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.AuditEntry, error) {
	var entries []*domain.AuditEntry
	for _, entry := range m.entries {
		if entry.TaskID == taskID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *mockAuditStore) WithTx(tx *sql.Tx) store.AuditLogStore {
	return m
}

// mockHistoryStore records appended history entries.
type mockHistoryStore struct {
	entries   []*domain.HistoryEntry
	appendErr error
}

func (m *mockHistoryStore) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryStore) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.HistoryEntry, error) {
	var entries []*domain.HistoryEntry
	for _, entry := range m.entries {
		if entry.TaskID == taskID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *mockHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return m
}

// testTemplate builds a valid monthly template for the tenant.
func testTemplate(tenantID uuid.UUID, name string, dueDay int, regimes []domain.TaxRegime) *domain.TaskTemplate {
	template, err := domain.NewTaskTemplate(
		tenantID, name, "generated by "+name, domain.RecurrenceMonthly, dueDay, false, regimes)
	if err != nil {
		panic(fmt.Sprintf("invalid test template: %v", err))
	}
	return template
}

// testClient builds a valid active client for the tenant.
func testClient(tenantID uuid.UUID, name string, regime *domain.TaxRegime) *domain.Client {
	client, err := domain.NewClient(tenantID, domain.EntityCompany, "99888777000166", name, regime)
	if err != nil {
		panic(fmt.Sprintf("invalid test client: %v", err))
	}
	return client
}
