// Package domain defines the core business entities of the accounting
// task management system: tenants, tenant users, clients, recurring task
// templates, generated task instances, and the competence period value
// type that ties a task to the obligation month it covers.
package domain
