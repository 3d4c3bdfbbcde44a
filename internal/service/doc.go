// Package service contains the application services that orchestrate
// domain logic and persistence: recurring task generation across a
// tenant's templates and clients, and the task status workflow with its
// history and audit trail.
package service
