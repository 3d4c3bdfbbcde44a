// Package job provides background job processing with durable job
// records: jobs are persisted before execution, processed by a worker
// pool, recovered after a restart, and reset when stuck in the
// processing state for too long. The only job type today is recurring
// task generation, which callers run asynchronously for large tenants.
package job
