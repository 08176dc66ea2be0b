// Written in the layout sqlc v1.29.0 generates; regenerate with `sqlc generate`
// or keep in step with ../queries by hand.
// source: jobs.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const buryJob = `-- name: BuryJob :exec
UPDATE jobs
SET status = 'dead', locked_until = NULL, last_error = $1, updated_at = $2::timestamptz
WHERE id = $3
`

type BuryJobParams struct {
	LastError pgtype.Text        `json:"last_error"`
	Now       pgtype.Timestamptz `json:"now"`
	ID        uuid.UUID          `json:"id"`
}

func (q *Queries) BuryJob(ctx context.Context, db DBTX, arg BuryJobParams) error {
	_, err := db.Exec(ctx, buryJob, arg.LastError, arg.Now, arg.ID)
	return err
}

const completeJob = `-- name: CompleteJob :exec
UPDATE jobs
SET status = 'done', locked_until = NULL, updated_at = $1::timestamptz
WHERE id = $2
`

type CompleteJobParams struct {
	Now pgtype.Timestamptz `json:"now"`
	ID  uuid.UUID          `json:"id"`
}

func (q *Queries) CompleteJob(ctx context.Context, db DBTX, arg CompleteJobParams) error {
	_, err := db.Exec(ctx, completeJob, arg.Now, arg.ID)
	return err
}

const enqueueJob = `-- name: EnqueueJob :execrows
INSERT INTO jobs (kind, dedupe_key, payload, run_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (dedupe_key) DO NOTHING
`

type EnqueueJobParams struct {
	Kind      string             `json:"kind"`
	DedupeKey string             `json:"dedupe_key"`
	Payload   []byte             `json:"payload"`
	RunAt     pgtype.Timestamptz `json:"run_at"`
}

func (q *Queries) EnqueueJob(ctx context.Context, db DBTX, arg EnqueueJobParams) (int64, error) {
	result, err := db.Exec(ctx, enqueueJob,
		arg.Kind,
		arg.DedupeKey,
		arg.Payload,
		arg.RunAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const leaseJobs = `-- name: LeaseJobs :many
UPDATE jobs
SET status = 'running',
    locked_until = $1::timestamptz,
    attempts = attempts + 1,
    updated_at = $2::timestamptz
WHERE id IN (
    SELECT j.id FROM jobs j
    WHERE (j.status = 'queued' AND j.run_at <= $2::timestamptz)
       OR (j.status = 'running' AND j.locked_until < $2::timestamptz)
    ORDER BY j.run_at
    LIMIT $3
    FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, dedupe_key, payload, run_at, attempts, status, locked_until, last_error, created_at, updated_at
`

type LeaseJobsParams struct {
	LockedUntil pgtype.Timestamptz `json:"locked_until"`
	Now         pgtype.Timestamptz `json:"now"`
	Batch       int32              `json:"batch"`
}

func (q *Queries) LeaseJobs(ctx context.Context, db DBTX, arg LeaseJobsParams) ([]Jobs, error) {
	rows, err := db.Query(ctx, leaseJobs, arg.LockedUntil, arg.Now, arg.Batch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Jobs{}
	for rows.Next() {
		var i Jobs
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.DedupeKey,
			&i.Payload,
			&i.RunAt,
			&i.Attempts,
			&i.Status,
			&i.LockedUntil,
			&i.LastError,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const rescheduleJob = `-- name: RescheduleJob :exec
UPDATE jobs
SET status = 'queued',
    run_at = $1::timestamptz,
    locked_until = NULL,
    last_error = $2,
    updated_at = $3::timestamptz
WHERE id = $4
`

type RescheduleJobParams struct {
	RunAt     pgtype.Timestamptz `json:"run_at"`
	LastError pgtype.Text        `json:"last_error"`
	Now       pgtype.Timestamptz `json:"now"`
	ID        uuid.UUID          `json:"id"`
}

func (q *Queries) RescheduleJob(ctx context.Context, db DBTX, arg RescheduleJobParams) error {
	_, err := db.Exec(ctx, rescheduleJob,
		arg.RunAt,
		arg.LastError,
		arg.Now,
		arg.ID,
	)
	return err
}
