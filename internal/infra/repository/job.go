package repository

import (
	"context"
	"time"

	"redemption-ledger/internal/infra"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"
	"redemption-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type JobWriteQueries interface {
	EnqueueJob(ctx context.Context, db sqlc.DBTX, arg sqlc.EnqueueJobParams) (int64, error)
	LeaseJobs(ctx context.Context, db sqlc.DBTX, arg sqlc.LeaseJobsParams) ([]sqlc.Jobs, error)
	CompleteJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteJobParams) error
	RescheduleJob(ctx context.Context, db sqlc.DBTX, arg sqlc.RescheduleJobParams) error
	BuryJob(ctx context.Context, db sqlc.DBTX, arg sqlc.BuryJobParams) error
}

type JobRepository struct {
	queries JobWriteQueries
	db      sqlc.DBTX
}

func NewJobRepository(queries JobWriteQueries, db sqlc.DBTX) *JobRepository {
	return &JobRepository{
		queries: queries,
		db:      db,
	}
}

func (r *JobRepository) Enqueue(ctx context.Context, job shared.NewJob) (bool, error) {
	n, err := r.queries.EnqueueJob(ctx, r.db, sqlc.EnqueueJobParams{
		Kind:      job.Kind,
		DedupeKey: job.DedupeKey,
		Payload:   job.Payload,
		RunAt:     pgconv.TimeToPgtype(job.RunAt),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to enqueue job", err)
	}
	return n == 1, nil
}

func (r *JobRepository) Lease(ctx context.Context, now, leaseUntil time.Time, batch int) ([]*shared.Job, error) {
	rows, err := r.queries.LeaseJobs(ctx, r.db, sqlc.LeaseJobsParams{
		LockedUntil: pgconv.TimeToPgtype(leaseUntil),
		Now:         pgconv.TimeToPgtype(now),
		Batch:       pgconv.IntToInt32(batch),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lease jobs", err)
	}
	jobs := make([]*shared.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, &shared.Job{
			ID:        row.ID,
			Kind:      row.Kind,
			DedupeKey: row.DedupeKey,
			Payload:   row.Payload,
			RunAt:     pgconv.TimeFromPgtype(row.RunAt),
			Attempts:  int(row.Attempts),
		})
	}
	return jobs, nil
}

func (r *JobRepository) Complete(ctx context.Context, id uuid.UUID, now time.Time) error {
	err := r.queries.CompleteJob(ctx, r.db, sqlc.CompleteJobParams{
		Now: pgconv.TimeToPgtype(now),
		ID:  id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to complete job", err)
	}
	return nil
}

func (r *JobRepository) Reschedule(ctx context.Context, id uuid.UUID, runAt time.Time, lastErr string, now time.Time) error {
	err := r.queries.RescheduleJob(ctx, r.db, sqlc.RescheduleJobParams{
		RunAt:     pgconv.TimeToPgtype(runAt),
		LastError: pgconv.TextOrNull(lastErr),
		Now:       pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to reschedule job", err)
	}
	return nil
}

func (r *JobRepository) Bury(ctx context.Context, id uuid.UUID, lastErr string, now time.Time) error {
	err := r.queries.BuryJob(ctx, r.db, sqlc.BuryJobParams{
		LastError: pgconv.TextOrNull(lastErr),
		Now:       pgconv.TimeToPgtype(now),
		ID:        id,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to bury job", err)
	}
	return nil
}
