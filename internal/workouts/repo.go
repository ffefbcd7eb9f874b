package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/movementor/backend/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Record is the persisted per-user state: the progress document plus the
// set of earned badge IDs.
type Record struct {
	Progress *Progress
	Badges   []string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Get returns the user's progress record, or a zeroed record when none has
// been persisted yet.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID.String()))

	var progressBytes []byte
	var badges []string
	err = r.db.
		QueryRow(ctx, `
			SELECT progress, badges
			FROM workout_progress
			WHERE user_id = $1
		`, userID).
		Scan(&progressBytes, &badges)
	if errors.Is(err, pgx.ErrNoRows) {
		return &Record{Progress: NewProgress()}, nil
	}
	if err != nil {
		return nil, err
	}

	return recordFromRow(progressBytes, badges)
}

// Mutate runs the given mutation against the user's current record and
// persists the result, all within one transaction. The row is locked for
// the duration, so concurrent mutations for the same user serialize; a
// mutation error rolls everything back, leaving the record untouched.
func (r *Repo) Mutate(ctx context.Context, userID uuid.UUID, mutate func(rec *Record) error) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.mutate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	rec, err := lockRecord(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err = mutate(rec); err != nil {
		return nil, err
	}

	updatedProgress, err := json.Marshal(rec.Progress)
	if err != nil {
		return nil, fmt.Errorf("marshal progress: %w", err)
	}

	if rec.Badges == nil {
		rec.Badges = []string{}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO workout_progress (user_id, progress, badges)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET progress = EXCLUDED.progress, badges = EXCLUDED.badges
	`, userID, updatedProgress, rec.Badges)
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// lockRecord reads the user's row under FOR UPDATE. A missing row gets
// seeded first: FOR UPDATE locks nothing when no row exists, so without the
// seed two first-time mutations would both read the empty state and one
// would overwrite the other's write. The seed insert either takes the row
// lock or waits out a concurrent seeder, and the re-read then runs locked.
func lockRecord(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*Record, error) {
	selectForUpdate := `
		SELECT progress, badges
		FROM workout_progress
		WHERE user_id = $1
		FOR UPDATE
	`

	var progressBytes []byte
	var badges []string
	err := tx.QueryRow(ctx, selectForUpdate, userID).Scan(&progressBytes, &badges)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := tx.Exec(ctx, `
			INSERT INTO workout_progress (user_id)
			VALUES ($1)
			ON CONFLICT (user_id) DO NOTHING
		`, userID); err != nil {
			return nil, err
		}
		err = tx.QueryRow(ctx, selectForUpdate, userID).Scan(&progressBytes, &badges)
	}
	if err != nil {
		return nil, err
	}

	return recordFromRow(progressBytes, badges)
}

func recordFromRow(progressBytes []byte, badges []string) (*Record, error) {
	progress := NewProgress()
	if len(progressBytes) > 0 {
		if err := json.Unmarshal(progressBytes, progress); err != nil {
			return nil, fmt.Errorf("unmarshal progress: %w", err)
		}
	}
	if progress.Counts == nil {
		progress.Counts = map[string]int{}
	}
	if progress.DailyStats == nil {
		progress.DailyStats = map[string]*DayStats{}
	}
	return &Record{
		Progress: progress,
		Badges:   badges,
	}, nil
}
