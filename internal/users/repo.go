package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/movementor/backend/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// uniqueViolation is the postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, email, passwordHash string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4);`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrUserExists
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("user.id", user.ID.String()))

	return user, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id.String()))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, email, password_hash, onboarding, created_at FROM users WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanOneUser(rows)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyemail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, email, password_hash, onboarding, created_at FROM users WHERE email = $1;`,
		email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanOneUser(rows)
}

func (r *Repo) SetOnboarding(ctx context.Context, id uuid.UUID, onboarding *Onboarding) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.setonboarding")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id.String()))

	onboardingJson, err := json.Marshal(onboarding)
	if err != nil {
		return fmt.Errorf("marshal onboarding: %w", err)
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET onboarding = $1 WHERE id = $2;`,
		onboardingJson, id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *Repo) scanOneUser(rows pgx.Rows) (*User, error) {
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, ErrUserNotFound
	}

	var u User
	var onboardingBytes []byte
	if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &onboardingBytes, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	if len(onboardingBytes) > 0 {
		var onboarding Onboarding
		if err := json.Unmarshal(onboardingBytes, &onboarding); err != nil {
			return nil, fmt.Errorf("unmarshal onboarding for user %s: %w", u.ID, err)
		}
		u.Onboarding = &onboarding
	}

	return &u, nil
}
