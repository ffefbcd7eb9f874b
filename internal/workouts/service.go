package workouts

import (
	"context"
	"fmt"

	"github.com/movementor/backend/internal/telemetry/tracing"
	"github.com/movementor/backend/internal/users"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type progressRepo interface {
	Get(ctx context.Context, userID uuid.UUID) (*Record, error)
	Mutate(ctx context.Context, userID uuid.UUID, mutate func(rec *Record) error) (*Record, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*users.User, error)
}

// ProgressInfo is the read-side projection of a user's progress, with the
// all-time counts additionally bucketed by the user's fitness goals.
type ProgressInfo struct {
	Goals          []string             `json:"goals"`
	RawCounts      map[string]int       `json:"rawCounts"`
	GroupedCounts  map[string]int       `json:"groupedCounts"`
	TotalCompleted int                  `json:"totalCompleted"`
	StreakCount    int                  `json:"streakCount"`
	DailyStats     map[string]*DayStats `json:"dailyStats"`
}

// Service orchestrates the progress engine: resolve the category, mutate
// the record and the daily ledger, advance the streak, evaluate badges.
// All static tables (taxonomy, badges, goal buckets) are injected.
type Service struct {
	repo           progressRepo
	users          userGetter
	resolver       *Resolver
	evaluator      *Evaluator
	goalCategories map[string][]string
}

func NewService(
	repo progressRepo,
	users userGetter,
	resolver *Resolver,
	evaluator *Evaluator,
	goalCategories map[string][]string,
) *Service {
	return &Service{
		repo:           repo,
		users:          users,
		resolver:       resolver,
		evaluator:      evaluator,
		goalCategories: goalCategories,
	}
}

// Increment records one completion of the given workout type on the given
// day and evaluates badge unlocks against the updated record. Returns the
// updated record and the badges newly earned by this completion.
func (s *Service) Increment(ctx context.Context, userID uuid.UUID, workoutType, today string) (_ *Record, newlyEarned []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.increment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.type", workoutType))

	category, err := s.resolver.Resolve(workoutType)
	if err != nil {
		return nil, nil, err
	}

	if _, err = s.users.GetByID(ctx, userID); err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	rec, err := s.repo.Mutate(ctx, userID, func(rec *Record) error {
		rec.Progress.Increment(category, today)
		newlyEarned = s.evaluator.Evaluate(rec.Progress, rec.Badges)
		rec.Badges = append(rec.Badges, newlyEarned...)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("mutate progress: %w", err)
	}

	return rec, newlyEarned, nil
}

// Decrement undoes one completion of the given workout type. Badges are
// never revoked here, even when their condition no longer holds.
func (s *Service) Decrement(ctx context.Context, userID uuid.UUID, workoutType, today string) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.decrement")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.type", workoutType))

	category, err := s.resolver.Resolve(workoutType)
	if err != nil {
		return nil, err
	}

	if _, err = s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	rec, err := s.repo.Mutate(ctx, userID, func(rec *Record) error {
		return rec.Progress.Decrement(category, today)
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Progress returns the user's progress together with the goal-grouped view
// built from the fitness goals selected during onboarding.
func (s *Service) Progress(ctx context.Context, userID uuid.UUID) (_ *ProgressInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	var goals []string
	if user.Onboarding != nil {
		goals = user.Onboarding.FitnessGoals
	}

	rec, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return &ProgressInfo{
		Goals:          goals,
		RawCounts:      rec.Progress.Counts,
		GroupedCounts:  GroupByGoals(rec.Progress.Counts, goals, s.goalCategories),
		TotalCompleted: rec.Progress.TotalCompleted,
		StreakCount:    rec.Progress.StreakCount,
		DailyStats:     rec.Progress.DailyStats,
	}, nil
}

// Badges returns all badge definitions with the user's earned flags.
func (s *Service) Badges(ctx context.Context, userID uuid.UUID) (_ []BadgeStatus, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.badges")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err = s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	rec, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return s.evaluator.Statuses(rec.Badges), nil
}

// Reset zeroes the user's counters and streak. The daily ledger and the
// earned badges survive a reset.
func (s *Service) Reset(ctx context.Context, userID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if _, err = s.users.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if _, err = s.repo.Mutate(ctx, userID, func(rec *Record) error {
		rec.Progress.Reset()
		return nil
	}); err != nil {
		return fmt.Errorf("mutate progress: %w", err)
	}

	return nil
}
