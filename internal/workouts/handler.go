package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/movementor/backend/internal/auth"
	"github.com/movementor/backend/internal/middleware"
	"github.com/movementor/backend/internal/telemetry/metrics"
	"github.com/movementor/backend/internal/telemetry/tracing"
	"github.com/movementor/backend/internal/users"
	"github.com/movementor/backend/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	Increment(ctx context.Context, userID uuid.UUID, workoutType, today string) (*Record, []string, error)
	Decrement(ctx context.Context, userID uuid.UUID, workoutType, today string) (*Record, error)
	Progress(ctx context.Context, userID uuid.UUID) (*ProgressInfo, error)
	Badges(ctx context.Context, userID uuid.UUID) ([]BadgeStatus, error)
	Reset(ctx context.Context, userID uuid.UUID) error
}

type WorkoutRequest struct {
	Type string `json:"type"`
}

type IncrementResponse struct {
	Message  string    `json:"message"`
	Progress *Progress `json:"progress"`
	Badges   []string  `json:"badges"`
}

type DecrementResponse struct {
	Message  string    `json:"message"`
	Progress *Progress `json:"progress"`
}

type BadgesResponse struct {
	Badges []BadgeStatus `json:"badges"`
}

type Handler struct {
	service        workoutsService
	loginChecker   auth.Checker
	metricsManager *metrics.Manager

	// injected clock, calendar-day granularity
	now func() time.Time
}

func NewHandler(
	service workoutsService,
	loginChecker auth.Checker,
	metricsManager *metrics.Manager,
	now func() time.Time,
) *Handler {
	return &Handler{
		service:        service,
		loginChecker:   loginChecker,
		metricsManager: metricsManager,
		now:            now,
	}
}

func (handler *Handler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.increment")
	defer span.End()

	userID, workoutType, ok := handler.workoutParams(ctx, w, r)
	if !ok {
		return
	}

	today := handler.now().Format(DateLayout)
	rec, newlyEarned, err := handler.service.Increment(ctx, userID, workoutType, today)
	if err != nil {
		handler.writeWorkoutError(w, "increment", workoutType, userID, err)
		return
	}

	handler.metricsManager.CounterWorkoutsCompleted.Inc()
	if len(newlyEarned) > 0 {
		handler.metricsManager.CounterBadgesUnlocked.Add(float64(len(newlyEarned)))
		log.Debugf("user %s unlocked badges: %v", userID, newlyEarned)
	}

	respJson, err := json.Marshal(IncrementResponse{
		Message:  "workout incremented",
		Progress: rec.Progress,
		Badges:   rec.Badges,
	})
	if err != nil {
		log.Errorf("failed to marshal increment response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleDecrement(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.decrement")
	defer span.End()

	userID, workoutType, ok := handler.workoutParams(ctx, w, r)
	if !ok {
		return
	}

	today := handler.now().Format(DateLayout)
	rec, err := handler.service.Decrement(ctx, userID, workoutType, today)
	if err != nil {
		handler.writeWorkoutError(w, "decrement", workoutType, userID, err)
		return
	}

	handler.metricsManager.CounterWorkoutsUndone.Inc()

	respJson, err := json.Marshal(DecrementResponse{
		Message:  "workout decremented",
		Progress: rec.Progress,
	})
	if err != nil {
		log.Errorf("failed to marshal decrement response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.progress")
	defer span.End()

	userID, ok := handler.userIDFromRequest(ctx, w, r)
	if !ok {
		return
	}

	progressInfo, err := handler.service.Progress(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get progress for %s: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(progressInfo)
	if err != nil {
		log.Errorf("failed to marshal progress response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGetBadges(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.badges")
	defer span.End()

	userID, ok := handler.userIDFromRequest(ctx, w, r)
	if !ok {
		return
	}

	badges, err := handler.service.Badges(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get badges for %s: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(BadgesResponse{Badges: badges})
	if err != nil {
		log.Errorf("failed to marshal badges response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.reset")
	defer span.End()

	userID, ok := handler.userIDFromRequest(ctx, w, r)
	if !ok {
		return
	}

	if err := handler.service.Reset(ctx, userID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to reset progress for %s: %s", userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Debugf("progress reset for user %s", userID)
	pkg.WriteJSONResponseOK(w, `{"message":"progress reset"}`)
}

// workoutParams resolves the calling user and decodes the workout type from
// the request body. Writes the error response and returns false on failure.
func (handler *Handler) workoutParams(ctx context.Context, w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return uuid.Nil, "", false
	}

	userID, ok := handler.userIDFromRequest(ctx, w, r)
	if !ok {
		return uuid.Nil, "", false
	}

	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("workout request, unmarshal json params: %s", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return uuid.Nil, "", false
	}
	if req.Type == "" {
		http.Error(w, "workout type empty", http.StatusBadRequest)
		return uuid.Nil, "", false
	}

	return userID, req.Type, true
}

func (handler *Handler) userIDFromRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	token := r.Header.Get(middleware.AuthTokenHeader)
	userID, err := handler.loginChecker.UserIDFromToken(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			http.Error(w, "not logged in", http.StatusUnauthorized)
			return uuid.Nil, false
		}
		log.Errorf("resolve user from token: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return uuid.Nil, false
	}
	return userID, true
}

func (handler *Handler) writeWorkoutError(w http.ResponseWriter, op, workoutType string, userID uuid.UUID, err error) {
	switch {
	case errors.Is(err, ErrInvalidCategory):
		http.Error(w, "invalid workout type", http.StatusBadRequest)
	case errors.Is(err, ErrNothingToDecrement):
		http.Error(w, "workout count already zero", http.StatusBadRequest)
	case errors.Is(err, users.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	default:
		log.Errorf("failed to %s workout [%s] for %s: %s", op, workoutType, userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
