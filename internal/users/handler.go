package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/movementor/backend/internal/auth"
	"github.com/movementor/backend/internal/middleware"
	"github.com/movementor/backend/internal/telemetry/metrics"
	"github.com/movementor/backend/internal/telemetry/tracing"
	"github.com/movementor/backend/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	Add(ctx context.Context, email, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	SetOnboarding(ctx context.Context, id uuid.UUID, onboarding *Onboarding) error
}

type loginService interface {
	Login(ctx context.Context, userID uuid.UUID) (string, error)
	Logout(ctx context.Context, token string) error
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	UserID  uuid.UUID `json:"userId"`
}

type SaveOnboardingRequest struct {
	Onboarding *Onboarding `json:"onboarding"`
}

type GetOnboardingResponse struct {
	Onboarding *Onboarding `json:"onboarding"`
}

type Handler struct {
	repo           usersRepo
	loginService   loginService
	loginChecker   auth.Checker
	metricsManager *metrics.Manager
}

func NewHandler(
	repo usersRepo,
	loginService loginService,
	loginChecker auth.Checker,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		loginService:   loginService,
		loginChecker:   loginChecker,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("register user, unmarshal json params: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("register user, hash password: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	user, err := handler.repo.Add(ctx, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			http.Error(w, "user already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to register user [%s]: %s", req.Email, err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterUsersRegistered.Inc()

	respJson, err := json.Marshal(RegisterResponse{
		Message: "user registered successfully",
		UserID:  user.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal register response: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new user registered: %s", user.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "login failed", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		log.Errorf("login, get user [%s]: %s", req.Email, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(req.Password, user.PasswordHash) {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := handler.loginService.Login(ctx, user.ID)
	if err != nil {
		log.Errorf("login, create session for %s: %s", user.ID, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(LoginResponse{
		Message: "login successful",
		Token:   token,
		UserID:  user.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal login response: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	token := r.Header.Get(middleware.AuthTokenHeader)
	if token == "" {
		http.Error(w, "no token", http.StatusBadRequest)
		return
	}

	if err := handler.loginService.Logout(ctx, token); err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			http.Error(w, "not logged in", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "logged out")
}

func (handler *Handler) HandleSaveOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.save-onboarding")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID, ok := handler.userIDFromRequest(ctx, w, r)
	if !ok {
		return
	}

	var req SaveOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("save onboarding, unmarshal json params: %s", err)
		http.Error(w, "save onboarding failed", http.StatusBadRequest)
		return
	}

	if req.Onboarding == nil {
		http.Error(w, "onboarding data empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.SetOnboarding(ctx, userID, req.Onboarding); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to save onboarding for %s: %s", userID, err)
		http.Error(w, "save onboarding failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "onboarding saved")
}

func (handler *Handler) HandleGetOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get-onboarding")
	defer span.End()

	userID, ok := handler.userIDFromRequest(ctx, w, r)
	if !ok {
		return
	}

	user, err := handler.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get onboarding for %s: %s", userID, err)
		http.Error(w, "get onboarding failed", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(GetOnboardingResponse{
		Onboarding: user.Onboarding,
	})
	if err != nil {
		log.Errorf("failed to marshal onboarding response: %s", err)
		http.Error(w, "get onboarding failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// userIDFromRequest resolves the calling user from the auth token header.
// Writes the error response and returns false when the token cannot be resolved.
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
