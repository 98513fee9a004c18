package impl

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

const (
	defaultRevalidateTimeout = 10 * time.Second

	profileFlightKey = "profile"
)

// SessionServiceParams holds dependencies for the session store, injected by Fx
type SessionServiceParams struct {
	fx.In

	Repo       repository.SessionRepository
	Auth       service.AuthAPI
	Authorizer service.RequestAuthorizer
	Inspector  service.TokenInspector
	Navigator  service.Navigator
	Config     *config.Config
	Logger     *slog.Logger
}

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	repo       repository.SessionRepository
	auth       service.AuthAPI
	authorizer service.RequestAuthorizer
	inspector  service.TokenInspector
	navigator  service.Navigator
	validate   *validator.Validate
	logger     *slog.Logger

	revalidateTimeout time.Duration
	checkExpiry       bool
	now               func() time.Time

	flight singleflight.Group

	// storeMu orders storage writes the same way as the in-memory transitions
	// they follow. It is never held across a backend call.
	storeMu sync.Mutex

	mu    sync.RWMutex
	state entity.SessionState
	token string
	user  *entity.User
	// generation changes on every login, restore and logout; background
	// results tagged with an older generation are discarded.
	generation uint64
	pending    chan struct{}
}

// NewSessionService is the constructor for sessionService. It subscribes to
// credential rejections so that any 401/403 on a protected call ends the session.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	srv := &sessionService{
		repo:              params.Repo,
		auth:              params.Auth,
		authorizer:        params.Authorizer,
		inspector:         params.Inspector,
		navigator:         params.Navigator,
		validate:          util.NewValidator(),
		logger:            params.Logger,
		revalidateTimeout: defaultRevalidateTimeout,
		checkExpiry:       true,
		now:               time.Now,
	}

	if cfg := params.Config.Session; cfg != nil {
		if cfg.RevalidateTimeout > 0 {
			srv.revalidateTimeout = cfg.RevalidateTimeout
		}
		srv.checkExpiry = cfg.CheckExpiry
	}

	srv.authorizer.OnRejected(srv.handleRejection)

	return srv
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Load restores a stored session and starts its re-validation.
func (srv *sessionService) Load(ctx context.Context) {
	stored, err := srv.repo.Load(ctx)
	if err != nil {
		srv.log(ctx).Warn("Session storage unavailable, staying signed out", slog.Any("error", err))

		return
	}

	switch {
	case !stored.HasToken && !stored.HasUser:
		srv.log(ctx).Debug("No stored session")

		return
	case !stored.HasToken || !stored.HasUser || stored.UserErr != nil:
		srv.log(ctx).Warn("Stored session is incomplete",
			slog.Bool("has_token", stored.HasToken),
			slog.Bool("has_user", stored.HasUser),
			slog.Any("user_error", stored.UserErr),
		)
		srv.invalidate(ctx, entity.LogoutCorruptState)

		return
	}

	if srv.checkExpiry {
		if exp, ok := srv.inspector.ExpiresAt(stored.Token); ok && !srv.now().Before(exp) {
			srv.log(ctx).Info("Stored token expired", slog.Time("expired_at", exp))
			srv.invalidate(ctx, entity.LogoutTokenExpired)

			return
		}
	}

	srv.mu.Lock()
	srv.generation++
	gen := srv.generation
	done := make(chan struct{})
	srv.token = stored.Token
	srv.user = stored.User
	srv.state = entity.SessionPending
	srv.pending = done
	srv.mu.Unlock()

	srv.authorizer.Arm(stored.Token)

	srv.log(ctx).Debug("Session restored, re-validating", slog.String("user_id", stored.User.ID.String()))

	go srv.revalidate(context.WithoutCancel(ctx), gen, done)
}

// revalidate confirms the restored token with the backend and refreshes the
// stored user. Any failure ends the session it was started for.
func (srv *sessionService) revalidate(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)

	ctx, cancel := context.WithTimeout(ctx, srv.revalidateTimeout)
	defer cancel()

	result, err, _ := srv.flight.Do(profileFlightKey, func() (any, error) {
		return srv.auth.GetProfile(ctx)
	})

	if err != nil {
		srv.log(ctx).Warn("Session re-validation failed", slog.Any("error", err))
		srv.invalidateGeneration(ctx, gen, entity.LogoutRevalidationFailed)

		return
	}

	user, _ := result.(*entity.User)
	if user == nil {
		srv.invalidateGeneration(ctx, gen, entity.LogoutRevalidationFailed)

		return
	}

	srv.storeMu.Lock()
	defer srv.storeMu.Unlock()

	srv.mu.Lock()
	if srv.generation != gen {
		srv.mu.Unlock()
		srv.log(ctx).Debug("Discarding re-validation for a replaced session")

		return
	}
	srv.user = user
	srv.state = entity.SessionAuthenticated
	srv.mu.Unlock()

	if err := srv.repo.SaveUser(ctx, user); err != nil {
		srv.log(ctx).Warn("Refreshed user not persisted", slog.Any("error", err))
	}

	srv.log(ctx).Info("Session re-validated", slog.String("user_id", user.ID.String()))
}

// WaitForRevalidation blocks until the current re-validation resolves or ctx ends.
func (srv *sessionService) WaitForRevalidation(ctx context.Context) error {
	srv.mu.RLock()
	done := srv.pending
	srv.mu.RUnlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

// Register creates an account and signs it in.
func (srv *sessionService) Register(ctx context.Context, input *service.Registration) (*entity.User, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("registration is required")
	}
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(util.ValidationDetails(err))
	}

	res, err := srv.auth.Register(ctx, input)
	if err != nil {
		srv.log(ctx).Info("Registration failed", slog.Any("error", err))

		return nil, authFailure(err)
	}

	return srv.establish(ctx, res), nil
}

// Login signs in with credentials.
func (srv *sessionService) Login(ctx context.Context, input *service.Credentials) (*entity.User, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("credentials are required")
	}
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(util.ValidationDetails(err))
	}

	res, err := srv.auth.Login(ctx, input)
	if err != nil {
		srv.log(ctx).Info("Login failed", slog.Any("error", err))

		return nil, authFailure(err)
	}

	return srv.establish(ctx, res), nil
}

// establish installs a fresh session. Any restore still re-validating is superseded.
func (srv *sessionService) establish(ctx context.Context, res *service.AuthResult) *entity.User {
	srv.storeMu.Lock()
	defer srv.storeMu.Unlock()

	srv.mu.Lock()
	srv.generation++
	srv.token = res.Token
	srv.user = res.User
	srv.state = entity.SessionAuthenticated
	srv.pending = nil
	srv.mu.Unlock()

	srv.authorizer.Arm(res.Token)

	if err := srv.repo.Save(context.WithoutCancel(ctx), res.Token, res.User); err != nil {
		srv.log(ctx).Warn("Session not persisted", slog.Any("error", err))
	}

	srv.log(ctx).Info("Signed in", slog.String("user_id", res.User.ID.String()))

	return cloneUser(res.User)
}

// authFailure maps a backend rejection to the user-facing error, keeping the
// backend's own message when it sent one.
func authFailure(err error) error {
	remoteErr, ok := domainerrors.AsRemoteError(err)
	if !ok {
		return err
	}

	var base *domainerrors.BaseError
	switch remoteErr.StatusCode {
	case http.StatusUnauthorized:
		base = domainerrors.ErrInvalidCredentials
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		base = domainerrors.ErrValidationFailed
	default:
		base = domainerrors.ErrRequestFailed
	}

	return base.WithMessage(remoteErr.Message)
}

// Logout ends the session. Calling it while signed out is harmless.
func (srv *sessionService) Logout(ctx context.Context) {
	srv.invalidate(ctx, entity.LogoutRequested)
}

func (srv *sessionService) handleRejection(ctx context.Context, token string, statusCode int) {
	if token == "" {
		return
	}

	srv.log(ctx).Debug("Backend rejected a session token", slog.Int("status", statusCode))

	ended := srv.invalidateIf(ctx, entity.LogoutAuthRejected, func() bool {
		return srv.token == token
	})
	if !ended {
		srv.log(ctx).Debug("Ignoring rejection of a superseded token", slog.Int("status", statusCode))

		return
	}

	srv.log(ctx).Warn("Session ended by backend rejection", slog.Int("status", statusCode))
}

// invalidateGeneration ends the session only if it is still the one identified by gen.
func (srv *sessionService) invalidateGeneration(ctx context.Context, gen uint64, reason entity.LogoutReason) {
	ended := srv.invalidateIf(ctx, reason, func() bool {
		return srv.generation == gen
	})
	if !ended {
		srv.log(ctx).Debug("Session already replaced", slog.String("reason", string(reason)))
	}
}

func (srv *sessionService) invalidate(ctx context.Context, reason entity.LogoutReason) {
	srv.invalidateIf(ctx, reason, nil)
}

// invalidateIf ends the session when current, evaluated under mu, still
// recognises it. A nil current always ends it. It reports whether it did.
func (srv *sessionService) invalidateIf(ctx context.Context, reason entity.LogoutReason, current func() bool) bool {
	srv.storeMu.Lock()

	srv.mu.Lock()
	if current != nil && !current() {
		srv.mu.Unlock()
		srv.storeMu.Unlock()

		return false
	}
	wasActive := srv.state != entity.SessionAnonymous
	srv.generation++
	srv.token = ""
	srv.user = nil
	srv.state = entity.SessionAnonymous
	// pending is left to the re-validation goroutine, which closes it only
	// after an invalidation it triggered has reached storage.
	srv.mu.Unlock()

	srv.authorizer.Disarm()

	if err := srv.repo.Clear(context.WithoutCancel(ctx)); err != nil {
		srv.log(ctx).Warn("Stored session not cleared", slog.Any("error", err))
	}

	srv.storeMu.Unlock()

	if wasActive {
		srv.log(ctx).Info("Signed out", slog.String("reason", string(reason)))
	}

	if wasActive || reason == entity.LogoutRequested || reason == entity.LogoutCorruptState || reason == entity.LogoutTokenExpired {
		srv.navigator.ToLogin(ctx)
	}

	return true
}

func (srv *sessionService) IsAuthenticated() bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.user != nil
}

func (srv *sessionService) State() entity.SessionState {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.state
}

func (srv *sessionService) CurrentUser() *entity.User {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return cloneUser(srv.user)
}

func cloneUser(user *entity.User) *entity.User {
	if user == nil {
		return nil
	}
	clone := *user

	return &clone
}
