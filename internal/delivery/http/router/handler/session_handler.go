package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionView describes the signed-in state.
type SessionView struct {
	State         string       `json:"state"`
	Authenticated bool         `json:"authenticated"`
	User          *entity.User `json:"user,omitempty"`
}

// SessionHandler exposes the session store.
type SessionHandler struct {
	session usecase.SessionUsecase
	logger  *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(session usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		session: session,
		logger:  logger,
	}
}

// GetSession returns the current session state.
func (h *SessionHandler) GetSession(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.view(), "")
}

// Login handles the login request.
func (h *SessionHandler) Login(c echo.Context) error {
	var input service.Credentials
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if _, err := h.session.Login(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.view(), "Login successful")
}

// Register handles the sign-up request.
func (h *SessionHandler) Register(c echo.Context) error {
	var input service.Registration
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if _, err := h.session.Register(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, h.view(), "Registration successful")
}

// Logout ends the session.
func (h *SessionHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())

	return response.Success(c, http.StatusOK, h.view(), "Logout successful")
}

func (h *SessionHandler) view() *SessionView {
	return &SessionView{
		State:         h.session.State().String(),
		Authenticated: h.session.IsAuthenticated(),
		User:          h.session.CurrentUser(),
	}
}
