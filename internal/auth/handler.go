package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/devconnector/internal/pkg/message"
	"github.com/ferdiebergado/devconnector/internal/pkg/web"
	"github.com/ferdiebergado/devconnector/internal/user"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r RegisterRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", r.Name),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

// SessionResponse is the body of a successful register or login.
type SessionResponse struct {
	Token string         `json:"token"`
	User  *user.UserData `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[RegisterRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	session, err := h.svc.Register(r.Context(), RegisterParams(req))
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			web.RespondConflict(w, err, message.UserExists, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.Registered
	web.RespondCreated(w, &msg, newSessionResponse(session))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[LoginRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	session, err := h.svc.Login(r.Context(), LoginParams(req))
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			web.RespondUnauthorized(w, err, message.InvalidCredentials, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.LoggedIn
	web.RespondOK(w, &msg, newSessionResponse(session))
}

// Me returns the public record of the user the credential belongs to.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.NotAuthorized, nil)
		return
	}

	u, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			web.RespondNotFound(w, err, message.UserNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, user.ToData(u))
}

func newSessionResponse(s *Session) *SessionResponse {
	return &SessionResponse{
		Token: s.Token,
		User:  user.ToData(&s.User),
	}
}
