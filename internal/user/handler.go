package user

import (
	"net/http"
	"time"

	"github.com/ferdiebergado/devconnector/internal/pkg/web"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// UserData is the public view of a user. It never carries the password hash.
type UserData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ListResponse struct {
	Users []UserData `json:"users"`
}

// List returns every user, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]UserData, 0, len(users))
	for _, u := range users {
		data = append(data, *ToData(&u))
	}

	web.RespondOK(w, nil, &ListResponse{Users: data})
}

func ToData(u *User) *UserData {
	return &UserData{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}
