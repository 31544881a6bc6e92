package profile

import (
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/devconnector/internal/auth"
	"github.com/ferdiebergado/devconnector/internal/pkg/message"
	"github.com/ferdiebergado/devconnector/internal/pkg/web"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type SaveRequest struct {
	Status   string `json:"status" validate:"required,max=500"`
	Skills   Skills `json:"skills" validate:"required,min=1"`
	Bio      string `json:"bio" validate:"max=1000"`
	Website  string `json:"website" validate:"omitempty,http_url"`
	Twitter  string `json:"twitter" validate:"omitempty,http_url"`
	LinkedIn string `json:"linkedin" validate:"omitempty,http_url"`
	GitHub   string `json:"github" validate:"omitempty,http_url"`
}

type Owner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type Data struct {
	ID        string    `json:"id"`
	User      Owner     `json:"user"`
	Status    string    `json:"status"`
	Skills    []string  `json:"skills"`
	Bio       string    `json:"bio,omitempty"`
	Website   string    `json:"website,omitempty"`
	Social    Social    `json:"social"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Mine returns the caller's profile.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.NotAuthorized, nil)
		return
	}

	p, err := h.svc.Mine(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.ProfileNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, toData(p))
}

// Save creates or updates the caller's profile.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserFromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.NotAuthorized, nil)
		return
	}

	req, err := web.ParamsFromContext[SaveRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := SaveParams{
		UserID:  userID,
		Status:  req.Status,
		Skills:  req.Skills,
		Bio:     req.Bio,
		Website: req.Website,
		Social: Social{
			Twitter:  req.Twitter,
			LinkedIn: req.LinkedIn,
			GitHub:   req.GitHub,
		},
	}

	p, err := h.svc.Save(r.Context(), params)
	if err != nil {
		if errors.Is(err, ErrNoUser) {
			web.RespondNotFound(w, err, message.UserNotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := message.ProfileSaved
	web.RespondOK(w, &msg, toData(p))
}

func toData(p *Profile) *Data {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return &Data{
		ID: p.ID,
		User: Owner{
			ID:     p.UserID,
			Name:   p.UserName,
			Avatar: p.UserAvatar,
		},
		Status:    p.Status,
		Skills:    skills,
		Bio:       p.Bio,
		Website:   p.Website,
		Social:    p.Social,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
