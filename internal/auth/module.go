package auth

import (
	"net/http"

	"github.com/ferdiebergado/devconnector/internal/provider"
	"github.com/ferdiebergado/devconnector/internal/user"
)

type Module struct {
	svc     Service
	handler *Handler
	guard   func(http.Handler) http.Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

//nolint:ireturn // callers depend on the Service contract
func (m *Module) Service() Service {
	return m.svc
}

// Guard returns the middleware protecting authenticated routes.
func (m *Module) Guard() func(http.Handler) http.Handler {
	return m.guard
}

func NewModule(p *provider.Provider, users user.Service) *Module {
	issuer := NewIssuer(p.Signer, p.Cfg.JWT.TTL)
	svc := NewService(users, p.Hasher, issuer, p.TxMgr)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
		guard:   RequireToken(p.Signer, p.Cfg.JWT.Header),
	}
}
