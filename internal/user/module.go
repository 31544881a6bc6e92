package user

import "github.com/ferdiebergado/devconnector/internal/platform/db"

type Module struct {
	svc     Service
	handler *Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

//nolint:ireturn // other modules depend on the Service contract
func (m *Module) Service() Service {
	return m.svc
}

func NewModule(executor db.Executor) *Module {
	repo := NewRepository(executor)
	svc := NewService(repo)
	handler := NewHandler(svc)
	return &Module{
		svc:     svc,
		handler: handler,
	}
}
