package profile

import "github.com/ferdiebergado/devconnector/internal/platform/db"

type Module struct {
	handler *Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func NewModule(executor db.Executor) *Module {
	repo := NewRepository(executor)
	return &Module{handler: NewHandler(NewService(repo))}
}
