package contracts

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc struct {
	Dependency string
	Fn         func(ctx context.Context) error
}

func (p PingFunc) Name() string {
	return p.Dependency
}

func (p PingFunc) Ping(ctx context.Context) error {
	return p.Fn(ctx)
}
