package router

import (
	userapp "github.com/satriadi/user-service/internal/application"
	"github.com/satriadi/user-service/internal/container"
	pginfra "github.com/satriadi/user-service/internal/infrastructure/postgres"
	rmq "github.com/satriadi/user-service/internal/infrastructure/rabbitmq"
	handlers "github.com/satriadi/user-service/internal/interface/http"
	"github.com/satriadi/user-service/internal/router/modules"
)

// InitModules builds the user module's dependency chain from the container and
// registers all modules with the router registry. Called once during startup.
func InitModules(r *Registry, c *container.Container) {
	repo := pginfra.NewUserRepository(c.Pool)

	var notifier userapp.Notifier
	if c.Rabbit != nil {
		notifier = rmq.NewNotifier(c.Rabbit)
	}

	service := userapp.NewService(repo, notifier, c.Logger)
	handler := handlers.NewUserHandler(service, c.Logger)

	r.Add(modules.NewUserModule(handler, c.Redis))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
