package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/satriadi/user-service/config"
	"github.com/satriadi/user-service/pkg/helpers"
)

// Container bundles the infrastructure components constructed in main so they
// can be handed to the router wiring explicitly. There is no ambient registry;
// everything a module needs arrives through this struct.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Rabbit *helpers.RabbitPublisher // nil when notification publishing is disabled
}

// Close releases every component the container owns. Safe to call once during
// shutdown; nil components are skipped.
func (c *Container) Close() {
	if c.Rabbit != nil {
		c.Rabbit.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
