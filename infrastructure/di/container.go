package di

import (
	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/commands/bus"
	"wayfarer-backend/application/ports"
	querybus "wayfarer-backend/application/queries/bus"
	"wayfarer-backend/infrastructure/config"
	"wayfarer-backend/interfaces/http/rest"
	"wayfarer-backend/pkg/auth"
	"wayfarer-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	UserRepo      ports.UserRepository
	ItineraryRepo ports.ItineraryRepository
	KVStore       ports.KeyValueStore
	EntityCache   *caching.EntityCache
	QueryCache    *caching.QueryCache
	Invalidator   *caching.Invalidator
	CommandBus    *bus.CommandBus
	QueryBus      *querybus.QueryBus
	JWTValidator  *auth.JWTValidator
	JWTGenerator  *auth.JWTGenerator
	Metrics       *observability.Metrics
	Router        *rest.Router
}

// Close releases held resources. Safe to call on a partially built container.
func (c *Container) Close() {
	if c.KVStore != nil {
		if err := c.KVStore.Close(); err != nil && c.Logger != nil {
			c.Logger.Warn("failed to close cache store", zap.Error(err))
		}
	}
	if c.Logger != nil {
		c.Logger.Sync()
	}
}
