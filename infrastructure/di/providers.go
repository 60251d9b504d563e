package di

import (
	"context"
	"fmt"

	"wayfarer-backend/application/caching"
	"wayfarer-backend/application/commands"
	"wayfarer-backend/application/commands/bus"
	commandhandlers "wayfarer-backend/application/commands/handlers"
	"wayfarer-backend/application/ports"
	"wayfarer-backend/application/queries"
	querybus "wayfarer-backend/application/queries/bus"
	queryhandlers "wayfarer-backend/application/queries/handlers"
	"wayfarer-backend/infrastructure/cache"
	"wayfarer-backend/infrastructure/config"
	"wayfarer-backend/infrastructure/persistence/dynamodb"
	"wayfarer-backend/interfaces/http/rest"
	"wayfarer-backend/interfaces/http/rest/handlers"
	"wayfarer-backend/pkg/auth"
	"wayfarer-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client, or nil when metrics
// are disabled
func ProvideCloudWatchClient(awsCfg aws.Config, cfg *config.Config) *awscloudwatch.Client {
	if !cfg.EnableMetrics {
		return nil
	}
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates the metrics publisher
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	namespace := fmt.Sprintf("Wayfarer/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, cfg.EmailIndex, logger)
}

// ProvideItineraryRepository creates an itinerary repository
func ProvideItineraryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ItineraryRepository {
	return dynamodb.NewItineraryRepository(client, cfg.DynamoDBTable, cfg.EmailIndex, cfg.PublicIndex, logger)
}

// ProvideKeyValueStore selects the cache backend. A Redis connection failure
// is not fatal: the service starts with a no-op store and every cache
// operation behaves as a miss until the next restart.
func ProvideKeyValueStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) ports.KeyValueStore {
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		logger.Info("using in-memory cache backend")
		return cache.NewSoftStore(cache.NewMemoryStore(), logger)

	case config.CacheBackendNone:
		logger.Info("caching disabled")
		return cache.NewNoopStore()

	default:
		store, err := cache.ConnectRedis(ctx, cache.RedisConfig{
			Addr:               cfg.RedisAddr,
			Password:           cfg.RedisPassword,
			DB:                 cfg.RedisDB,
			MaxConnectAttempts: cfg.CacheConnectAttempts,
		}, logger)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache",
				zap.String("addr", cfg.RedisAddr),
				zap.Error(err),
			)
			return cache.NewNoopStore()
		}
		return cache.NewSoftStore(store, logger)
	}
}

// ProvideEntityCache creates the single-entity cache with configured TTLs
func ProvideEntityCache(store ports.KeyValueStore, cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) *caching.EntityCache {
	entityCache := caching.NewEntityCache(store, logger)
	entityCache.SetTTL(caching.KindUser, cfg.UserTTL)
	entityCache.SetTTL(caching.KindItinerary, cfg.ItineraryTTL)
	entityCache.SetMetrics(metrics)
	return entityCache
}

// ProvideQueryCache creates the query-result cache with configured TTLs
func ProvideQueryCache(store ports.KeyValueStore, cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) *caching.QueryCache {
	queryCache := caching.NewQueryCache(store, logger)
	queryCache.SetTTLs(cfg.UserListTTL, cfg.PublicListTTL)
	queryCache.SetMetrics(metrics)
	return queryCache
}

// ProvideInvalidator creates the invalidation coordinator
func ProvideInvalidator(entityCache *caching.EntityCache, queryCache *caching.QueryCache, logger *zap.Logger) *caching.Invalidator {
	return caching.NewInvalidator(entityCache, queryCache, logger)
}

// jwtSecret falls back to a fixed development secret so local runs work
// without configuration. Validate() rejects an empty secret in production.
func jwtSecret(cfg *config.Config) string {
	if cfg.JWTSecret == "" {
		return "development-secret-change-in-production"
	}
	return cfg.JWTSecret
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: jwtSecret(cfg),
		Issuer:    cfg.JWTIssuer,
		Audience:  []string{cfg.JWTAudience},
	})
}

// ProvideJWTGenerator creates the token issuer
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey:  jwtSecret(cfg),
		Issuer:     cfg.JWTIssuer,
		Audience:   []string{cfg.JWTAudience},
		ExpiryTime: cfg.TokenExpiry,
	})
}

// commandHandlerAdapter adapts typed command handlers to the generic
// bus interface
type commandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *commandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with every mutation handler
// registered. Each handler persists first and invalidates caches second,
// so the registration here is the complete list of cache-mutating paths.
func ProvideCommandBus(
	userRepo ports.UserRepository,
	itineraryRepo ports.ItineraryRepository,
	invalidator *caching.Invalidator,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	createHandler := commandhandlers.NewCreateItineraryHandler(itineraryRepo, invalidator, logger)
	commandBus.Register(commands.CreateItineraryCommand{}, &commandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateItineraryCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return createHandler.Handle(ctx, createCmd)
		},
	})

	updateHandler := commandhandlers.NewUpdateItineraryHandler(itineraryRepo, invalidator, logger)
	commandBus.Register(commands.UpdateItineraryCommand{}, &commandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			updateCmd, ok := cmd.(commands.UpdateItineraryCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return updateHandler.Handle(ctx, updateCmd)
		},
	})

	deleteHandler := commandhandlers.NewDeleteItineraryHandler(itineraryRepo, invalidator, logger)
	commandBus.Register(commands.DeleteItineraryCommand{}, &commandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteItineraryCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteHandler.Handle(ctx, deleteCmd)
		},
	})

	addActivityHandler := commandhandlers.NewAddActivityHandler(itineraryRepo, invalidator, logger)
	commandBus.Register(commands.AddActivityCommand{}, &commandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			addCmd, ok := cmd.(commands.AddActivityCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return addActivityHandler.Handle(ctx, addCmd)
		},
	})

	removeActivityHandler := commandhandlers.NewRemoveActivityHandler(itineraryRepo, invalidator, logger)
	commandBus.Register(commands.RemoveActivityCommand{}, &commandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			removeCmd, ok := cmd.(commands.RemoveActivityCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return removeActivityHandler.Handle(ctx, removeCmd)
		},
	})

	registerHandler := commandhandlers.NewRegisterUserHandler(userRepo, logger)
	commandBus.Register(commands.RegisterUserCommand{}, &commandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			regCmd, ok := cmd.(commands.RegisterUserCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return registerHandler.Handle(ctx, regCmd)
		},
	})

	updateProfileHandler := commandhandlers.NewUpdateUserProfileHandler(userRepo, invalidator, logger)
	commandBus.Register(commands.UpdateUserProfileCommand{}, &commandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			profCmd, ok := cmd.(commands.UpdateUserProfileCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return updateProfileHandler.Handle(ctx, profCmd)
		},
	})

	return commandBus
}

// queryHandlerAdapter adapts typed query handlers to the generic bus interface
type queryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *queryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with every read handler registered
func ProvideQueryBus(
	userRepo ports.UserRepository,
	itineraryRepo ports.ItineraryRepository,
	entityCache *caching.EntityCache,
	queryCache *caching.QueryCache,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	getItinerary := queryhandlers.NewGetItineraryHandler(itineraryRepo, entityCache, logger)
	queryBus.Register(queries.GetItineraryQuery{}, &queryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.GetItineraryQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getItinerary.Handle(ctx, q)
		},
	})

	listItineraries := queryhandlers.NewListItinerariesHandler(itineraryRepo, queryCache, logger)
	queryBus.Register(queries.ListItinerariesQuery{}, &queryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.ListItinerariesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listItineraries.Handle(ctx, q)
		},
	})

	listPublic := queryhandlers.NewListPublicItinerariesHandler(itineraryRepo, queryCache, logger)
	queryBus.Register(queries.ListPublicItinerariesQuery{}, &queryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.ListPublicItinerariesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listPublic.Handle(ctx, q)
		},
	})

	getUser := queryhandlers.NewGetUserHandler(userRepo, entityCache, logger)
	queryBus.Register(queries.GetUserQuery{}, &queryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.GetUserQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getUser.Handle(ctx, q)
		},
	})

	return queryBus
}

// ProvideAuthHandler creates the auth HTTP handler
func ProvideAuthHandler(
	commandBus *bus.CommandBus,
	userRepo ports.UserRepository,
	validator *auth.JWTValidator,
	generator *auth.JWTGenerator,
	logger *zap.Logger,
) *handlers.AuthHandler {
	return handlers.NewAuthHandler(commandBus, userRepo, validator, generator, logger)
}

// ProvideUserHandler creates the user HTTP handler
func ProvideUserHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *handlers.UserHandler {
	return handlers.NewUserHandler(commandBus, queryBus, logger)
}

// ProvideItineraryHandler creates the itinerary HTTP handler
func ProvideItineraryHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *handlers.ItineraryHandler {
	return handlers.NewItineraryHandler(commandBus, queryBus, logger)
}

// ProvideRouter assembles the HTTP router. DynamoDB readiness gates /ready;
// the cache never does, because the service is designed to run without it.
func ProvideRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	itineraryHandler *handlers.ItineraryHandler,
	validator *auth.JWTValidator,
	client *awsdynamodb.Client,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	router := rest.NewRouter(authHandler, userHandler, itineraryHandler, validator, cfg.EnableCORS, logger)
	router.AddReadyCheck("dynamodb", func(ctx context.Context) error {
		_, err := client.DescribeTable(ctx, &awsdynamodb.DescribeTableInput{
			TableName: aws.String(cfg.DynamoDBTable),
		})
		return err
	})
	router.UseMetrics(metrics)
	return router
}
