package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/notification"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/cache"
	"storefront/pkg/rabbitmq"
)

const defaultMongoDatabase = "ecommerce"

// App owns the HTTP server and every long-lived connection behind it.
type App struct {
	Fiber   *fiber.App
	logger  *zap.Logger
	closers []func(context.Context) error
}

// NewApp connects the order store, cache, broker and mail transport named in
// cfg and wires the HTTP routes. ctx bounds background consumers.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	app := &App{logger: logger}
	defer func() {
		if err != nil {
			if closeErr := app.closeAll(context.Background()); closeErr != nil {
				logger.Warn("cleanup after failed start", zap.Error(closeErr))
			}
		}
	}()

	orderRepo, err := app.openOrderStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	if cfg.Cache.RedisAddr != "" {
		c, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, "storefront")
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func(context.Context) error { return c.Close() })
		orderRepo = repositories.NewCachedOrderRepository(orderRepo, c, cfg.Cache.TTL, logger)
		logger.Info("order cache enabled", zap.String("addr", cfg.Cache.RedisAddr))
	}

	dispatcher, err := notification.NewDispatcher(cfg.Mail, logger)
	if err != nil {
		return nil, err
	}

	var notifier services.Notifier = dispatcher
	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   "orders",
			Queue:      "order_notifications",
			BindingKey: notification.OrderCreatedKey,
		}, logger)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func(context.Context) error { return mq.Close() })

		if err := mq.Consume(ctx, notification.EventHandler(ctx, dispatcher)); err != nil {
			return nil, err
		}
		notifier = notification.NewQueueNotifier(mq, logger)
	}

	orderService := services.NewOrderService(orderRepo, notifier, logger)
	productService := services.NewProductService(repositories.NewMemoryProductRepository(repositories.DefaultCatalog()))

	app.Fiber = newFiberApp(cfg.App, logger,
		handlers.NewProductHandler(productService, logger),
		handlers.NewOrderHandler(orderService, logger),
		handlers.NewCheckoutHandler(orderService, productService, checkout.NewValidator(time.Now), logger),
	)
	return app, nil
}

type routeRegistrar interface {
	RegisterRoutes(router fiber.Router)
}

func newFiberApp(cfg config.AppConfig, logger *zap.Logger, routes ...routeRegistrar) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "storefront",
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(logger))
	app.Use(middleware.Timeout(cfg.RequestTimeout))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	for _, r := range routes {
		r.RegisterRoutes(app)
	}
	return app
}

func (a *App) openOrderStore(ctx context.Context, cfg config.StoreConfig) (repositories.OrderRepository, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return a.openMongo(ctx, cfg.MongoURI)
	case config.DriverPostgres:
		return a.openGORM(postgres.Open(cfg.DSN))
	case config.DriverSQLite:
		return a.openGORM(sqlite.Open(cfg.DSN))
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

func (a *App) openMongo(ctx context.Context, uri string) (repositories.OrderRepository, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("parsing MONGODB_URI: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = defaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	a.closers = append(a.closers, client.Disconnect)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	a.logger.Info("mongodb connected", zap.String("database", dbName))
	return repositories.NewMongoOrderRepository(client.Database(dbName)), nil
}

func (a *App) openGORM(dialector gorm.Dialector) (repositories.OrderRepository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dialector.Name(), err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting %s connection pool: %w", dialector.Name(), err)
	}
	a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })

	repo := repositories.NewGORMOrderRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}

	a.logger.Info("relational order store ready", zap.String("driver", dialector.Name()))
	return repo, nil
}

// Shutdown stops accepting requests and then releases connections in
// reverse order of acquisition.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Fiber != nil {
		if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
		}
	}
	if err := a.closeAll(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeAll(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
