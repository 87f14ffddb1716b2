package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "brevo-connector/internal/common/api"
	"brevo-connector/internal/config"
	"brevo-connector/internal/database"
	"brevo-connector/internal/features/contact"
	"brevo-connector/internal/features/lead"
	"brevo-connector/internal/features/list"
	"brevo-connector/internal/features/mapping"
	"brevo-connector/internal/features/settings"
	"brevo-connector/internal/features/sync"
	"brevo-connector/internal/features/synclog"
	"brevo-connector/internal/features/webhook"
	"brevo-connector/internal/logger"
	"brevo-connector/internal/middleware"
	"brevo-connector/pkg/utils"

	"brevo-connector/internal/brevo"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for i, route := range routes {
		log.Printf("Setting up route %d: %T\n", i+1, route)
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	contactRepo contact.ContactRepository,
	mappingRepo mapping.FieldMappingRepository,
	listRepo list.ListRepository,
	leadRepo lead.LeadRepository,
	logRepo synclog.SyncLogRepository,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				// Use a background context with timeout for index creation
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := contactRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure contact indexes: %v", err)
				}
				if err := mappingRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure mapping indexes: %v", err)
				}
				if err := listRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure list indexes: %v", err)
				}
				if err := leadRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure lead indexes: %v", err)
				}
				if err := logRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure sync log indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

// SeedDefaults makes sure the settings record and the predefined field
// mappings exist before the first sync runs.
func SeedDefaults(lc fx.Lifecycle, settingsRepo settings.SettingsRepository, mappings mapping.MappingService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := settingsRepo.EnsureDefaults(ctx); err != nil {
				return err
			}
			seeded, err := mappings.SeedPredefined(ctx)
			if err != nil {
				return err
			}
			if seeded > 0 {
				log.Printf("Seeded %d predefined field mappings\n", seeded)
			}
			return nil
		},
	})
}

// StartScheduler wires the periodic sync into the app lifecycle and
// registers it as the settings interval listener.
func StartScheduler(lc fx.Lifecycle, scheduler *sync.Scheduler, settingsService settings.SettingsService) {
	settingsService.SetIntervalListener(scheduler.Reschedule)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Brevo API client
			brevo.NewClient,

			// Initialize Repository
			contact.NewContactRepository,
			mapping.NewFieldMappingRepository,
			list.NewListRepository,
			lead.NewLeadRepository,
			settings.NewSettingsRepository,
			synclog.NewSyncLogRepository,

			mapping.NewMapper,
			synclog.NewSyncLogService,
			mapping.NewMappingService,
			list.NewListService,
			lead.NewLeadService,
			contact.NewReconciler,
			contact.NewContactService,
			settings.NewSettingsService,
			sync.NewSyncService,
			sync.NewScheduler,
			func(reconciler *contact.Reconciler, contacts contact.ContactRepository, lists list.ListService, leads lead.LeadService, logs synclog.SyncLogService, logger *zap.Logger, cfg *config.Config) webhook.WebhookService {
				return webhook.NewWebhookService(reconciler, contacts, lists, leads, logs, logger, cfg.WebhookSecret)
			},

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(c *brevo.Client) sync.BrevoAPI { return c },
			func(c *brevo.Client) contact.RemoteDeleter { return c },
			func(c *brevo.Client) settings.ConnectionTester { return c },
			func(c *brevo.Client) mapping.AttributeSource { return c },
			func(r mapping.FieldMappingRepository) contact.MappingSource { return r },
			func(s list.ListService) contact.ListResolver { return s },

			// Initialize Controller
			contact.NewContactController,
			mapping.NewMappingController,
			list.NewListController,
			lead.NewLeadController,
			settings.NewSettingsController,
			sync.NewSyncController,
			synclog.NewSyncLogController,
			webhook.NewWebhookController,

			// Initialize API Routes
			AsRoute(contact.NewContactApi),
			AsRoute(mapping.NewMappingApi),
			AsRoute(list.NewListApi),
			AsRoute(lead.NewLeadApi),
			AsRoute(settings.NewSettingsApi),
			AsRoute(sync.NewSyncApi),
			AsRoute(synclog.NewSyncLogApi),
			AsRoute(webhook.NewWebhookApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			SeedDefaults,
			StartScheduler,
			InitializeIndexes,
		),
	)

	app.Run()
}
