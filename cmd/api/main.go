package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"resto-erp-ws/internal/access"
	"resto-erp-ws/internal/config"
	"resto-erp-ws/internal/event"
	"resto-erp-ws/internal/handler"
	"resto-erp-ws/internal/middleware"
	"resto-erp-ws/internal/model"
	"resto-erp-ws/internal/realtime"
	"resto-erp-ws/internal/repository"
	"resto-erp-ws/internal/service"
	"resto-erp-ws/internal/ws"
	"resto-erp-ws/pkg/database"
	"resto-erp-ws/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const defaultAdminEmail = "admin@resto.local"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load config (.env + environment)
	cfg := config.Load()

	// 2. Setup Database. A missing or unreachable backend is not fatal: the
	// server still boots and reports is_configured=false.
	db, dsn, triggers, configErr := connectBackend(cfg)
	var repos *repository.Repositories
	if configErr == nil {
		repos = repository.NewRepositories(db)
		seedAdmin(ctx, repos.Users)
	} else {
		log.Printf("Warning: running without backend: %v", configErr)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	// 4. Change feed and event emitters
	var (
		feed     realtime.ChangeFeed
		pgFeed   *realtime.PostgresFeed
		emitters []event.Emitter
	)
	if triggers {
		pgFeed = realtime.NewPostgresFeed(dsn, model.AllTables())
		feed = pgFeed
	} else {
		local := realtime.NewLocalFeed()
		feed = local
		emitters = append(emitters, local)
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := event.DialKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Printf("Warning: kafka disabled: %v", err)
		} else {
			defer kafka.Close()
			emitters = append(emitters, kafka)
		}
	}
	notifier := service.NewNotifier(event.Multi(emitters...), wsHub)

	// 5. Realtime syncer
	syncer := realtime.New(realtime.Options{
		Repos:        repos,
		ConfigErr:    configErr,
		Feed:         feed,
		Broadcaster:  wsHub,
		FetchTimeout: cfg.Realtime.FetchTimeout,
	})
	if pgFeed != nil {
		pgFeed.OnListen = syncer.Trigger
		go pgFeed.Run(ctx)
	}
	go func() {
		if err := syncer.Start(ctx); err != nil {
			log.Printf("Warning: realtime subscription failed: %v", err)
		}
	}()

	// 6. Dependency Injection (Wiring Layers). Without a backend the services
	// get empty repositories; RequireBackend keeps requests away from them.
	r := repos
	if r == nil {
		r = &repository.Repositories{}
	}
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)

	financeService := service.NewFinanceService(r.CashFlow, r.Outlets, syncer, notifier)

	outletHandler := handler.NewOutletHandler(service.NewOutletService(r.Outlets, notifier))
	employeeHandler := handler.NewEmployeeHandler(service.NewEmployeeService(r.Employees, r.Outlets, notifier))
	productHandler := handler.NewProductHandler(service.NewProductService(r.Products, notifier))
	ingredientHandler := handler.NewIngredientHandler(service.NewIngredientService(r.Ingredients, r.Outlets, notifier))
	posHandler := handler.NewPOSHandler(service.NewPOSService(r.Sales, r.Products, r.Promotions, r.Outlets, notifier))
	purchasingHandler := handler.NewPurchasingHandler(service.NewPurchasingService(r.Suppliers, r.PurchaseOrders, r.Outlets, notifier))
	distributionHandler := handler.NewDistributionHandler(service.NewDistributionService(r.Distributions, r.Outlets, notifier))
	operationsHandler := handler.NewOperationsHandler(service.NewOperationsService(r.DailyChecklists, r.ShiftReports, r.Outlets, notifier))
	recruitmentHandler := handler.NewRecruitmentHandler(service.NewRecruitmentService(r.Candidates, r.Outlets, notifier))
	promotionHandler := handler.NewPromotionHandler(service.NewPromotionService(r.Promotions, notifier))
	maintenanceHandler := handler.NewMaintenanceHandler(service.NewMaintenanceService(r.Assets, r.Outlets, notifier))
	financeHandler := handler.NewFinanceHandler(financeService)
	userHandler := handler.NewUserHandler(service.NewUserService(r.Users, r.Outlets, notifier))
	snapshotHandler := handler.NewSnapshotHandler(syncer)
	dashHandler := handler.NewDashboardHandler(service.NewDashboardService(syncer, financeService))
	navHandler := handler.NewNavigationHandler()

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Resto ERP Sync v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 8. Routes
	api := app.Group("/api/v1")

	// Shared routes: any authenticated role
	protected := api.Group("", middleware.RequireAuth(tokens, r.Users))
	protected.Get("/snapshot", snapshotHandler.GetSnapshot)
	protected.Post("/snapshot/refresh", snapshotHandler.Refresh)
	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/navigation/check", navHandler.Check)
	protected.Get("/navigation/routes", navHandler.Routes)

	// Feature routes, one group per route pattern
	guard := access.Guard("/api/v1")
	backend := handler.RequireBackend(configErr)
	module := func(pattern string) fiber.Router {
		return protected.Group(pattern, backend, guard)
	}

	outlets := module("/outlets")
	outlets.Post("/", outletHandler.CreateOutlet)
	outlets.Put("/:id", outletHandler.UpdateOutlet)
	outlets.Delete("/:id", outletHandler.DeleteOutlet)

	hr := module("/hr")
	hr.Post("/employees", employeeHandler.CreateEmployee)
	hr.Put("/employees/:id/status", employeeHandler.SetStatus)

	menu := module("/menu")
	menu.Post("/products", productHandler.CreateProduct)
	menu.Put("/products/:id", productHandler.UpdateProduct)

	inventory := module("/inventory")
	inventory.Post("/ingredients", ingredientHandler.CreateIngredient)
	inventory.Put("/ingredients/:id/stock", ingredientHandler.UpdateStock)

	pos := module("/pos")
	pos.Post("/checkout", posHandler.Checkout)

	purchasing := module("/pembelian")
	purchasing.Post("/suppliers", purchasingHandler.CreateSupplier)
	purchasing.Post("/orders", purchasingHandler.CreateOrder)
	purchasing.Post("/orders/:id/approve", purchasingHandler.Approve)
	purchasing.Post("/orders/:id/reject", purchasingHandler.Reject)

	distribution := module("/distribusi")
	distribution.Post("/transfers", distributionHandler.CreateTransfer)
	distribution.Post("/transfers/:id/deliver", distributionHandler.Deliver)

	operations := module("/operasional")
	operations.Post("/checklists", operationsHandler.CreateChecklist)
	operations.Post("/checklists/:id/toggle", operationsHandler.ToggleChecklist)
	operations.Post("/shifts", operationsHandler.OpenShift)
	operations.Post("/shifts/:id/close", operationsHandler.CloseShift)

	recruitment := module("/rekrutmen")
	recruitment.Post("/candidates", recruitmentHandler.CreateCandidate)
	recruitment.Put("/candidates/:id/status", recruitmentHandler.Advance)

	promo := module("/promo")
	promo.Post("/promotions", promotionHandler.CreatePromotion)

	maintenance := module("/maintenance")
	maintenance.Post("/assets", maintenanceHandler.CreateAsset)
	maintenance.Put("/assets/:id/status", maintenanceHandler.SetStatus)

	finance := module("/keuangan")
	finance.Post("/cash-flow", financeHandler.CreateCashFlow)
	finance.Get("/summary", financeHandler.Summary)
	finance.Get("/export", financeHandler.Export)

	users := module("/access")
	users.Post("/users", userHandler.CreateUser)
	users.Put("/users/:id/role", userHandler.SetRole)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}, middleware.RequireSocketAuth(tokens, r.Users))
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !wsHub.Join(c) {
			return
		}
		defer wsHub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down server...")
	syncer.Close()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exited")
}

// connectBackend opens the database and prepares the schema. triggers
// reports whether change notifications come from the database itself.
func connectBackend(cfg *config.Config) (db *gorm.DB, dsn string, triggers bool, err error) {
	dsn, err = cfg.Database.DSN()
	if err != nil {
		return nil, "", false, err
	}
	db, err = database.ConnectDB(dsn)
	if err != nil {
		return nil, "", false, fmt.Errorf("backend unreachable: %w", err)
	}

	if cfg.Database.Auto {
		if err := repository.Migrate(db); err != nil {
			log.Printf("Warning: migration failed: %v", err)
		}
	}
	if cfg.Realtime.Triggers {
		if err := repository.InstallChangeTriggers(db); err != nil {
			log.Printf("Warning: change triggers unavailable, using in-process feed: %v", err)
		} else {
			triggers = true
		}
	}
	return db, dsn, triggers, nil
}

// seedAdmin creates the first AdminPusat account if it does not exist.
func seedAdmin(ctx context.Context, users repository.UserRepository) {
	_, err := users.FindBy(ctx, "email", defaultAdminEmail)
	if err == nil {
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Printf("Warning: failed to look up admin user: %v", err)
		return
	}

	admin := &model.User{
		Name:  "Admin Pusat",
		Email: defaultAdminEmail,
		Role:  model.RoleAdminPusat,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Printf("Warning: failed to create admin user: %v", err)
		return
	}
	log.Printf("Admin user created: %s (AdminPusat), mint a token with: go run ./cmd/issue-token -email %s", defaultAdminEmail, defaultAdminEmail)
}
