package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"playpoin/controllers/admin"
	"playpoin/controllers/auth"
	"playpoin/controllers/play"
	"playpoin/controllers/public"
	"playpoin/controllers/withdraw"
	"playpoin/middlewares"
	"playpoin/services"
)

// Deps bundles everything the handlers need. Assembled once in main.
type Deps struct {
	DB       *gorm.DB
	Tokens   *services.TokenService
	Guard    services.RateGuard
	Sessions *services.SessionManager
	Ledger   *services.Ledger
	Gate     *services.WithdrawGate
}

func Setup(app *fiber.App, d *Deps) {
	authHandler := auth.NewHandler(d.DB, d.Tokens, d.Guard)
	playHandler := play.NewHandler(d.DB, d.Sessions)
	withdrawHandler := withdraw.NewHandler(d.Gate, d.Ledger)
	adminHandler := admin.NewHandler(d.DB, d.Gate, d.Ledger)

	app.Get("/health", public.Health)
	app.Get("/stats/live", public.LandingStats)

	authroutes := app.Group("/auth", middlewares.RateLimit(d.Guard))
	authroutes.Post("/register", authHandler.Register)
	authroutes.Post("/login", authHandler.Login)

	playroutes := app.Group("/play",
		middlewares.UserAuth(d.DB, d.Tokens),
		middlewares.RateLimit(d.Guard),
	)
	playroutes.Get("/games", playHandler.ListGames)
	playroutes.Post("/start", playHandler.StartSession)
	playroutes.Post("/heartbeat", playHandler.Heartbeat)
	playroutes.Post("/pause", playHandler.PauseSession)
	playroutes.Post("/resume", playHandler.ResumeSession)
	playroutes.Post("/end", playHandler.EndSession)
	playroutes.Get("/status", playHandler.EarningStatus)

	withdrawroutes := app.Group("/withdraw",
		middlewares.UserAuth(d.DB, d.Tokens),
		middlewares.RateLimit(d.Guard),
	)
	withdrawroutes.Post("/request", withdrawHandler.Request)
	withdrawroutes.Get("/list", withdrawHandler.List)
	withdrawroutes.Get("/transactions", withdrawHandler.Transactions)

	adminroutes := app.Group("/admin",
		middlewares.UserAuth(d.DB, d.Tokens),
		middlewares.AdminOnly(),
	)
	adminroutes.Get("/users", adminHandler.ListUsers)
	adminroutes.Post("/users/:id/status", adminHandler.SetUserStatus)
	adminroutes.Get("/users/:id/transactions", adminHandler.UserTransactions)
	adminroutes.Get("/games", adminHandler.ListGames)
	adminroutes.Post("/games", adminHandler.CreateGame)
	adminroutes.Post("/games/:id", adminHandler.UpdateGame)
	adminroutes.Get("/withdrawals", adminHandler.ListWithdrawals)
	adminroutes.Post("/withdrawals/:id/resolve", adminHandler.ResolveWithdrawal)
}
