package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadapter "github.com/lucasftorres/patrimonio-backend/internal/adapter/http"
	"github.com/lucasftorres/patrimonio-backend/internal/adapter/repository/postgres"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/balancesheet"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/goal"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/investment"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/portfolio"
	"github.com/lucasftorres/patrimonio-backend/internal/usecase/valuation"
)

const defaultAPIToken = "dev-token"

func main() {
	// Load .env file if it exists (local dev)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// 1. Setup Database
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := envOr("DB_USER", "postgres")
		password := envOr("DB_PASSWORD", "postgres")
		dbname := envOr("DB_NAME", "patrimonio")

		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	db, err := postgres.NewDB(dbConnStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed")

	// 2. Initialize Repositories (Postgres)
	rateRepo := postgres.NewRateSeriesRepository(db)
	investmentRepo := postgres.NewInvestmentRepository(db)
	snapshotRepo := postgres.NewSnapshotRepository(db)
	accountRepo := postgres.NewBankAccountRepository(db)
	vaultRepo := postgres.NewVaultRepository(db)
	goalRepo := postgres.NewGoalRepository(db)
	patrimonyRepo := postgres.NewPatrimonyRepository(db)
	creditCardRepo := postgres.NewCreditCardRepository(db)

	// 3. Initialize Services (Use Cases)
	valuationService := valuation.NewService(rateRepo)
	investmentService := investment.NewService(investmentRepo, snapshotRepo, accountRepo, valuationService)
	portfolioService := portfolio.NewService(investmentRepo, snapshotRepo)
	goalService := goal.NewService(goalRepo, vaultRepo, investmentRepo)
	balanceSheetService := balancesheet.NewService(accountRepo, investmentRepo, patrimonyRepo, creditCardRepo)

	// 4. Setup Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				log.Printf("%d %s", v.Status, v.URI)
			} else {
				log.Printf("%d %s - %v", v.Status, v.URI, v.Error)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	apiToken := envOr("API_TOKEN", defaultAPIToken)
	e.Use(httpadapter.TokenAuth(apiToken))

	handler := httpadapter.NewHandler(
		investmentService,
		valuationService,
		portfolioService,
		goalService,
		balanceSheetService,
		investmentRepo,
		rateRepo,
	)
	handler.Register(e)

	// 5. Start server
	httpPort := envOr("PORT", "8080")
	go func() {
		log.Printf("HTTP server listening on :%s", httpPort)
		if err := e.Start(":" + httpPort); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(e)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(e *echo.Echo) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Failed to shut down server cleanly: %v", err)
	}
	log.Println("HTTP server stopped")
}
