package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rupeelog/rupeelog/internal/domain/categorization"
	"github.com/rupeelog/rupeelog/internal/domain/expense"
	expensehandler "github.com/rupeelog/rupeelog/internal/domain/expense/handler"
	"github.com/rupeelog/rupeelog/internal/domain/statement/extractor"
	statementhandler "github.com/rupeelog/rupeelog/internal/domain/statement/handler"
	statementservice "github.com/rupeelog/rupeelog/internal/domain/statement/service"
	"github.com/rupeelog/rupeelog/pkg/config"
	"github.com/rupeelog/rupeelog/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	ExpenseRepo expense.Repository

	// Services
	Categorizer      *categorization.Categorizer
	Extractor        *extractor.Extractor
	ExpenseService   *expense.Service
	StatementService *statementservice.Service

	// Handlers
	ExpenseHandler   *expensehandler.ExpenseHandler
	StatementHandler *statementhandler.StatementHandler
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	deps.initRepositories()
	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase(ctx context.Context) error {
	database, err := db.New(ctx, d.Config.Database, d.Logger)
	if err != nil {
		return err
	}
	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (d *Dependencies) initRepositories() {
	d.ExpenseRepo = expense.NewPostgresRepository(d.DB.Pool)
	d.Logger.Info("repositories initialized")
}

func (d *Dependencies) initServices() {
	d.Categorizer = categorization.New()
	d.Extractor = extractor.New(d.Logger, d.Config.Upload.OCRTimeout)

	d.ExpenseService = expense.NewService(d.ExpenseRepo, d.Logger)
	d.StatementService = statementservice.NewService(d.ExpenseRepo, d.Extractor, d.Categorizer, d.Logger)

	d.Logger.Info("services initialized")
}

func (d *Dependencies) initHandlers() {
	d.ExpenseHandler = expensehandler.NewExpenseHandler(d.ExpenseService, d.Logger)
	d.StatementHandler = statementhandler.NewStatementHandler(d.StatementService, d.Logger, d.Config.Upload.Dir)

	d.Logger.Info("handlers initialized")
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.DB != nil {
		d.DB.Close()
	}
	d.Logger.Info("cleanup completed")
}
