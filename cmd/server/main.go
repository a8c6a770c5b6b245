package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	_ "github.com/gymflow/gymflow/docs/swagger"
	"github.com/gymflow/gymflow/internal/api"
	v1 "github.com/gymflow/gymflow/internal/api/v1"
	"github.com/gymflow/gymflow/internal/cache"
	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/domain/branch"
	"github.com/gymflow/gymflow/internal/domain/catalog"
	"github.com/gymflow/gymflow/internal/domain/invoice"
	"github.com/gymflow/gymflow/internal/domain/member"
	"github.com/gymflow/gymflow/internal/domain/staff"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/postgres"
	"github.com/gymflow/gymflow/internal/repository"
	"github.com/gymflow/gymflow/internal/service"
	"github.com/gymflow/gymflow/internal/validator"
)

// @title GymFlow API
// @version 1.0
// @description Invoice and sales reporting service for fitness studios
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key

func init() {
	// The whole application runs in UTC
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,

			cache.NewInMemoryCache,

			postgres.NewDB,
			provideDBClient,

			// Repositories
			repository.NewInvoiceRepository,
			repository.NewBranchSequenceProvider,
			repository.NewMemberRepository,
			repository.NewStaffRepository,
			repository.NewCatalogRepository,
			repository.NewBranchRepository,

			// Services
			provideServiceParams,
			service.NewInvoiceService,
			service.NewReportService,

			// API
			v1.NewInvoiceHandler,
			v1.NewReportHandler,
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideDBClient(db *postgres.DB) postgres.IClient {
	return db
}

func provideServiceParams(
	log *logger.Logger,
	cfg *config.Configuration,
	db postgres.IClient,
	invoiceRepo invoice.Repository,
	seqProvider invoice.SequenceProvider,
	memberRepo member.Repository,
	staffRepo staff.Repository,
	catalogRepo catalog.Repository,
	branchRepo branch.Repository,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:      log,
		Config:      cfg,
		DB:          db,
		InvoiceRepo: invoiceRepo,
		SeqProvider: seqProvider,
		MemberRepo:  memberRepo,
		StaffRepo:   staffRepo,
		CatalogRepo: catalogRepo,
		BranchRepo:  branchRepo,
	}
}

func provideHandlers(
	invoiceHandler *v1.InvoiceHandler,
	reportHandler *v1.ReportHandler,
) api.Handlers {
	return api.Handlers{
		Invoice: invoiceHandler,
		Report:  reportHandler,
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			db.Close()
			return nil
		},
	})
}
