package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	v1 "github.com/gymflow/gymflow/internal/api/v1"
	"github.com/gymflow/gymflow/internal/rest/middleware"
)

type Handlers struct {
	Invoice *v1.InvoiceHandler
	Report  *v1.ReportHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(
		middleware.CORSMiddleware,
		middleware.RequestIDMiddleware,
		middleware.IdentityMiddleware,
		middleware.ErrorHandler(),
	)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", v1.HealthHandler)

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("/:id/submit", handlers.Invoice.SubmitInvoice)
		invoices.POST("/:id/payments", handlers.Invoice.AddPayment)
		invoices.POST("/:id/cancel", handlers.Invoice.CancelInvoice)
		invoices.PUT("/:id/notes", handlers.Invoice.UpdateNotes)
	}

	reports := router.Group("/reports")
	{
		reports.GET("/sales", handlers.Report.GetSalesBreakdown)
	}
}
