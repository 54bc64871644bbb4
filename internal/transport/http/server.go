package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "docstore-rag/internal/app"
	"docstore-rag/internal/bootstrap"
	"docstore-rag/internal/pkg/extract"
	"docstore-rag/internal/platform/rabbitmq"
	"docstore-rag/internal/repository"
	"docstore-rag/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	docRepo := repository.NewDocumentRepository(app.Postgres)
	chunkRepo := repository.NewChunkRepository(app.Postgres)
	pages := extract.NewWebPageFetcher(15 * time.Second)
	notifier := rabbitmq.NewIngestEventPublisher(app.MQConn, app.Config.RabbitMQ.IngestEventQueue)

	ingestService := appsvc.NewIngestService(
		docRepo,
		chunkRepo,
		app.Embedder,
		pages,
		notifier,
		app.Config.Chunking.Size,
		app.Config.Chunking.Overlap,
	)
	queryService := appsvc.NewQueryService(
		chunkRepo,
		app.Embedder,
		app.Generator,
		app.AnswerCache,
		nil,
		app.Config.Retrieval.TopK,
		app.Config.Retrieval.SimilarityThreshold,
	)
	documentService := appsvc.NewDocumentService(docRepo)
	summaryService := appsvc.NewSummaryService(docRepo, chunkRepo, app.Generator)

	docHandler := handler.NewDocumentHandler(ingestService, documentService, summaryService)
	queryHandler := handler.NewQueryHandler(queryService)

	v1 := router.Group("/api/v1")
	docs := v1.Group("/documents")
	docs.POST("/pdf", docHandler.UploadPDF)
	docs.POST("/url", docHandler.IngestURL)
	docs.GET("", docHandler.List)
	docs.DELETE("/:id", docHandler.Delete)
	docs.GET("/:id/summary", docHandler.Summarize)
	v1.POST("/query", queryHandler.Ask)

	return router
}
