package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"docstore-rag/internal/ai"
	"docstore-rag/internal/cache"
	"docstore-rag/internal/config"
	postgresClient "docstore-rag/internal/platform/postgres"
	rabbitmqClient "docstore-rag/internal/platform/rabbitmq"
	redisClient "docstore-rag/internal/platform/redis"
	"docstore-rag/internal/worker"
)

type App struct {
	Config      *config.Config
	Postgres    *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	AnswerCache *cache.AnswerCache
	Embedder    *ai.EmbeddingClient
	Generator   *ai.OllamaClient
	CacheWorker *worker.CacheInvalidateWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := postgresClient.New(ctx, cfg.PostgresDSN())
	if err != nil {
		return nil, err
	}
	if err := postgresClient.Migrate(db, cfg.Embedding.Dimension); err != nil {
		return nil, err
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	answerCache := cache.NewAnswerCache(redisCli, time.Duration(cfg.Redis.AnswerTTLSeconds)*time.Second)

	cacheWorker := worker.NewCacheInvalidateWorker(mqConn, answerCache, cfg.RabbitMQ.IngestEventQueue)
	if err := cacheWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start cache invalidate worker failed: %w", err)
	}

	embedder := ai.NewEmbeddingClient(
		cfg.Embedding.BaseURL,
		cfg.Embedding.APIKey,
		cfg.Embedding.Model,
		cfg.Embedding.Dimension,
	)
	generator := ai.NewOllamaClient(
		cfg.LLM.BaseURL,
		cfg.LLM.Model,
		time.Duration(cfg.LLM.TimeoutSeconds)*time.Second,
	)

	return &App{
		Config:      cfg,
		Postgres:    db,
		Redis:       redisCli,
		MQConn:      mqConn,
		AnswerCache: answerCache,
		Embedder:    embedder,
		Generator:   generator,
		CacheWorker: cacheWorker,
		StartedAt:   time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.CacheWorker != nil {
		a.CacheWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Postgres != nil {
		sqlDB, err := a.Postgres.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
