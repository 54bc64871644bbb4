package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"docstore-rag/internal/cache"
	"docstore-rag/internal/model"
)

// CacheInvalidateWorker consumes ingest events and flushes the answer
// cache. Answers composed before an ingestion may no longer reflect the
// corpus, so every event drops all cached entries.
type CacheInvalidateWorker struct {
	conn        *amqp.Connection
	answerCache *cache.AnswerCache
	queueName   string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewCacheInvalidateWorker(conn *amqp.Connection, answerCache *cache.AnswerCache, queueName string) *CacheInvalidateWorker {
	return &CacheInvalidateWorker{
		conn:        conn,
		answerCache: answerCache,
		queueName:   queueName,
	}
}

func (w *CacheInvalidateWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event model.IngestEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode ingest event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.answerCache.Flush(workerCtx); err != nil {
					log.Printf("worker flush answer cache failed: %v", err)
					_ = d.Nack(false, true)
					continue
				}

				log.Printf("answer cache flushed after ingest of document %d (%s)", event.DocumentID, event.Name)
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *CacheInvalidateWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
