// jobs/processor.go — handle tasks from the queue
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"api-bloommarbella-go/nieuwkoop"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type CatalogSyncProcessor struct {
	db       *gorm.DB
	rdb      *redis.Client
	supplier *nieuwkoop.Client
}

func NewCatalogSyncProcessor(db *gorm.DB, rdb *redis.Client, supplier *nieuwkoop.Client) *CatalogSyncProcessor {
	return &CatalogSyncProcessor{db: db, rdb: rdb, supplier: supplier}
}

func (p *CatalogSyncProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload CatalogSyncPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	job := NewCatalogSyncJob(p.db, p.rdb, p.supplier)
	result, err := job.Run(ctx, payload.Full)
	if errors.Is(err, ErrSyncInProgress) {
		// admin-triggered sync holds the lock, skip this periodic run
		slog.Info("Periodic sync skipped, lock held")
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("Periodic sync done",
		"new", result.NewProducts,
		"updated", result.UpdatedProducts,
		"errors", result.Errors,
	)
	return nil
}
