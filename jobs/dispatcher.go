// jobs/dispatcher.go — enqueue tasks
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

func NewCatalogSyncTask(full bool) (*asynq.Task, error) {
	payload, err := json.Marshal(CatalogSyncPayload{Full: full})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskCatalogSync,
		payload,
		asynq.MaxRetry(0), // per-item failures are tallied, the batch itself is one-shot
		asynq.Timeout(30*time.Minute),
	), nil
}
