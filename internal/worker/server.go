package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"receivables-service/internal/consumers"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.StatementProcessor
}

func NewWorker(processor *consumers.StatementProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandleStatementExport(ctx context.Context, t *asynq.Task) error {
	var p consumers.StatementExportDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Processor.ProcessStatementExport(p)
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.StatementProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			// Specify how many concurrent workers to use
			Concurrency: 10,
			// Optionally specify multiple queues with different priority.
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeStatementExport, worker.HandleStatementExport)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
