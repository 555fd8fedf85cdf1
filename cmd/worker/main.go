package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/siddheshbandgar/read-it-aloud/internal/blob"
	"github.com/siddheshbandgar/read-it-aloud/internal/config"
	"github.com/siddheshbandgar/read-it-aloud/internal/extractor"
	"github.com/siddheshbandgar/read-it-aloud/internal/pipeline"
	"github.com/siddheshbandgar/read-it-aloud/internal/store"
	"github.com/siddheshbandgar/read-it-aloud/internal/summarizer"
	"github.com/siddheshbandgar/read-it-aloud/internal/synthesizer"
	"github.com/siddheshbandgar/read-it-aloud/internal/worker"
	"github.com/siddheshbandgar/read-it-aloud/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	cfg := config.Load()

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	blobs, err := blob.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}

	p := pipeline.New(st, blobs, extractor.New(cfg), summarizer.New(cfg), synthesizer.New(cfg))
	taskHandler := worker.NewTaskHandler(p, st, cfg.JobTimeout)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			// Jobs are independent, so several may run at once; each job's
			// stages still run strictly in sequence.
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeGeneratePodcast, taskHandler.HandleGeneratePodcastTask)
	mux.HandleFunc(tasks.TypeReapStaleJobs, taskHandler.HandleReapStaleJobsTask)

	log.Printf("Worker starting (commit: %s)", CommitSHA)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
