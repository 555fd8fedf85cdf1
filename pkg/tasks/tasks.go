package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeGeneratePodcast = "podcast:generate"
	TypeReapStaleJobs   = "podcast:reap_stale"
)

type GeneratePodcastPayload struct {
	PodcastID string
}

func NewGeneratePodcastTask(podcastID string) (*asynq.Task, error) {
	payload, err := json.Marshal(GeneratePodcastPayload{PodcastID: podcastID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeGeneratePodcast, payload), nil
}

func NewReapStaleJobsTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeReapStaleJobs, nil), nil
}
