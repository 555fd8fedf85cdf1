package feed

import (
	"fmt"
	"time"

	"github.com/eduncan911/podcast"
	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

// GenerateRSS renders public completed podcasts as an RSS feed. Jobs
// without audio metadata are skipped rather than producing broken items.
func GenerateRSS(jobs []models.PodcastJob, baseURL string) (string, error) {
	now := time.Now()
	p := podcast.New(
		"Read It Aloud",
		fmt.Sprintf("%s/feed.rss", baseURL),
		"Narrated audio versions of articles, threads and notes.",
		&now, &now,
	)

	for _, job := range jobs {
		if job.Title == nil || job.AudioURL == nil || job.AudioSizeBytes == nil {
			continue
		}

		description := *job.Title
		if job.Script != nil {
			description = excerpt(*job.Script, 300)
		}

		item := podcast.Item{
			Title:       *job.Title,
			Description: description,
			Link:        fmt.Sprintf("%s/api/public/podcasts/%s", baseURL, job.ShareSlug),
			PubDate:     job.CompletedAt,
		}
		item.AddEnclosure(*job.AudioURL, podcast.MP3, *job.AudioSizeBytes)
		if _, err := p.AddItem(item); err != nil {
			return "", err
		}
	}

	return p.String(), nil
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
