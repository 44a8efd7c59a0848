package jobs

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulse-api/models"
)

// HashtagRecountJob periodically recomputes each hashtag's post count from
// published post content. Hashtag counts are an eventually-consistent
// projection, never updated inside post write transactions.
type HashtagRecountJob struct {
	db     *gorm.DB
	logger *zap.Logger
	ticker *time.Ticker
	done   chan bool
}

// NewHashtagRecountJob creates a new hashtag recount job
func NewHashtagRecountJob(db *gorm.DB, logger *zap.Logger, interval time.Duration) *HashtagRecountJob {
	return &HashtagRecountJob{
		db:     db,
		logger: logger,
		ticker: time.NewTicker(interval),
		done:   make(chan bool),
	}
}

// Start begins the recount job
func (j *HashtagRecountJob) Start() {
	j.logger.Info("hashtag recount job started")

	go func() {
		// Run immediately on start
		j.recount()

		for {
			select {
			case <-j.ticker.C:
				j.recount()
			case <-j.done:
				j.logger.Info("hashtag recount job stopped")
				return
			}
		}
	}()
}

// Stop stops the recount job
func (j *HashtagRecountJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *HashtagRecountJob) recount() {
	var hashtags []models.Hashtag
	if err := j.db.Find(&hashtags).Error; err != nil {
		j.logger.Error("hashtag recount failed to list hashtags", zap.Error(err))
		return
	}

	for _, tag := range hashtags {
		var count int64
		pattern := "%#" + tag.Name + "%"
		if err := j.db.Model(&models.Post{}).
			Where("published = ?", true).
			Where("content LIKE ?", pattern).
			Count(&count).Error; err != nil {
			j.logger.Error("hashtag recount failed", zap.String("hashtag", tag.Name), zap.Error(err))
			continue
		}

		if int(count) == tag.PostCount {
			continue
		}

		if err := j.db.Model(&models.Hashtag{}).Where("id = ?", tag.ID).
			UpdateColumn("post_count", count).Error; err != nil {
			j.logger.Error("hashtag count update failed", zap.String("hashtag", tag.Name), zap.Error(err))
		}
	}
}
