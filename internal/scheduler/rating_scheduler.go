package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/Cup-Trail/cup-trail-sub000/internal/app/repository"
	"github.com/Cup-Trail/cup-trail-sub000/internal/app/service"
	"github.com/Cup-Trail/cup-trail-sub000/pkg/logger"
)

// RatingScheduler sweeps every shop-drink association and re-derives its
// average rating from the review rows. Recomputation is idempotent, so a
// sweep repairs any aggregate a failed review pipeline left stale.
type RatingScheduler struct {
	cron          *cron.Cron
	schedule      string
	reviewService service.ReviewService
	shopDrinkRepo repository.ShopDrinkRepository
}

func NewRatingScheduler(
	schedule string,
	reviewService service.ReviewService,
	shopDrinkRepo repository.ShopDrinkRepository,
) *RatingScheduler {
	return &RatingScheduler{
		cron:          cron.New(),
		schedule:      schedule,
		reviewService: reviewService,
		shopDrinkRepo: shopDrinkRepo,
	}
}

func (s *RatingScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, s.Sweep)
	if err != nil {
		logger.Error("Failed to register rating sweep cron job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Rating sweep scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// Sweep recomputes every association's average. A failure on one
// association never stops the rest.
func (s *RatingScheduler) Sweep() {
	logger.Info("Starting rating sweep")

	ids, err := s.shopDrinkRepo.ListIDs()
	if err != nil {
		logger.Error("Failed to list shop drinks for rating sweep", err)
		return
	}

	var failed int
	for _, id := range ids {
		if _, err := s.reviewService.RecomputeAverage(id); err != nil {
			failed++
			logger.Warn("Rating sweep failed for shop drink", map[string]interface{}{
				"shop_drink_id": id,
				"error":         err.Error(),
			})
		}
	}

	logger.Info("Rating sweep completed", map[string]interface{}{
		"total":  len(ids),
		"failed": failed,
	})
}

func (s *RatingScheduler) Stop() {
	logger.Info("Stopping rating sweep scheduler")
	s.cron.Stop()
}
