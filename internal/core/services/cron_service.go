package services

import (
	"context"
	"log"
	"time"

	"tricount-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		refreshTokenRepo: refreshTokenRepo,
		cron:             cron.New(),
	}
}

// Start registers the jobs and launches the scheduler
func (s *CronService) Start() {
	// Purge expired and revoked refresh tokens every night at 03:00
	if _, err := s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens); err != nil {
		log.Printf("❌ Failed to schedule token purge: %v", err)
		return
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop gracefully stops the scheduler
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token purge error: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens purged")
}
