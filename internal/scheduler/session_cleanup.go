package scheduler

import (
	"time"

	"github.com/avirtanen/noshcart-backend/internal/app/session"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SessionCleanupScheduler purges idle cart sessions on a schedule
type SessionCleanupScheduler struct {
	cron    *cron.Cron
	store   *session.Store
	idleTTL time.Duration
}

// NewSessionCleanupScheduler creates the scheduler
func NewSessionCleanupScheduler(store *session.Store, idleTTL time.Duration) *SessionCleanupScheduler {
	return &SessionCleanupScheduler{
		cron:    cron.New(),
		store:   store,
		idleTTL: idleTTL,
	}
}

// Start registers the hourly purge job and starts the scheduler
func (s *SessionCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		purged := s.store.PurgeIdle(s.idleTTL)
		logger.Debug("Session cleanup ran", map[string]interface{}{
			"purged":   purged,
			"idle_ttl": s.idleTTL.String(),
		})
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info("Session cleanup scheduler started", map[string]interface{}{
		"idle_ttl": s.idleTTL.String(),
	})
	return nil
}

// Stop stops the scheduler
func (s *SessionCleanupScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Session cleanup scheduler stopped", nil)
}
