package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yumeno/gachapon-api/pkg/database/repository"
	"github.com/yumeno/gachapon-api/pkg/logging"
)

// LockoutJanitor periodically clears expired account lockouts so locked
// accounts become usable again without waiting for their next login attempt.
type LockoutJanitor struct {
	users  *repository.UserRepository
	logger logging.Logger
	cron   *cron.Cron
}

func NewLockoutJanitor(users *repository.UserRepository, logger logging.Logger) *LockoutJanitor {
	return &LockoutJanitor{
		users:  users,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules the janitor every 5 minutes
func (j *LockoutJanitor) Start() error {
	if _, err := j.cron.AddFunc("@every 5m", j.run); err != nil {
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish
func (j *LockoutJanitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *LockoutJanitor) run() {
	cleared, err := j.users.ClearExpiredLockouts(time.Now())
	if err != nil {
		j.logger.Error("failed to clear expired lockouts", err, nil)
		return
	}
	if cleared > 0 {
		j.logger.Info("cleared expired lockouts", map[string]interface{}{"accounts": cleared})
	}
}
