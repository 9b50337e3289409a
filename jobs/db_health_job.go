package jobs

import (
	"context"
	"time"

	"github.com/prepwise/prepwise_api/database"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const healthCheckTimeout = 5 * time.Second

// ScheduleDBHealth registers a connectivity check on c.
func ScheduleDBHealth(c *cron.Cron, schedule string, monitor *database.Monitor) (cron.EntryID, error) {
	return c.AddFunc(schedule, func() { CheckDatabase(monitor) })
}

func CheckDatabase(monitor *database.Monitor) {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	if !monitor.Check(ctx) {
		log.Warn().Msg("database health check failed")
	}
}
