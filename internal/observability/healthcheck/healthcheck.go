package healthcheck

import (
	"context"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logger zerolog.Logger = log.Logger

// terminate is replaced in tests.
var terminate = terminateService

func SetLogger(customLogger zerolog.Logger) {
	logger = customLogger
}

// ConnectionChecker reports whether a long lived connection still works.
type ConnectionChecker interface {
	IsConnectionHealthy() error
}

// DatabaseChecker is satisfied by the service layer.
type DatabaseChecker interface {
	DoHealthCheck(ctx context.Context) error
}

// StartHealthCheckCron checks the broker connection and the database every
// cronTime seconds and terminates the service when either is unhealthy.
func StartHealthCheckCron(ctx context.Context, queue ConnectionChecker, database DatabaseChecker, cronTime int) error {
	c := cron.New()
	logger.Info().Msg("Initiated Health Check Cron")

	if cronTime == 0 {
		cronTime = 60
	}

	cronSpec := fmt.Sprintf("@every %ds", cronTime)

	_, err := c.AddFunc(cronSpec, func() {
		runHealthCheck(ctx, queue, database)
	})

	if err != nil {
		return err
	}

	c.Start()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Stopping Health Check Cron")
		c.Stop()
	}()

	return nil
}

func runHealthCheck(ctx context.Context, queue ConnectionChecker, database DatabaseChecker) {
	if err := queue.IsConnectionHealthy(); err != nil {
		logger.Error().Err(err).Msg("The queue connection is not healthy.")
		terminate()
		return
	}
	if err := database.DoHealthCheck(ctx); err != nil {
		logger.Error().Err(err).Msg("The database connection is not healthy.")
		terminate()
	}
}

func terminateService() {
	logger.Fatal().Msg("Terminating service due to health check failure.")
	os.Exit(1)
}
