package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/tejusbharadwaj/mbdata/internal/api"
	"github.com/tejusbharadwaj/mbdata/internal/models"
)

const (
	DefaultSpec    = "*/5 * * * *"
	DefaultTimeout = 2 * time.Minute
)

// Fetcher loads series. *api.Client satisfies it.
type Fetcher interface {
	GetSeries(ctx context.Context, names []string, opts ...api.Option) ([]models.Series, error)
}

// Archive stores fetched series.
type Archive interface {
	StoreSeries(ctx context.Context, s models.Series) (int, error)
}

type Config struct {
	Spec    string
	Series  []string
	Timeout time.Duration
}

// Scheduler periodically refreshes a fixed list of series into the archive.
type Scheduler struct {
	ctx     context.Context
	config  Config
	fetcher Fetcher
	archive Archive
	logger  *logrus.Logger
	cron    *cron.Cron
}

func NewScheduler(ctx context.Context, config Config, fetcher Fetcher, archive Archive, logger *logrus.Logger) *Scheduler {
	if config.Spec == "" {
		config.Spec = DefaultSpec
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Scheduler{
		ctx:     ctx,
		config:  config,
		fetcher: fetcher,
		archive: archive,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.config.Spec, func() { s.Refresh() }); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop the scheduler and wait for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RefreshResult summarizes one refresh run.
type RefreshResult struct {
	Stored int // series archived
	Rows   int // observations written
	Failed int // item errors and archive failures
}

// Refresh fetches the configured series once and archives every series
// that loaded. Item errors are logged and skipped.
func (s *Scheduler) Refresh() RefreshResult {
	var res RefreshResult
	if len(s.config.Series) == 0 {
		return res
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.config.Timeout)
	defer cancel()

	series, err := s.fetcher.GetSeries(ctx, s.config.Series, api.RaiseError(false))
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch series")
		res.Failed = len(s.config.Series)
		return res
	}

	for _, item := range series {
		log := s.logger.WithField("series", item.Name())
		if item.IsError() {
			log.WithField("error_message", item.ErrorMessage()).Warn("Series not refreshed")
			res.Failed++
			continue
		}
		n, err := s.archive.StoreSeries(ctx, item)
		if err != nil {
			log.WithError(err).Error("Failed to archive series")
			res.Failed++
			continue
		}
		res.Stored++
		res.Rows += n
	}

	s.logger.WithFields(logrus.Fields{
		"stored": res.Stored,
		"rows":   res.Rows,
		"failed": res.Failed,
	}).Info("Refresh completed")
	return res
}
