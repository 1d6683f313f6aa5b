package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReportScheduler runs the rolling last-24h report job on fixed cron
// schedules (the operational default is 01:00 and 13:00 daily).
type ReportScheduler struct {
	cronEngine *cron.Cron
	log        *zap.Logger
	specs      []string
	run        func() error
}

func New(log *zap.Logger, specs []string, run func() error) *ReportScheduler {
	return &ReportScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		log:        log,
		specs:      specs,
		run:        run,
	}
}

func (s *ReportScheduler) Start() error {
	for _, spec := range s.specs {
		spec := spec
		if _, err := s.cronEngine.AddFunc(spec, func() {
			s.log.Info("scheduled report run triggered", zap.String("cron_spec", spec))
			if err := s.run(); err != nil {
				s.log.Error("scheduled report run failed", zap.String("cron_spec", spec), zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}
	s.cronEngine.Start()
	s.log.Info("report scheduler started", zap.Strings("cron_specs", s.specs))
	return nil
}

func (s *ReportScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
}
