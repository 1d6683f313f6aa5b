package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"mti.co.id/attreport/config"
	"mti.co.id/attreport/core"
	"mti.co.id/attreport/export"
	"mti.co.id/attreport/infrastructure/communication"
	"mti.co.id/attreport/infrastructure/scheduler"
	"mti.co.id/attreport/logging"
	"mti.co.id/attreport/store"
)

type options struct {
	configPath string
	date       string
	startDate  string
	endDate    string
	waid       string
	insertAtt  bool
	insertMcg  bool
	useFILO    bool
	daemon     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "attreport.yaml", "Path to the YAML configuration file")
	flag.StringVar(&opts.date, "date", "", "Specific date for the attendance report (YYYY-MM-DD)")
	flag.StringVar(&opts.startDate, "start-date", "", "Start date for the attendance report (YYYY-MM-DD)")
	flag.StringVar(&opts.endDate, "end-date", "", "End date for the attendance report (YYYY-MM-DD)")
	flag.StringVar(&opts.waid, "waid", "", "WhatsApp chat ID to send the report to")
	flag.BoolVar(&opts.insertAtt, "insert-att", false, "Insert classified rows into the attendance report table")
	flag.BoolVar(&opts.insertMcg, "insert-mcg", false, "Forward pending rows into the clocking table")
	flag.BoolVar(&opts.useFILO, "use-filo", false, "Use first-in/last-out logic instead of schedule tolerance")
	flag.BoolVar(&opts.daemon, "daemon", false, "Run on the configured cron schedules instead of once")
	flag.Parse()

	// Optional .env for local runs; DSNs usually come from the service
	// environment.
	_ = godotenv.Load()

	logger, err := logging.NewLogger("attreport")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		logger.Fatal("configuration error", zap.Error(err))
	}

	if opts.daemon {
		runDaemon(logger, cfg, opts)
		return
	}

	if err := runOnce(logger, cfg, opts, time.Now()); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func runDaemon(logger *zap.Logger, cfg *config.Config, opts options) {
	// Scheduled runs always cover the rolling last 24 hours.
	jobOpts := opts
	jobOpts.date, jobOpts.startDate, jobOpts.endDate = "", "", ""

	sched := scheduler.New(logger, cfg.CronSpecs, func() error {
		return runOnce(logger, cfg, jobOpts, time.Now())
	})
	if err := sched.Start(); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sched.Stop()
	logger.Info("scheduler stopped")
}

// resolveRange turns the date arguments into an inclusive [start, end]
// window. Malformed dates fail here, before any remote call.
func resolveRange(opts options, now time.Time) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	switch {
	case opts.date != "":
		day, err := time.ParseInLocation(layout, opts.date, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", opts.date)
		}
		return day, day.AddDate(0, 0, 1).Add(-time.Second), nil

	case opts.startDate != "" || opts.endDate != "":
		startArg := opts.startDate
		if startArg == "" {
			startArg = opts.endDate
		}
		endArg := opts.endDate
		if endArg == "" {
			endArg = opts.startDate
		}

		start, err := time.ParseInLocation(layout, startArg, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start-date %q, expected YYYY-MM-DD", startArg)
		}
		end, err := time.ParseInLocation(layout, endArg, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end-date %q, expected YYYY-MM-DD", endArg)
		}
		end = end.AddDate(0, 0, 1).Add(-time.Second)
		if start.After(end) {
			return time.Time{}, time.Time{}, fmt.Errorf("start date %s is after end date %s", startArg, endArg)
		}
		return start, end, nil

	default:
		return now.Add(-24 * time.Hour), now, nil
	}
}

func runOnce(logger *zap.Logger, cfg *config.Config, opts options, now time.Time) error {
	runLog := logging.WithRunID(logger, uuid.NewString())

	start, end, err := resolveRange(opts, now)
	if err != nil {
		return err
	}
	runLog.Info("date range determined", zap.Time("start", start), zap.Time("end", end))

	workflowDB, err := store.Connect(cfg.WorkflowDSN)
	if err != nil {
		return fmt.Errorf("workflow DB: %w", err)
	}

	pipeline := &core.Pipeline{
		Source:      store.NewTransactionStore(workflowDB),
		Resolver:    core.NewResolver(store.NewScheduleStore(workflowDB), cfg.Manual()),
		Staging:     store.NewAttendanceStore(workflowDB),
		Log:         runLog,
		Tolerance:   cfg.Tolerance(),
		UseFILO:     opts.useFILO,
		Controllers: cfg.Controllers,
		StaffPrefix: cfg.StaffPrefix,
		ValidStatus: cfg.ValidStatus,
	}

	classified, err := pipeline.Classify(start, end)
	if err != nil {
		return err
	}
	runLog.Info("clock event logic applied",
		zap.Int("retrieved", classified.Retrieved),
		zap.Int("classified", len(classified.Records)),
		zap.Int("valid", classified.ValidCount()),
		zap.Int("invalid", classified.InvalidCount()),
		zap.Int("no_shift_data", classified.Dropped))

	fileName := export.ReportFileName(opts.date, opts.startDate, opts.endDate, now)
	if err := export.WriteReport(fileName, classified.Records); err != nil {
		return err
	}
	runLog.Info("report exported", zap.String("file", fileName))

	if opts.insertAtt {
		res := pipeline.Persist(classified.Records)
		runLog.Info("attendance report insertion completed",
			zap.Int("inserted", res.Inserted),
			zap.Int("skipped", res.Skipped),
			zap.Int("failed", len(res.Failures)))
	}

	if opts.insertMcg {
		if cfg.ClockingDSN == "" {
			return fmt.Errorf("clocking DSN is required for --insert-mcg")
		}
		clockingDB, err := store.Connect(cfg.ClockingDSN)
		if err != nil {
			return fmt.Errorf("clocking DB: %w", err)
		}

		forwarder := &core.Forwarder{
			Staging:     store.NewAttendanceStore(workflowDB),
			Clocking:    store.NewClockingStore(clockingDB),
			Log:         runLog,
			StaffPrefix: cfg.StaffPrefix,
		}
		res, err := forwarder.Forward()
		if err != nil {
			return err
		}
		runLog.Info("clocking forwarding completed",
			zap.Int("selected", res.Selected),
			zap.Int("forwarded", res.Forwarded),
			zap.Int("ignored", res.Ignored),
			zap.Int("failed", len(res.Failures)))
	}

	chatID := opts.waid
	if chatID == "" {
		chatID = cfg.WhatsApp.ChatID
	}
	if cfg.WhatsApp.APIURL != "" {
		wa := communication.NewWhatsApp(cfg.WhatsApp.APIURL, runLog)
		msg := communication.ReportMessage(start, end)
		if err := wa.SendDocument(chatID, msg, fileName); err != nil {
			// Delivery problems never fail the batch; the file has
			// already been cleaned up by the client.
			runLog.Error("failed to send report", zap.Error(err))
		}
	}

	return nil
}
