package scheduler

// Background goroutine that drives the report exports: the daily artifacts
// for the previous day shortly before midnight, and the weekly summary mail
// on Sunday evenings. Polls the wall clock every minute rather than
// computing sleep targets, so clock adjustments and slow ticks self-correct.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gescom/internal/config"
	"gescom/internal/dto"
	"gescom/internal/service"

	"github.com/rs/zerolog/log"
)

const (
	tickInterval = 60 * time.Second
	stopTimeout  = 5 * time.Second
	tickBudget   = 2 * time.Minute
)

type Scheduler struct {
	exports service.ExportService

	dailyAtMin  int // minutes since midnight
	weeklyAtMin int

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}

	lastDaily  string // "2006-01-02" of the last attempted daily run
	lastWeekly string
}

func New(exports service.ExportService, cfg *config.Config) (*Scheduler, error) {
	dailyAt, err := parseHeure(cfg.DailyExportTime)
	if err != nil {
		return nil, fmt.Errorf("scheduler: DAILY_EXPORT_TIME: %w", err)
	}
	weeklyAt, err := parseHeure(cfg.WeeklyExportTime)
	if err != nil {
		return nil, fmt.Errorf("scheduler: WEEKLY_EXPORT_TIME: %w", err)
	}
	return &Scheduler{
		exports:     exports,
		dailyAtMin:  dailyAt,
		weeklyAtMin: weeklyAt,
	}, nil
}

func parseHeure(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Start launches the polling goroutine. Calling Start on a running scheduler
// is a warning no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		log.Warn().Msg("scheduler: déjà démarré")
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.loop(s.stop, s.done)
	log.Info().
		Str("export_journalier", fmt.Sprintf("%02d:%02d", s.dailyAtMin/60, s.dailyAtMin%60)).
		Str("rapport_hebdo", fmt.Sprintf("%02d:%02d (dimanche)", s.weeklyAtMin/60, s.weeklyAtMin%60)).
		Msg("scheduler: démarré")
}

// Stop signals the goroutine and waits for the in-flight tick, at most 5s.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stop)
	select {
	case <-s.done:
	case <-time.After(stopTimeout):
		log.Warn().Msg("scheduler: arrêt forcé, tick encore en cours")
	}
	s.running = false
	log.Info().Msg("scheduler: arrêté")
}

// RunManualExport produces the artifacts for an arbitrary date, bypassing the
// clock entirely.
func (s *Scheduler) RunManualExport(ctx context.Context, date time.Time) (*dto.ExportFiles, error) {
	log.Info().Str("date", date.Format("2006-01-02")).Msg("scheduler: export manuel")
	return s.exports.ExporterJour(ctx, date)
}

func (s *Scheduler) loop(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.tick(time.Now())
		}
	}
}

// tick runs at most one daily and one weekly job per calendar day. A job is
// marked attempted even when it fails, so a broken export does not re-fire
// every minute until midnight.
func (s *Scheduler) tick(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("scheduler: panique dans le tick")
		}
	}()

	minutes := now.Hour()*60 + now.Minute()
	aujourdhui := now.Format("2006-01-02")

	ctx, cancel := context.WithTimeout(context.Background(), tickBudget)
	defer cancel()

	if minutes >= s.dailyAtMin && s.lastDaily != aujourdhui {
		s.lastDaily = aujourdhui
		veille := now.AddDate(0, 0, -1)
		if _, err := s.exports.ExporterJour(ctx, veille); err != nil {
			log.Error().Err(err).Str("date", veille.Format("2006-01-02")).Msg("scheduler: export journalier échoué")
		}
	}

	if now.Weekday() == time.Sunday && minutes >= s.weeklyAtMin && s.lastWeekly != aujourdhui {
		s.lastWeekly = aujourdhui
		if err := s.exports.EnvoyerRapportHebdomadaire(ctx, now); err != nil {
			log.Error().Err(err).Msg("scheduler: rapport hebdomadaire échoué")
		}
	}
}
