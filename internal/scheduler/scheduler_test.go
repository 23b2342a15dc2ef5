package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"gescom/internal/config"
	"gescom/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExports records the dates it was asked to export.
type fakeExports struct {
	jours  []string
	hebdos []string
	err    error
}

func (f *fakeExports) ExporterJour(_ context.Context, date time.Time) (*dto.ExportFiles, error) {
	f.jours = append(f.jours, date.Format("2006-01-02"))
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ExportFiles{Date: date.Format("2006-01-02")}, nil
}

func (f *fakeExports) EnvoyerRapportHebdomadaire(_ context.Context, maintenant time.Time) error {
	f.hebdos = append(f.hebdos, maintenant.Format("2006-01-02"))
	return f.err
}

func (f *fakeExports) ListerExports(_ context.Context) ([]dto.ExportFiles, error) {
	return nil, nil
}

func newTestScheduler(t *testing.T, exports *fakeExports) *Scheduler {
	t.Helper()
	s, err := New(exports, &config.Config{
		DailyExportTime:  "23:30",
		WeeklyExportTime: "23:45",
	})
	require.NoError(t, err)
	return s
}

func TestNew_HeureInvalide(t *testing.T) {
	_, err := New(&fakeExports{}, &config.Config{
		DailyExportTime:  "minuit",
		WeeklyExportTime: "23:45",
	})
	assert.Error(t, err)
}

func TestTick_ExportJournalierDeLaVeille(t *testing.T) {
	exports := &fakeExports{}
	s := newTestScheduler(t, exports)

	// Lundi 16 mars 2026, 23:31 — une minute après l'heure configurée
	s.tick(time.Date(2026, 3, 16, 23, 31, 0, 0, time.Local))

	require.Len(t, exports.jours, 1)
	assert.Equal(t, "2026-03-15", exports.jours[0])
	assert.Empty(t, exports.hebdos)
}

func TestTick_AvantLHeure(t *testing.T) {
	exports := &fakeExports{}
	s := newTestScheduler(t, exports)

	s.tick(time.Date(2026, 3, 16, 23, 29, 0, 0, time.Local))
	assert.Empty(t, exports.jours)
}

func TestTick_UneSeuleFoisParJour(t *testing.T) {
	exports := &fakeExports{}
	s := newTestScheduler(t, exports)

	base := time.Date(2026, 3, 16, 23, 30, 0, 0, time.Local)
	for i := 0; i < 10; i++ {
		s.tick(base.Add(time.Duration(i) * time.Minute))
	}
	assert.Len(t, exports.jours, 1)

	// Le lendemain, le job repart
	s.tick(base.AddDate(0, 0, 1))
	assert.Len(t, exports.jours, 2)
}

func TestTick_EchecMarqueQuandMeme(t *testing.T) {
	exports := &fakeExports{err: errors.New("disque plein")}
	s := newTestScheduler(t, exports)

	base := time.Date(2026, 3, 16, 23, 30, 0, 0, time.Local)
	s.tick(base)
	s.tick(base.Add(time.Minute))

	// Un export en échec ne se relance pas à chaque minute
	assert.Len(t, exports.jours, 1)
}

func TestTick_RapportHebdomadaireLeDimanche(t *testing.T) {
	exports := &fakeExports{}
	s := newTestScheduler(t, exports)

	// Dimanche 15 mars 2026, 23:46
	dimanche := time.Date(2026, 3, 15, 23, 46, 0, 0, time.Local)
	require.Equal(t, time.Sunday, dimanche.Weekday())

	s.tick(dimanche)
	require.Len(t, exports.hebdos, 1)
	assert.Equal(t, "2026-03-15", exports.hebdos[0])
	// L'export journalier de la veille part au même tick
	require.Len(t, exports.jours, 1)
	assert.Equal(t, "2026-03-14", exports.jours[0])

	// Pas de rapport hebdo les autres jours
	lundi := dimanche.AddDate(0, 0, 1)
	s.tick(lundi)
	assert.Len(t, exports.hebdos, 1)
}

func TestStartStop(t *testing.T) {
	exports := &fakeExports{}
	s := newTestScheduler(t, exports)

	s.Start()
	s.Start() // no-op, pas de deuxième goroutine

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * stopTimeout):
		t.Fatal("Stop ne rend pas la main")
	}

	// Stop sur un scheduler arrêté est inoffensif
	s.Stop()
}

func TestRunManualExport(t *testing.T) {
	exports := &fakeExports{}
	s := newTestScheduler(t, exports)

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	files, err := s.RunManualExport(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", files.Date)
	require.Len(t, exports.jours, 1)
	assert.Equal(t, "2026-03-10", exports.jours[0])
}
