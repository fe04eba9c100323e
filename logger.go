package main

import (
	"errors"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/9seconds/geobatch/batchlib"
	"github.com/9seconds/geobatch/providers"
)

type logger struct {
	lookupLog   zerolog.Logger
	batchLog    zerolog.Logger
	databaseLog zerolog.Logger
}

// LookupError logs per-address failures. Broken databases are the
// only thing worth an error level: malformed and unknown addresses are
// expected in any real input.
func (l *logger) LookupError(ip string, err error) {
	event := l.lookupLog.Debug()

	var failure *batchlib.LookupFailure

	if errors.As(err, &failure) && failure.Reason == batchlib.DatabaseError {
		event = l.lookupLog.Error()
	}

	event.Str("ip", ip).Err(err).Msg("")
}

func (l *logger) WorkerPanic(value interface{}) {
	l.lookupLog.Error().Interface("panic", value).Msg("Worker has crashed")
}

func (l *logger) DatabaseInfo(info providers.DatabaseInfo) {
	l.databaseLog.Info().
		Str("kind", info.Kind).
		Str("path", info.Path).
		Str("type", info.Type).
		Time("build_time", info.BuildTime).
		Msg("Database is opened, built " + humanize.Time(info.BuildTime))
}

func (l *logger) DatabaseMissing(kind, directory string) {
	l.databaseLog.Warn().
		Str("kind", kind).
		Str("directory", directory).
		Msg("Database is not found, its fields are left empty")
}

func (l *logger) BatchInfo(stats batchlib.Stats, workers int, elapsed time.Duration) {
	rate := 0.0
	if seconds := elapsed.Seconds(); seconds > 0 {
		rate = float64(stats.Total) / seconds
	}

	l.batchLog.Info().
		Uint64("total", stats.Total).
		Uint64("resolved", stats.Resolved).
		Uint64("invalid_address", stats.InvalidAddress).
		Uint64("not_found", stats.NotFound).
		Uint64("database_error", stats.DatabaseError).
		Int("workers", workers).
		Dur("elapsed", elapsed).
		Msgf("Resolved %s of %s addresses, %s per second",
			humanize.Comma(int64(stats.Resolved)),
			humanize.Comma(int64(stats.Total)),
			humanize.CommafWithDigits(rate, 1))
}

// Printf is used by automaxprocs.
func (l *logger) Printf(format string, args ...interface{}) {
	l.batchLog.Debug().Msgf(format, args...)
}

func newLogger(w io.Writer, debug bool) *logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	// lookups are logged from every worker goroutine
	base := zerolog.New(zerolog.SyncWriter(w)).Level(level)

	return &logger{
		lookupLog:   base.With().Timestamp().Str("event_name", "lookup").Logger(),
		batchLog:    base.With().Timestamp().Str("event_name", "batch").Logger(),
		databaseLog: base.With().Timestamp().Str("event_name", "database").Logger(),
	}
}
