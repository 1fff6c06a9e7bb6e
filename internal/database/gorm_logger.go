package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries that are logged at Warn regardless of level.
const slowQueryThreshold = 200 * time.Millisecond

// maxSQLLength is the maximum length of a SQL string in logs before it is
// truncated with an ellipsis.
const maxSQLLength = 200

// slogGormLogger routes GORM's logger.Interface to the default slog logger.
// Level filtering is left to slog: when Debug is disabled the SQL formatting
// callback is never invoked.
type slogGormLogger struct{}

// LogMode is a no-op; level filtering is handled by slog.
func (l slogGormLogger) LogMode(logger.LogLevel) logger.Interface { return l }

// Info logs informational messages from GORM.
func (l slogGormLogger) Info(ctx context.Context, msg string, args ...any) {
	slog.InfoContext(ctx, fmt.Sprintf(msg, args...))
}

// Warn logs warning messages from GORM.
func (l slogGormLogger) Warn(ctx context.Context, msg string, args ...any) {
	slog.WarnContext(ctx, fmt.Sprintf(msg, args...))
}

// Error logs error messages from GORM.
func (l slogGormLogger) Error(ctx context.Context, msg string, args ...any) {
	slog.ErrorContext(ctx, fmt.Sprintf(msg, args...))
}

func truncateSQL(sql string) string {
	if len(sql) <= maxSQLLength {
		return sql
	}
	half := (maxSQLLength - 3) / 2
	return sql[:half] + "..." + sql[len(sql)-half:]
}

// Trace is called by GORM after every SQL operation. ErrRecordNotFound is the
// normal "no rows" result from First and is not treated as an error.
func (l slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		slog.ErrorContext(ctx, "gorm query error",
			"sql", truncateSQL(sql),
			"rows", rows,
			"duration", elapsed,
			"error", err,
		)
	case elapsed >= slowQueryThreshold:
		sql, rows := fc()
		slog.WarnContext(ctx, "slow gorm query",
			"sql", truncateSQL(sql),
			"rows", rows,
			"duration", elapsed,
		)
	case slog.Default().Enabled(ctx, slog.LevelDebug):
		sql, rows := fc()
		slog.DebugContext(ctx, "gorm query",
			"sql", truncateSQL(sql),
			"rows", rows,
			"duration", elapsed,
		)
	}
}
