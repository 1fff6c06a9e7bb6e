package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const terminalTimeFormat = "15:04:05.000"

// TerminalHandler is a slog.Handler that renders records through zerolog's
// ConsoleWriter.
//
// Output format:
//
//	15:04:05.000 INF server started port=8080
type TerminalHandler struct {
	out    zerolog.Logger
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *TerminalHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	console := zerolog.ConsoleWriter{
		Out: w,
		FormatTimestamp: func(i any) string {
			s, _ := i.(string)
			return "\x1b[2m" + s + "\x1b[0m"
		},
	}
	return &TerminalHandler{
		out:   zerolog.New(zerolog.SyncWriter(console)),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one record.
func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	ev := h.out.WithLevel(zerologLevel(r.Level))
	ev.Str(zerolog.TimestampFieldName, ts.Format(terminalTimeFormat))
	for _, a := range h.attrs {
		addAttr(ev, a, h.groups)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(ev, a, h.groups)
		return true
	})
	ev.Msg(r.Message)
	return nil
}

// WithAttrs returns a new handler whose attributes consist of both the
// existing attributes and attrs.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(merged, h.attrs)
	merged = append(merged, attrs...)
	return &TerminalHandler{out: h.out, level: h.level, attrs: merged, groups: h.groups}
}

// WithGroup returns a new handler with the given group name prepended to
// subsequent attribute keys.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	extended := make([]string, len(h.groups)+1)
	copy(extended, h.groups)
	extended[len(h.groups)] = name
	return &TerminalHandler{out: h.out, level: h.level, attrs: h.attrs, groups: extended}
}

func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level < slog.LevelInfo:
		return zerolog.DebugLevel
	case level < slog.LevelWarn:
		return zerolog.InfoLevel
	case level < slog.LevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func addAttr(ev *zerolog.Event, a slog.Attr, groups []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		prefix := groups
		if a.Key != "" {
			prefix = make([]string, len(groups)+1)
			copy(prefix, groups)
			prefix[len(groups)] = a.Key
		}
		for _, ga := range a.Value.Group() {
			addAttr(ev, ga, prefix)
		}
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + a.Key
	}

	v := a.Value
	switch v.Kind() {
	case slog.KindString:
		ev.Str(key, v.String())
	case slog.KindInt64:
		ev.Int64(key, v.Int64())
	case slog.KindUint64:
		ev.Uint64(key, v.Uint64())
	case slog.KindFloat64:
		ev.Float64(key, v.Float64())
	case slog.KindBool:
		ev.Bool(key, v.Bool())
	case slog.KindDuration:
		ev.Str(key, v.Duration().String())
	case slog.KindTime:
		ev.Str(key, v.Time().Format(time.RFC3339))
	default:
		if err, ok := v.Any().(error); ok {
			ev.AnErr(key, err)
			return
		}
		ev.Interface(key, v.Any())
	}
}
