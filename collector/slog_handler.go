package collector

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// SlogHandlerOptions configures the handler returned by Recorder.SlogHandler.
type SlogHandlerOptions struct {
	// Level is the minimum level of logs to record.
	Level slog.Leveler
}

// SlogHandler returns a slog.Handler that records log records as KindLog events,
// so a trace shows scenario steps next to browser activity.
func (r *Recorder) SlogHandler(options SlogHandlerOptions) slog.Handler {
	return &slogHandler{recorder: r, options: options}
}

type slogHandler struct {
	recorder *Recorder
	options  SlogHandlerOptions

	// attrs are already formatted as key=value
	attrs  []string
	groups []string
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.options.Level != nil {
		minLevel = h.options.Level.Level()
	}
	return minLevel <= level
}

func (h *slogHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Level.String())
	sb.WriteByte(' ')
	sb.WriteString(record.Message)

	for _, attr := range h.attrs {
		sb.WriteByte(' ')
		sb.WriteString(attr)
	}
	prefix := groupPrefix(h.groups)
	record.Attrs(func(attr slog.Attr) bool {
		for _, formatted := range formatAttr(prefix, attr) {
			sb.WriteByte(' ')
			sb.WriteString(formatted)
		}
		return true
	})

	h.recorder.Record(KindLog, sb.String())
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := groupPrefix(h.groups)
	formatted := slices.Clone(h.attrs)
	for _, attr := range attrs {
		formatted = append(formatted, formatAttr(prefix, attr)...)
	}
	return &slogHandler{
		recorder: h.recorder,
		options:  h.options,
		attrs:    formatted,
		groups:   h.groups,
	}
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &slogHandler{
		recorder: h.recorder,
		options:  h.options,
		attrs:    h.attrs,
		groups:   append(slices.Clone(h.groups), name),
	}
}

func groupPrefix(groups []string) string {
	if len(groups) == 0 {
		return ""
	}
	return strings.Join(groups, ".") + "."
}

func formatAttr(prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return nil
	}
	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = prefix + attr.Key + "."
		}
		var result []string
		for _, a := range attr.Value.Group() {
			result = append(result, formatAttr(groupPrefix, a)...)
		}
		return result
	}
	return []string{fmt.Sprintf("%s%s=%v", prefix, attr.Key, attr.Value.Any())}
}

// Tee returns a handler that passes records to all given handlers.
func Tee(handlers ...slog.Handler) slog.Handler {
	return teeHandler(handlers)
}

type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range t {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	result := make(teeHandler, len(t))
	for i, h := range t {
		result[i] = h.WithAttrs(attrs)
	}
	return result
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	result := make(teeHandler, len(t))
	for i, h := range t {
		result[i] = h.WithGroup(name)
	}
	return result
}
