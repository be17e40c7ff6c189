// Package obslog is the component-scoped logging wrapper around log/slog
// used throughout the daemon and library. Modeled directly on the
// teacher's pkg/logger: a package-global default logger, a per-component
// level override table, and a custom text handler, trimmed of the
// teacher's session-attribute helper (WithSession) since this repo has no
// subscriber-session concept to attach.
package obslog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level names accepted in config files and SetComponentLevel.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Known component names (SPEC_FULL.md AMBIENT STACK / Logging).
const (
	ComponentLibrary = "library"
	ComponentSyncd   = "syncd"
	ComponentBus     = "bus"
	ComponentAttr    = "attr"
	ComponentView    = "view"
)

var (
	Log             *slog.Logger
	defaultLevel    slog.Level
	componentLevels map[string]slog.Level
	levelsMu        sync.RWMutex
	format          string
	pid             int
	loggerCache     sync.Map
)

func init() {
	defaultLevel = slog.LevelInfo
	componentLevels = make(map[string]slog.Level)
	format = "text"
	pid = os.Getpid()

	Log = slog.New(NewTextHandler(os.Stdout, ""))
}

// Configure resets the package-global logger and per-component overrides.
// Called once at process startup from the config file's logging section.
func Configure(logFormat string, level Level, components map[string]Level) {
	levelsMu.Lock()
	defaultLevel = parseLevel(string(level))
	format = logFormat
	componentLevels = make(map[string]slog.Level, len(components))
	for name, lvl := range components {
		componentLevels[name] = parseLevel(string(lvl))
	}
	levelsMu.Unlock()

	loggerCache = sync.Map{}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: defaultLevel})
	} else {
		handler = NewTextHandler(os.Stdout, "")
	}
	Log = slog.New(handler)
}

// Component returns the cached logger for name, creating one on first use.
func Component(name string) *slog.Logger {
	if l, ok := loggerCache.Load(name); ok {
		return l.(*slog.Logger)
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = newJSONHandler(name)
	} else {
		handler = NewTextHandler(os.Stdout, name)
	}

	l := slog.New(handler)
	loggerCache.Store(name, l)
	return l
}

// CurrentLevel reports the effective level for name, honoring per
// -component overrides and dotted-path fallback. Used by the gRPC
// introspection side channel (api/saipb) to answer "what level is this
// component logging at" without exposing the package's internal tables.
func CurrentLevel(name string) Level {
	switch getEffectiveLevel(name) {
	case slog.LevelDebug:
		return LevelDebug
	case slog.LevelWarn:
		return LevelWarn
	case slog.LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

func SetComponentLevel(name string, level Level) {
	levelsMu.Lock()
	componentLevels[name] = parseLevel(string(level))
	levelsMu.Unlock()
	loggerCache.Delete(name)
}

func ClearComponentLevel(name string) {
	levelsMu.Lock()
	delete(componentLevels, name)
	levelsMu.Unlock()
	loggerCache.Delete(name)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEffectiveLevel(component string) slog.Level {
	levelsMu.RLock()
	defer levelsMu.RUnlock()

	if level, ok := componentLevels[component]; ok {
		return level
	}

	path := component
	for {
		idx := strings.LastIndex(path, ".")
		if idx < 0 {
			break
		}
		path = path[:idx]
		if level, ok := componentLevels[path]; ok {
			return level
		}
	}
	return defaultLevel
}

// TextHandler prints "timestamp [pid] [component] message key=value...",
// the same layout as the teacher's BNGTextHandler.
type TextHandler struct {
	mu        sync.Mutex
	w         io.Writer
	attrs     []slog.Attr
	component string
}

func NewTextHandler(w io.Writer, component string) *TextHandler {
	return &TextHandler{w: w, component: component}
}

func (h *TextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= getEffectiveLevel(h.component)
}

func (h *TextHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}

	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006/01/02 15:04:05.000")...)
	buf = append(buf, fmt.Sprintf(" [%d]", pid)...)
	if h.component != "" {
		buf = append(buf, fmt.Sprintf(" [%s]", h.component)...)
	}
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)
	for k, v := range attrs {
		buf = append(buf, fmt.Sprintf(" %s=%v", k, v)...)
	}
	buf = append(buf, '\n')

	_, err := h.w.Write(buf)
	return err
}

func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TextHandler{w: h.w, attrs: append(h.attrs, attrs...), component: h.component}
}

func (h *TextHandler) WithGroup(name string) slog.Handler {
	return &TextHandler{w: h.w, attrs: h.attrs, component: joinComponent(h.component, name)}
}

type jsonHandler struct {
	inner     *slog.JSONHandler
	component string
}

func newJSONHandler(component string) *jsonHandler {
	return &jsonHandler{
		inner:     slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		component: component,
	}
}

func (h *jsonHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= getEffectiveLevel(h.component)
}

func (h *jsonHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.component != "" {
		r.AddAttrs(slog.String("component", h.component))
	}
	return h.inner.Handle(ctx, r)
}

func (h *jsonHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &jsonHandler{inner: h.inner.WithAttrs(attrs).(*slog.JSONHandler), component: h.component}
}

func (h *jsonHandler) WithGroup(name string) slog.Handler {
	return &jsonHandler{inner: h.inner, component: joinComponent(h.component, name)}
}

func joinComponent(component, name string) string {
	if component == "" {
		return name
	}
	return component + "." + name
}
