// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/sitecache/internal/ui/output"
	"go.trai.ch/sitecache/internal/ui/style"
)

// Attribute keys the pretty handler renders specially.
const (
	// ProgressKey marks a record as progress output of a running load.
	// Its value is the location or key the progress belongs to.
	ProgressKey = "progress"

	// KeyAttr and LocationAttr name the known-sites key and source
	// location an error or message refers to.
	KeyAttr      = "key"
	LocationAttr = "location"
)

// PrettyHandler is a slog.Handler producing colored, human-readable lines.
//
// Progress records are rendered as "● <subject>  <message>". The subject
// attributes (key, location) lead the attribute list of any other record,
// and attributes of a multi-line message are placed on its first line.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	all := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	all = append(all, h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		if h.group != "" {
			attr.Key = h.group + "." + attr.Key
		}
		all = append(all, attr)
		return true
	})

	var progress string
	var isProgress bool
	var subject, rest []string
	for _, attr := range all {
		switch attr.Key {
		case ProgressKey:
			progress, isProgress = attr.Value.String(), true
		case KeyAttr, LocationAttr:
			subject = append(subject, formatAttr(attr))
		default:
			rest = append(rest, formatAttr(attr))
		}
	}

	first, tail, _ := strings.Cut(r.Message, "\n")

	var prefix string
	var color termenv.Color
	switch {
	case isProgress:
		prefix = style.Dot + " " + progress + "  "
		color = termenv.RGBColor(string(style.Iris))
	case r.Level >= slog.LevelError:
		prefix = style.Cross + " "
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		prefix = style.Warning + " "
		color = termenv.RGBColor(string(style.Yellow))
	default:
		color = termenv.RGBColor(string(style.Slate))
	}

	line := prefix + first
	subject = append(subject, rest...)
	if len(subject) > 0 {
		line += " " + strings.Join(subject, " ")
	}
	if tail != "" {
		line += "\n" + tail
	}

	styled := h.out.String(line).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	grouped := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	grouped = append(grouped, h.attrs...)
	for _, attr := range attrs {
		if h.group != "" {
			attr.Key = h.group + "." + attr.Key
		}
		grouped = append(grouped, attr)
	}

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: grouped,
		group: h.group,
	}
}

// WithGroup returns a new Handler qualifying later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: group,
	}
}

// formatAttr renders attr as key=value, quoting values that contain spaces.
func formatAttr(attr slog.Attr) string {
	value := attr.Value.Resolve().String()
	if strings.ContainsAny(value, " \t\n") || value == "" {
		value = strconv.Quote(value)
	}
	return attr.Key + "=" + value
}
