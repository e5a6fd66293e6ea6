// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/rewriterc/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent = 2 // spaces to indent file entries
)

// 🎯 Logger writes human readable run output to a console and mirrors every
// line to a structured zerolog logger
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	formatter status.FileFormatter
	mu        sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:      zlog,
		console:   console,
		formatter: status.NewDefaultFileFormatter(),
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatResult formats a file result for display
func (l *Logger) formatResult(res status.FileResult, dryRun bool) string {
	var symbol rune
	var symbolColor color.Attribute
	switch res.Status {
	case status.StatusModified:
		symbol = '✓'
		symbolColor = color.FgGreen
		if dryRun {
			symbol = '⟳'
			symbolColor = color.FgBlue
		}
	case status.StatusUnchanged:
		symbol = '•'
		symbolColor = color.FgCyan
	case status.StatusNotFound:
		symbol = '✗'
		symbolColor = color.FgYellow
	case status.StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.Faint
	}

	return fmt.Sprintf("%s%s %s",
		strings.Repeat(" ", fileIndent),
		color.New(symbolColor).Sprint(string(symbol)),
		l.formatter.FormatResult(res, dryRun))
}

// 📝 LogResult logs the outcome of one file
func (l *Logger) LogResult(res status.FileResult, dryRun bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatResult(res, dryRun))

	ev := l.zlog.Info()
	switch res.Status {
	case status.StatusFailed:
		ev = l.zlog.Error().Err(res.Err)
	case status.StatusNotFound:
		ev = l.zlog.Warn()
	}
	ev.Str("file", res.Path).
		Str("status", res.Status.String()).
		Int("replacements", res.Replacements).
		Bool("dry_run", dryRun).
		Msg("file result")
}

// 📝 LogReport logs every result in order, then the summary line
func (l *Logger) LogReport(report *status.Report) {
	for _, res := range report.Results {
		l.LogResult(res, report.DryRun)
	}

	sum := report.Summary()
	msg := l.formatter.FormatSummary(sum, report.DryRun)

	l.LogNewline()
	switch {
	case sum.Failed > 0:
		l.Error(msg)
	case sum.NotFound > 0:
		l.Warning(msg)
	default:
		l.Success(msg)
	}
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("rewriterc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
