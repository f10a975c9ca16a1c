/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package logger provides the structured logging surface the reactor core
// emits operational lines on (accept and epoll failures, admission
// refusals, responses from stale sessions, task submission failures, the
// listen line), backed by logrus. The host supplies the sink (stdout, file,
// syslog) as the io.Writer passed to New; this package only shapes entries.
package logger

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface consumed by the reactor package, which
// takes it from config.Config. The sink is supplied by the host; this package only
// shapes entries (level, fields, message composition).
type Logger interface {
	// SetLevel changes the minimal level of logged messages.
	SetLevel(lvl Level)

	// GetLevel returns the minimal level of logged messages.
	GetLevel() Level

	// SetFields sets the default fields attached to every entry.
	SetFields(f Fields)

	// Clone duplicates the logger with its own copy of default fields.
	Clone() Logger

	// Debug logs at DebugLevel.
	Debug(message string, data interface{}, fields Fields)
	// Info logs at InfoLevel.
	Info(message string, data interface{}, fields Fields)
	// Warning logs at WarnLevel.
	Warning(message string, data interface{}, fields Fields)
	// Error logs at ErrorLevel.
	Error(message string, data interface{}, fields Fields)
}

type logger struct {
	lvl atomic.Int32
	fld atomic.Value // Fields
	out *logrus.Logger
}

// New returns a Logger writing to w (os.Stderr when w is nil) at the given
// minimal level.
func New(w io.Writer, lvl Level) Logger {
	if w == nil {
		w = os.Stderr
	}

	l := &logger{
		out: &logrus.Logger{
			Out:       w,
			Formatter: &logrus.TextFormatter{FullTimestamp: true},
			Hooks:     make(logrus.LevelHooks),
			Level:     lvl.logrus(),
		},
	}

	l.lvl.Store(int32(lvl))
	l.fld.Store(NewFields())

	return l
}

func (l *logger) SetLevel(lvl Level) {
	l.lvl.Store(int32(lvl))
	l.out.SetLevel(lvl.logrus())
}

func (l *logger) GetLevel() Level {
	return Level(l.lvl.Load())
}

func (l *logger) SetFields(f Fields) {
	l.fld.Store(f)
}

func (l *logger) getFields() Fields {
	if f, ok := l.fld.Load().(Fields); ok {
		return f
	}
	return NewFields()
}

func (l *logger) Clone() Logger {
	n := &logger{out: l.out}
	n.lvl.Store(l.lvl.Load())
	n.fld.Store(l.getFields().clone())
	return n
}

func (l *logger) entry(message string, data interface{}, fields Fields) *logrus.Entry {
	f := l.getFields().Merge(fields)
	if data != nil {
		f = f.Add("data", data)
	}
	return l.out.WithFields(f.logrus()).WithField("msg", message)
}

func (l *logger) Debug(message string, data interface{}, fields Fields) {
	l.entry(message, data, fields).Debug(message)
}

func (l *logger) Info(message string, data interface{}, fields Fields) {
	l.entry(message, data, fields).Info(message)
}

func (l *logger) Warning(message string, data interface{}, fields Fields) {
	l.entry(message, data, fields).Warning(message)
}

func (l *logger) Error(message string, data interface{}, fields Fields) {
	l.entry(message, data, fields).Error(message)
}
