// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package logger

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// LogLevel is the severity an individual log line carries; a LogSystem
// only writes lines at or below (i.e. more urgent than) its own configured
// level.
type LogLevel uint32

// Silence..Detail are untyped so they convert implicitly to glog.Level at
// call sites like glog.V(logger.Detail) without this package importing
// glog (which would be a cycle: glog itself never imports logger).
const (
	Silence = iota
	Error
	Warn
	Info
	Core
	Debug
	Detail
)

// LogSystem is one sink a log line can be written to: stderr, a rotated
// file, a JSON stream. This package's Errorf/Infoln-style functions send
// each line, via LogPrint, to every registered LogSystem whose level admits
// it.
type LogSystem interface {
	LogPrint(LogLevel, string)
	SetLogLevel(LogLevel)
	GetLogLevel() LogLevel
}

var (
	logSystemsMu sync.RWMutex
	logSystems   []LogSystem
)

// AddLogSystem registers sys to receive every subsequent log line.
func AddLogSystem(sys LogSystem) {
	logSystemsMu.Lock()
	defer logSystemsMu.Unlock()
	logSystems = append(logSystems, sys)
}

// Reset removes every registered LogSystem; mostly useful for tests.
func Reset() {
	logSystemsMu.Lock()
	defer logSystemsMu.Unlock()
	logSystems = nil
}

func dispatch(level LogLevel, msg string) {
	logSystemsMu.RLock()
	defer logSystemsMu.RUnlock()
	for _, sys := range logSystems {
		if level <= sys.GetLogLevel() {
			sys.LogPrint(level, msg)
		}
	}
}

type stdLogSystem struct {
	mu    sync.Mutex
	out   io.Writer
	flags int
	level LogLevel
}

// NewStdLogSystem returns a LogSystem that writes "01-02|15:04:05 message"
// lines (timestamp, then message; no level) to out.
func NewStdLogSystem(out io.Writer, flags int, level LogLevel) LogSystem {
	return &stdLogSystem{out: out, flags: flags, level: level}
}

func (s *stdLogSystem) LogPrint(level LogLevel, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s %s\n", time.Now().Format("01-02|15:04:05"), msg)
}

func (s *stdLogSystem) SetLogLevel(level LogLevel) { s.level = level }
func (s *stdLogSystem) GetLogLevel() LogLevel      { return s.level }

type mLogSystem struct {
	stdLogSystem
	withTimestamp bool
}

// NewMLogSystem returns a LogSystem that writes each message as-is, prefixed
// by a UnixNano timestamp when withTimestamp is set.
func NewMLogSystem(out io.Writer, flags int, level LogLevel, withTimestamp bool) LogSystem {
	return &mLogSystem{stdLogSystem: stdLogSystem{out: out, flags: flags, level: level}, withTimestamp: withTimestamp}
}

func (s *mLogSystem) LogPrint(level LogLevel, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.withTimestamp {
		fmt.Fprintf(s.out, "%d %s\n", time.Now().UnixNano(), msg)
		return
	}
	fmt.Fprintf(s.out, "%s\n", msg)
}

type jsonLogSystem struct {
	stdLogSystem
}

// NewJsonLogSystem returns a LogSystem that writes one JSON object per
// line: {"t":..., "lvl":..., "msg":...}.
func NewJsonLogSystem(out io.Writer) LogSystem {
	return &jsonLogSystem{stdLogSystem{out: out, level: Detail}}
}

func (s *jsonLogSystem) LogPrint(level LogLevel, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, `{"t":%d,"lvl":%d,"msg":%q}`+"\n", time.Now().Unix(), level, msg)
}

func Errorf(format string, v ...interface{}) { dispatch(Error, fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...interface{})  { dispatch(Warn, fmt.Sprintf(format, v...)) }
func Infof(format string, v ...interface{})  { dispatch(Info, fmt.Sprintf(format, v...)) }
func Debugf(format string, v ...interface{}) { dispatch(Debug, fmt.Sprintf(format, v...)) }

func Errorln(v ...interface{}) { dispatch(Error, fmt.Sprintln(v...)) }
func Warnln(v ...interface{})  { dispatch(Warn, fmt.Sprintln(v...)) }
func Infoln(v ...interface{})  { dispatch(Info, fmt.Sprintln(v...)) }
func Debugln(v ...interface{}) { dispatch(Debug, fmt.Sprintln(v...)) }

// Logger is a named component's line writer (see NewLogger).
type Logger struct {
	mu   sync.Mutex
	name string
}

// NewLogger returns a Logger for the named mlog component. It writes
// through to the standard dispatch at Info severity, tagged with name, so
// a component's mlog lines show up alongside ordinary log output even
// before any dedicated mlog file exists for the running process.
func NewLogger(name string) *Logger {
	return &Logger{name: name}
}

// Sendf writes one mlog line. calldepth is accepted for interface parity
// with glog's depth-aware callers but unused; every mlog line already
// names its own component.
func (l *Logger) Sendf(calldepth int, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	dispatch(Info, fmt.Sprintf("[%s] "+format, append([]interface{}{l.name}, args...)...))
}
