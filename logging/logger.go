/*
 * Copyright 2021. Go-Sharding Author All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 *  File author: Anders Xiao
 */

package logging

import (
	"os"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// StandardLogger is the printf-style surface shared by zap sugared loggers and test loggers.
type StandardLogger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Panic(args ...interface{})
	Fatal(args ...interface{})
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Panicf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})
}

var _ StandardLogger = (*zap.SugaredLogger)(nil)

var loggerMutex sync.RWMutex // guards access to global logger state

// loggers is the set of loggers in the system
var loggers = make(map[string]*zap.SugaredLogger)

var levels = make(map[string]zap.AtomicLevel)
var defaultLevel = zapcore.InfoLevel

var output zapcore.WriteSyncer = zapcore.AddSync(os.Stdout)
var format = ColorizedOutput

// every logger writes through the shared core, so format and output changes reach existing loggers.
var logCore = newSharedCore(newCore(format, output))

func newCore(f LogFormat, out zapcore.WriteSyncer) zapcore.Core {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch f {
	case JSONOutput:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case PlaintextOutput:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}
	// per-logger atomic levels do the filtering
	return zapcore.NewCore(encoder, out, zapcore.DebugLevel)
}

var DefaultLogger = GetLogger("sharding")

func GetLogger(name string) *zap.SugaredLogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	log, ok := loggers[name]
	if !ok {
		level, hasLevel := levels[name]
		if !hasLevel {
			level = zap.NewAtomicLevelAt(defaultLevel)
			levels[name] = level
		}

		log = zap.New(logCore, zap.AddCaller()).
			WithOptions(zap.IncreaseLevel(level)).
			Named(name).
			Sugar()

		loggers[name] = log
	}

	return log
}

// SetLevel changes the level of one named logger, the logger may be created later.
func SetLevel(name string, level zapcore.Level) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if l, ok := levels[name]; ok {
		l.SetLevel(level)
		return
	}
	levels[name] = zap.NewAtomicLevelAt(level)
}

// SetAllLevel changes every known logger and the default level of loggers created later.
func SetAllLevel(level zapcore.Level) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	defaultLevel = level
	for _, l := range levels {
		l.SetLevel(level)
	}
}

func GetLevel(name string) zapcore.Level {
	loggerMutex.RLock()
	defer loggerMutex.RUnlock()
	if l, ok := levels[name]; ok {
		return l.Level()
	}
	return defaultLevel
}

func SetFormat(f LogFormat) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	format = f
	logCore.store(newCore(format, output))
}

func SetOutput(w zapcore.WriteSyncer) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	output = w
	logCore.store(newCore(format, output))
}

// ReplaceCore routes all loggers to the given core until the returned restore function is called.
func ReplaceCore(core zapcore.Core) (restore func()) {
	prev := logCore.core()
	logCore.store(core)
	return func() {
		logCore.store(prev)
	}
}

// coreHolder boxes any core implementation so the pointer always has one type.
type coreHolder struct {
	zapcore.Core
}

type sharedCore struct {
	current *atomic.Pointer[coreHolder]
	fields  []zapcore.Field
}

func newSharedCore(core zapcore.Core) *sharedCore {
	return &sharedCore{current: atomic.NewPointer(&coreHolder{Core: core})}
}

func (c *sharedCore) store(core zapcore.Core) {
	c.current.Store(&coreHolder{Core: core})
}

func (c *sharedCore) core() zapcore.Core {
	return c.current.Load().Core
}

func (c *sharedCore) Enabled(level zapcore.Level) bool {
	return c.core().Enabled(level)
}

func (c *sharedCore) With(fields []zapcore.Field) zapcore.Core {
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)
	return &sharedCore{current: c.current, fields: all}
}

func (c *sharedCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *sharedCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	core := c.core()
	if len(c.fields) > 0 {
		core = core.With(c.fields)
	}
	return core.Write(ent, fields)
}

func (c *sharedCore) Sync() error {
	return c.core().Sync()
}
