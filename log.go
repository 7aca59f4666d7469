// Copyright 2024 The xtypes Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package xtypes

import "github.com/sirupsen/logrus"

// Logger is the shape of diagnostic logging the core calls through: a
// four-method leveled surface any structured logger can satisfy. The core
// never fails an operation because logging failed: a Logger call only ever
// annotates a ReturnCode/bool the caller already has.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

// logHelper adapts a *logrus.Entry to Logger.
type logHelper struct {
	entry *logrus.Entry
}

// NewLogger returns a Logger backed by logrus, fielded with component:
// "xtypes" so multi-package callers can filter on it.
func NewLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &logHelper{entry: logger.WithField("component", "xtypes")}
}

func (h *logHelper) Debugf(format string, args ...interface{}) { h.entry.Debugf(format, args...) }
func (h *logHelper) Infof(format string, args ...interface{})  { h.entry.Infof(format, args...) }
func (h *logHelper) Warnf(format string, args ...interface{})  { h.entry.Warnf(format, args...) }
func (h *logHelper) Errorf(format string, args ...interface{}) { h.entry.Errorf(format, args...) }
