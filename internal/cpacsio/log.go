package cpacsio

import "github.com/golang/glog"

// LogError and LogWarning are the ERROR/WARNING severities of the
// logging macro family spec.md §6 requires the emitted code to have
// available; Go has no macro preprocessor, so these are plain
// functions wrapping glog, the logging library this generator's own
// stages use (see schema.Parse, typesystem.build).
func LogError(format string, args ...interface{})   { glog.Errorf(format, args...) }
func LogWarning(format string, args ...interface{}) { glog.Warningf(format, args...) }
