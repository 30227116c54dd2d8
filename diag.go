package gif

import "github.com/sirupsen/logrus"

// DiagSink receives non-fatal diagnostics encountered while decoding:
// unknown application extensions (spec: never fail the decode, but worth
// surfacing). A nil sink is a no-op.
type DiagSink interface {
	UnknownApplicationExtension(appID, authCode string)
}

// LogrusDiagSink adapts a *logrus.Logger to DiagSink. It is the default
// sink wired up by cmd/gifcodec's --verbose flag.
type LogrusDiagSink struct {
	Log *logrus.Logger
}

// NewLogrusDiagSink returns a LogrusDiagSink backed by a fresh
// *logrus.Logger at the given level.
func NewLogrusDiagSink(level logrus.Level) *LogrusDiagSink {
	l := logrus.New()
	l.SetLevel(level)
	return &LogrusDiagSink{Log: l}
}

func (s *LogrusDiagSink) UnknownApplicationExtension(appID, authCode string) {
	if s == nil || s.Log == nil {
		return
	}
	s.Log.WithFields(logrus.Fields{
		"app_id":    appID,
		"auth_code": authCode,
	}).Debug("gif: skipped unrecognized application extension")
}
