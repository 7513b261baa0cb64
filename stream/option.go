package stream

import "github.com/sirupsen/logrus"

// Option is a constructor option function for the Streamer type.
type Option func(*Streamer)

// WithLogger sets the logger used for the streamer's diagnostics. The
// default is the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Streamer) {
		if log != nil {
			s.log = log
		}
	}
}
