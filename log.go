package exif66

import (
	"fmt"

	log "github.com/dsoprea/go-logging"
)

// Kind of event reported to a Logger.
type LogCode int

const (
	LogNone LogCode = iota
	LogDebug
	LogNoMemory
	LogCorruptData
)

func (c LogCode) String() string {
	switch c {
	case LogDebug:
		return "debug"
	case LogNoMemory:
		return "no memory"
	case LogCorruptData:
		return "corrupt data"
	}
	return "none"
}

// Sink for anomalies found while decoding and encoding. Domain names the
// part of the codec reporting the event, e.g., "ifd" or "makernote/canon".
type Logger interface {
	Log(code LogCode, domain string, format string, args ...interface{})
}

// Adapter to allow an ordinary function to be used as a Logger.
type LogFunc func(code LogCode, domain string, format string, args ...interface{})

func (f LogFunc) Log(code LogCode, domain string, format string, args ...interface{}) {
	f(code, domain, format, args...)
}

type goLogger struct {
	logger *log.Logger
}

// Return a Logger that writes to a go-logging logger with the given noun.
// Debug events are logged at debug level and everything else as
// warnings.
func NewLogger(noun string) Logger {
	return &goLogger{log.NewLogger(noun)}
}

func (l *goLogger) Log(code LogCode, domain string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	switch code {
	case LogNone:
	case LogDebug:
		l.logger.Debugf(nil, "%s: %s", domain, msg)
	default:
		l.logger.Warningf(nil, "%s: %s (%s)", domain, msg, code)
	}
}

var defaultLogger = NewLogger("exif66")
