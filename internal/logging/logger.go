package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

type LoggerService interface {
	Log(value string)
	LogError(value string, err error)
	LogWarning(value string)
	LogSuccess(value string)
}

type Logger struct {
	log      *logrus.Logger
	notifier *Notifier
}

// NewLogger builds the application logger. notifier may be nil when
// Telegram forwarding is not configured.
func NewLogger(notifier *Notifier) LoggerService {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return &Logger{
		log:      log,
		notifier: notifier,
	}
}

func (l *Logger) Log(value string) {
	if l == nil {
		return
	}
	l.log.Info(value)
}

func (l *Logger) LogError(value string, err error) {
	if l == nil {
		return
	}
	entry := l.log.WithField("status", "error")
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(value)
	if l.notifier != nil {
		msg := value
		if err != nil {
			msg = value + ": " + err.Error()
		}
		l.notifier.Send(iconError, "ERROR", msg)
	}
}

func (l *Logger) LogWarning(value string) {
	if l == nil {
		return
	}
	l.log.Warn(value)
}

func (l *Logger) LogSuccess(value string) {
	if l == nil {
		return
	}
	l.log.WithField("status", "success").Info(value)
	if l.notifier != nil {
		l.notifier.Send(iconSuccess, "SUCCESS", value)
	}
}

func formatMessage(icon, level, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return icon + " " + level + ": " + v
}
