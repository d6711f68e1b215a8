// Package logger builds the tagged component loggers used across the server and terminal hosts.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/sirupsen/logrus"
)

// TagFormatter prints entries as "[TAG] [LEVEL] message key=value ...".
type TagFormatter struct {
	Tag   string
	Color string // Color is applied to the tag; empty disables coloring.
}

// Format implements logrus.Formatter.
func (f *TagFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	tag := "[" + f.Tag + "]"
	if f.Color != "" {
		tag = f.Color + tag + config.ColorReset
	}
	b.WriteString(tag)
	b.WriteByte(' ')
	b.WriteString(levelTag(e.Level))
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelTag(l logrus.Level) string {
	name := "[" + strings.ToUpper(l.String()) + "]"
	switch l {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return config.LogErrorColor + name + config.LogColorReset
	case logrus.WarnLevel:
		return config.LogWarnColor + name + config.LogColorReset
	case logrus.InfoLevel:
		return config.LogInfoColor + name + config.LogColorReset
	default:
		return name
	}
}

// New returns a logger for one component. Output goes to w.
func New(tag, color string, w io.Writer) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&TagFormatter{Tag: tag, Color: color})
	l.SetLevel(logrus.InfoLevel)
	return logrus.NewEntry(l)
}

// Discard returns a logger that drops everything, for tests and quiet hosts.
func Discard() *logrus.Entry {
	return New("", "", io.Discard)
}
