// Package logger is a small structured JSON logger for background components
// (the order watcher and change feeds) that run outside chi's request logging.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service"`
	Action    string `json:"action"`
	Message   string `json:"message"`
	Hostname  string `json:"hostname"`
	Error     string `json:"error,omitempty"`
}

type Logger struct {
	service  string
	hostname string
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()
	return &Logger{service: service, hostname: hostname}
}

func (l *Logger) Info(action, message string) {
	l.log("INFO", action, message, nil)
}

func (l *Logger) Debug(action, message string) {
	l.log("DEBUG", action, message, nil)
}

func (l *Logger) Error(action, message string, err error) {
	l.log("ERROR", action, message, err)
}

func (l *Logger) log(level, action, message string, err error) {
	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Service:   l.service,
		Action:    action,
		Message:   message,
		Hostname:  l.hostname,
	}
	if err != nil {
		e.Error = err.Error()
	}
	data, _ := json.Marshal(e)
	fmt.Println(string(data))
}
