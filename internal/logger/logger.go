package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

// Logger writes tagged, colorized log lines to stdout and mirrors them,
// uncolored, to an append-only log file when one can be opened.
type Logger struct {
	file *os.File

	debugColor   *color.Color
	infoColor    *color.Color
	warnColor    *color.Color
	errorColor   *color.Color
	processColor *color.Color
}

func NewLogger() *Logger {
	l := &Logger{
		debugColor:   color.New(color.FgHiBlack),
		infoColor:    color.New(color.FgCyan),
		warnColor:    color.New(color.FgYellow),
		errorColor:   color.New(color.FgRed, color.Bold),
		processColor: color.New(color.FgGreen),
	}

	file, err := os.OpenFile("club-ticketing.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		l.file = file
	}

	return l
}

func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}

func (l *Logger) write(level string, c *color.Color, tag, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %-5s [%s] %s", timestamp, level, tag, message)

	c.Println(line)

	if l.file != nil {
		fmt.Fprintln(l.file, line)
	}
}

func (l *Logger) Debug(tag, message string) {
	l.write("DEBUG", l.debugColor, tag, message)
}

func (l *Logger) Info(tag, message string) {
	l.write("INFO", l.infoColor, tag, message)
}

func (l *Logger) Warn(tag, message string) {
	l.write("WARN", l.warnColor, tag, message)
}

func (l *Logger) Error(tag, message string) {
	l.write("ERROR", l.errorColor, tag, message)
}

func (l *Logger) Fatal(tag, message string) {
	l.write("FATAL", l.errorColor, tag, message)
	l.Close()
	os.Exit(1)
}

func (l *Logger) LogProcess(stage, message string) {
	l.write("INFO", l.processColor, stage, message)
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogDatabase(operation, table, message string) {
	l.Info("DATABASE", fmt.Sprintf("[%s:%s] %s", operation, table, message))
}

func (l *Logger) LogKafka(operation, topic, message string) {
	l.Info("KAFKA", fmt.Sprintf("[%s:%s] %s", operation, topic, message))
}

func (l *Logger) LogTicket(operation, ticketRef, message string) {
	l.Info("TICKET", fmt.Sprintf("[%s:%s] %s", operation, ticketRef, message))
}

func (l *Logger) LogSecurity(event, message string) {
	l.Warn("SECURITY", fmt.Sprintf("[%s] %s", event, message))
}
