package logger

import (
	"bufio"
	"io"
	"log"
	"os"
)

// Logger writes run output to stdout and a buffered log file at the same time,
// so a benchmark leaves a record behind without losing the console feedback.
type Logger struct {
	*log.Logger
	file   *os.File
	writer *bufio.Writer
}

func New(filename string) (*Logger, error) {
	logFile, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return nil, err
	}

	bufferedWriter := bufio.NewWriter(logFile)
	multiWriter := io.MultiWriter(os.Stdout, bufferedWriter)
	l := log.New(multiWriter, "", log.Ldate|log.Ltime|log.Lmicroseconds)

	return &Logger{Logger: l, file: logFile, writer: bufferedWriter}, nil
}

func (l *Logger) Flush() error {
	if l.writer != nil {
		return l.writer.Flush()
	}
	return nil
}

// Close flushes the buffer and closes the underlying log file
func (l *Logger) Close() error {
	if err := l.Flush(); err != nil {
		return err
	}
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
