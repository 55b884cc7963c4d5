package main

import (
	"os"

	"github.com/mbaret/npubridge/internal/logger"
)

// newLogger builds the process logger from config and flags. Format "auto"
// uses text output on a terminal and JSON otherwise.
func newLogger(level, format string) logger.Logger {
	lv := logger.ParseLevel(level)
	switch format {
	case "text":
		return logger.Text(os.Stderr, lv)
	case "json":
		return logger.JSON(os.Stderr, lv)
	default:
		if stderrIsTTY() {
			return logger.Text(os.Stderr, lv)
		}
		return logger.JSON(os.Stderr, lv)
	}
}
