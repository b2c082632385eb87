package main

import (
	"log"
	"os"
)

// For log management, use journalctl commands:
//   - View logs: journalctl -u marksix-bot
//   - Follow logs: journalctl -u marksix-bot -f
//   - View errors: journalctl -u marksix-bot -p err
// Refer to the documentation for details on systemd unit setup.

// Loggers for informational and error messages. Operator-facing detail goes
// here; users only ever see the generic replies the handlers compose.
var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
)

// initLoggers sets up separate loggers for stdout and stderr.
func initLoggers() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}
