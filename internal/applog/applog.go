// Package applog sets up the info/error log-file pair shared by the
// long-running entry points (simdaemon, simbench), in the same shape
// the teacher's setupLogging uses: one append-only file per level under
// ./logs, timestamped and tagged with the source line.
package applog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Pair is an Info/Error logger pair writing to ./logs/<name>.log and
// ./logs/<name>.error.log respectively.
type Pair struct {
	Info  *log.Logger
	Error *log.Logger
}

// Setup creates ./logs if needed and opens the two append-only log files
// for name.
func Setup(name string) (*Pair, error) {
	logDir := "./logs"
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.Mkdir(logDir, 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	fInfo, err := os.OpenFile(filepath.Join(logDir, name+".log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("opening info log: %w", err)
	}
	fErr, err := os.OpenFile(filepath.Join(logDir, name+".error.log"), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("opening error log: %w", err)
	}

	return &Pair{
		Info:  log.New(fInfo, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		Error: log.New(fErr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
	}, nil
}
