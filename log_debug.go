//go:build debug

package voronoi

import (
	"log"
	"os"
)

var logger = log.New(os.Stderr, "[voronoi DEBUG] ", log.LstdFlags)

func logDebugf(format string, v ...interface{}) {
	logger.Printf(format, v...)
}
