package main

import (
	"os"
	"strings"

	"github.com/kpango/glg"
)

var logFile *os.File

// levels lists the glg levels from most to least verbose.
var levels = []struct {
	name  string
	level glg.LEVEL
}{
	{"DEBUG", glg.DEBG},
	{"INFO", glg.INFO},
	{"OK", glg.OK},
	{"WARN", glg.WARN},
	{"ERROR", glg.ERR},
	{"FAIL", glg.FAIL},
}

// ConfigureLogging silences every level below the one named by level and copies the
// remaining output to the file at path when one is given.
func ConfigureLogging(level, path string) {

	mode := glg.STD
	if path != "" {
		logFile = glg.FileWriter(path, 0666)
		glg.Get().AddWriter(logFile)
		mode = glg.BOTH
	}

	threshold := strings.ToUpper(strings.TrimSpace(level))
	enabled := false
	for _, l := range levels {
		if l.name == threshold {
			enabled = true
		}
		if enabled {
			glg.Get().SetLevelMode(l.level, mode)
		} else {
			glg.Get().SetLevelMode(l.level, glg.NONE)
		}
	}

	if !enabled {
		// Unknown level names log everything
		for _, l := range levels {
			glg.Get().SetLevelMode(l.level, mode)
		}
		glg.Warnf("Unknown log level %q, logging everything", level)
	}
}

// CloseLogger closes the log file opened by ConfigureLogging.
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
