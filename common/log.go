package common

import (
	"path/filepath"

	"github.com/inconshreveable/log15"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogHandler builds the file handler for the run log: logfmt records,
// size-rotated under dir/subDir, filtered to lvl. An unrecognized lvl
// falls back to info.
func LogHandler(dir, subDir, filename, lvl string) log15.Handler {
	level, err := log15.LvlFromString(lvl)
	if err != nil {
		level = log15.LvlInfo
	}
	sink := &lumberjack.Logger{
		Filename:   filepath.Join(dir, subDir, filename),
		MaxSize:    100,
		MaxBackups: 14,
		MaxAge:     14,
		Compress:   true,
		LocalTime:  true,
	}
	return log15.LvlFilterHandler(level, log15.StreamHandler(sink, log15.LogfmtFormat()))
}
