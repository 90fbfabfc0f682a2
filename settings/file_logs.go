package settings

import (
	"io"
	"log" // cannot use zerolog as log options not initialised
	"os"
	"path"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger never writes to stdout, which may be carrying records.
var Logger zerolog.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

var fileLog *lumberjack.Logger

// start a new rotating log file
func makeFileLogger(filename string) *lumberjack.Logger {
	// lumberjack lets us rotate log files automatically
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    2, // megabytes
		MaxBackups: 3,
		MaxAge:     28,    //days
		Compress:   false, // disabled by default
	}
}

func setupLoggers(settings *HDSettings) {
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		log.Printf("Warning unknown log level '%s', using info", settings.LogLevel)
		level = zerolog.InfoLevel
	}
	if fileLog != nil {
		_ = fileLog.Close()
		fileLog = nil
	}
	var out io.Writer = os.Stderr
	if settings.LogPath != "" {
		fileLog = makeFileLogger(path.Join(settings.LogPath, "hashdedupe.log"))
		out = zerolog.MultiLevelWriter(os.Stderr, fileLog)
	}
	Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// CloseLogs releases the log file, if any.
func CloseLogs() error {
	if fileLog == nil {
		return nil
	}
	err := fileLog.Close()
	fileLog = nil
	return err
}
