package cli

import (
	"io"

	"github.com/sdejongh/dirdiff/pkg/config"
	"github.com/sdejongh/dirdiff/pkg/logging"
)

// createLogger writes diagnostics to stderr, or to a rotating file when
// logging.file is set
func createLogger(cfg config.LoggingConfig, stderr io.Writer) (*logging.WriterLogger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	if cfg.File == "" {
		return logging.NewWriterLogger(stderr, format, level), nil
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      level,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
	})
}
