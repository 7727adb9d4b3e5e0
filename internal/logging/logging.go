package logging

import (
	"io"
	"os"

	"fn7-backend/internal/config"

	"github.com/hashicorp/go-hclog"
)

const Name = "fn7-backend"

// New builds the root logger. Sub-loggers created with Named keep their own level,
// so the sdk logger can stay at debug while the rest of the process is quiet.
func New(cfg config.Config) hclog.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.Config, out io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:              Name,
		Level:             hclog.LevelFromString(cfg.LogLevel),
		JSONFormat:        cfg.LogJSON,
		Output:            out,
		IndependentLevels: true,
	})
}

// SDK returns the "sdk" sub-logger at cfg.SDKLogLevel.
func SDK(root hclog.Logger, cfg config.Config) hclog.Logger {
	l := root.Named("sdk")
	l.SetLevel(hclog.LevelFromString(cfg.SDKLogLevel))
	return l
}
