// Package logging configures the host-side logrus logger.
package logging

import (
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/itohio/pmmon/pkg/config"
)

// Setup applies cfg to the standard logrus logger. An unknown level falls
// back to info and is reported as an error.
func Setup(cfg config.LogConfig, out io.Writer) error {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	if out != nil {
		log.SetOutput(out)
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.SetLevel(log.InfoLevel)
		return errors.Wrapf(err, "invalid log level %q", cfg.Level)
	}
	log.SetLevel(level)
	return nil
}
