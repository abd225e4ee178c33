package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Init configures the global logrus logger. Level comes from LOG_LEVEL,
// defaulting to info.
func Init() {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
