package command

import (
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// PutEntry is one key/value pair a Workload applies via InsertInTable.
type PutEntry struct {
	Key   uint32 `yaml:"key"`
	Value string `yaml:"value"`
}

// Workload describes a small, scripted run of the engine: open a database
// file, apply a handful of inserts, then look a few keys back up and
// report what was found. This is the YAML-described workload the "run"
// command replays; it is a demonstration harness, not a query language.
type Workload struct {
	DBPath   string     `yaml:"db_path"`
	LogLevel string     `yaml:"log_level"`
	RootPage uint32     `yaml:"root_page"`
	Puts     []PutEntry `yaml:"puts"`
	Finds    []uint32   `yaml:"finds"`
}

// loadWorkload reads and parses a YAML workload file at path. A missing
// LogLevel defaults to "info".
func loadWorkload(path string) (*Workload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w := &Workload{LogLevel: "info", RootPage: 1}
	if err := yaml.NewDecoder(f).Decode(w); err != nil {
		return nil, err
	}
	return w, nil
}

func newLogger(levelName string) *log.Logger {
	logger := log.New()
	level, err := log.ParseLevel(levelName)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
