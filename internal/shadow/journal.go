package shadow

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"go.yaml.in/yaml/v3"

	"github.com/crossbuild-cli/crossbuild/internal/config"
)

const journalFileName = "shadow.journal"

// Journal records an in-flight shadow so a crash between the two renames
// leaves enough state behind to recover the config file.
type Journal struct {
	ConfigPath string    `yaml:"config_path"`
	BackupPath string    `yaml:"backup_path"`
	PID        int       `yaml:"pid"`
	AcquiredAt time.Time `yaml:"acquired_at"`
}

// JournalPath returns the path of the journal file inside the state directory.
func JournalPath() string {
	return filepath.Join(config.Dir(), journalFileName)
}

// ReadJournal returns the current journal entry, or (nil, nil) when no
// shadow is in flight.
func ReadJournal() (*Journal, error) {
	data, err := os.ReadFile(JournalPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading shadow journal: %w", err)
	}

	var j Journal
	if err := yaml.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parsing shadow journal %s: %w", JournalPath(), err)
	}
	return &j, nil
}

// writeJournal atomically persists the journal entry. The write is atomic
// so a crash never leaves a torn journal behind.
func writeJournal(j Journal) error {
	if err := config.EnsureDir(); err != nil {
		return err
	}

	j.PID = os.Getpid()
	j.AcquiredAt = time.Now().UTC()

	data, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("encoding shadow journal: %w", err)
	}

	if err := renameio.WriteFile(JournalPath(), data, 0644); err != nil {
		return fmt.Errorf("writing shadow journal: %w", err)
	}
	return nil
}

// clearJournal removes the journal entry. A missing journal is not an error.
func clearJournal() error {
	if err := os.Remove(JournalPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing shadow journal: %w", err)
	}
	return nil
}
