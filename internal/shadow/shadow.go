package shadow

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/crossbuild-cli/crossbuild/internal/branding"
	"github.com/crossbuild-cli/crossbuild/internal/cargo"
)

// Sentinel errors reported by Acquire and Restore.
var (
	// ErrBackupExists means the backup path is already occupied, either by
	// a concurrent invocation or by a stranded file from an earlier crash.
	ErrBackupExists = errors.New("backup path already occupied")

	// ErrNotShadowed means there is nothing at the backup path to restore.
	ErrNotShadowed = errors.New("no shadowed config file to restore")

	// ErrRestoreConflict means both the config path and the backup path are
	// occupied, so an unattended restore would overwrite one of them.
	ErrRestoreConflict = errors.New("config file and backup both present")
)

// Shadow represents one acquired configuration shadow. The zero value is
// not usable; obtain one from Acquire and always call Release.
type Shadow struct {
	configPath string
	backupPath string
	moved      bool
	released   bool
	logger     zerolog.Logger
}

// Acquire makes the config file at configPath invisible to the external
// tool by renaming it to its backup path. A missing config file is not an
// error: the shadow is a no-op and Release does nothing.
//
// Acquire fails with ErrBackupExists when the backup path is occupied;
// the occupied backup doubles as the mutual-exclusion check against a
// second concurrent invocation.
func Acquire(logger zerolog.Logger, configPath string) (*Shadow, error) {
	backupPath := cargo.BackupPath(configPath)

	if _, err := os.Stat(backupPath); err == nil {
		return nil, fmt.Errorf("%w at %s: another invocation may be running, or run `%s restore`",
			ErrBackupExists, backupPath, branding.CLIName())
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking backup path %s: %w", backupPath, err)
	}

	s := &Shadow{
		configPath: configPath,
		backupPath: backupPath,
		logger:     logger,
	}

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			// Nothing to hide; the tool already sees no user config.
			logger.Debug().Str("config", configPath).Msg("config file absent, shadow is a no-op")
			return s, nil
		}
		return nil, fmt.Errorf("checking config file %s: %w", configPath, err)
	}

	// Journal first: if the process dies between the journal write and the
	// rename, restore finds a journal with nothing at the backup path and
	// treats it as already restored.
	if err := writeJournal(Journal{ConfigPath: configPath, BackupPath: backupPath}); err != nil {
		return nil, err
	}

	if err := os.Rename(configPath, backupPath); err != nil {
		_ = clearJournal()
		return nil, fmt.Errorf("shadowing config file %s: %w", configPath, err)
	}

	s.moved = true
	logger.Debug().Str("config", configPath).Str("backup", backupPath).Msg("config file shadowed")
	return s, nil
}

// Release moves the config file back to its original path and clears the
// journal. It is idempotent: the second and later calls do nothing. The
// caller defers Release immediately after Acquire so the restore runs on
// every exit path, including tool failure and cancellation.
func (s *Shadow) Release() error {
	if s.released {
		return nil
	}
	s.released = true

	if !s.moved {
		return nil
	}

	if err := os.Rename(s.backupPath, s.configPath); err != nil {
		return fmt.Errorf("restoring config file to %s: %w", s.configPath, err)
	}

	if err := clearJournal(); err != nil {
		return err
	}

	s.logger.Debug().Str("config", s.configPath).Msg("config file restored")
	return nil
}

// Restore recovers a config file stranded at its backup path by an
// earlier failed or interrupted invocation. It returns ErrNotShadowed
// when the backup path is empty and ErrRestoreConflict when both paths
// are occupied; it never overwrites an existing config file.
func Restore(logger zerolog.Logger, configPath string) error {
	backupPath := cargo.BackupPath(configPath)

	backupExists := false
	if _, err := os.Stat(backupPath); err == nil {
		backupExists = true
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking backup path %s: %w", backupPath, err)
	}

	configExists := false
	if _, err := os.Stat(configPath); err == nil {
		configExists = true
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking config file %s: %w", configPath, err)
	}

	switch {
	case !backupExists:
		// A leftover journal with no backup means the rename never happened
		// or was already undone; clearing it is the whole recovery.
		if err := clearJournal(); err != nil {
			return err
		}
		return fmt.Errorf("%w (nothing at %s)", ErrNotShadowed, backupPath)
	case configExists:
		return fmt.Errorf("%w: resolve %s and %s manually", ErrRestoreConflict, configPath, backupPath)
	}

	if err := os.Rename(backupPath, configPath); err != nil {
		return fmt.Errorf("restoring config file to %s: %w", configPath, err)
	}

	if err := clearJournal(); err != nil {
		return err
	}

	logger.Info().Str("config", configPath).Msg("stranded config file restored")
	return nil
}
