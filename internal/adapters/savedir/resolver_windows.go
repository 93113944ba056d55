//go:build windows

package savedir

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type knownFolderResolver struct{}

// NewResolver returns the Windows known-folder resolver.
func NewResolver() Resolver {
	return knownFolderResolver{}
}

func (knownFolderResolver) ProfileDir() (string, error) {
	dir, err := windows.KnownFolderPath(windows.FOLDERID_Profile, windows.KF_FLAG_CREATE)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProfileNotFound, err)
	}
	return dir, nil
}

func (knownFolderResolver) LegacySavedGamesDir() (string, error) {
	dir, err := windows.KnownFolderPath(windows.FOLDERID_SavedGames, windows.KF_FLAG_CREATE)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSavedGamesNotFound, err)
	}
	return dir, nil
}
