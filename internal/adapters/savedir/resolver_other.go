//go:build !windows

package savedir

import (
	"fmt"
	"os"
	"path/filepath"
)

// homeResolver treats the home directory as the profile, which matches the
// layout inside Wine and Proton prefixes.
type homeResolver struct{}

// NewResolver returns the home-directory resolver.
func NewResolver() Resolver {
	return homeResolver{}
}

func (homeResolver) ProfileDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProfileNotFound, err)
	}
	return home, nil
}

func (r homeResolver) LegacySavedGamesDir() (string, error) {
	home, err := r.ProfileDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSavedGamesNotFound, err)
	}
	return filepath.Join(home, savedGamesFolder), nil
}
