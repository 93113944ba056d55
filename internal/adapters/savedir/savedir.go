// Package savedir locates the game's save directory on the local machine.
package savedir

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Save directory layout under the user profile.
const (
	savedGamesFolder = "Saved Games"
	publisherFolder  = "CD Projekt Red"
	gameFolder       = "Cyberpunk 2077"
)

// Resolver answers the platform folder lookups the scanner needs.
type Resolver interface {
	// ProfileDir returns the user profile directory.
	ProfileDir() (string, error)
	// LegacySavedGamesDir returns the OS "Saved Games" known folder.
	LegacySavedGamesDir() (string, error)
}

// SaveDir returns <profile>/Saved Games/CD Projekt Red/Cyberpunk 2077.
func SaveDir(r Resolver) (string, error) {
	profile, err := r.ProfileDir()
	if errors.Is(err, ErrProfileNotFound) {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProfileNotFound, err)
	}
	if profile == "" {
		return "", ErrProfileNotFound
	}
	return filepath.Join(profile, savedGamesFolder, publisherFolder, gameFolder), nil
}

// Static is a Resolver with fixed answers. An empty field means the lookup fails.
type Static struct {
	Profile    string
	SavedGames string
}

// ProfileDir implements Resolver.
func (s Static) ProfileDir() (string, error) {
	if s.Profile == "" {
		return "", ErrProfileNotFound
	}
	return s.Profile, nil
}

// LegacySavedGamesDir implements Resolver.
func (s Static) LegacySavedGamesDir() (string, error) {
	if s.SavedGames == "" {
		return "", ErrSavedGamesNotFound
	}
	return s.SavedGames, nil
}
