// Package save models the save folders found in the game's save directory.
package save

import (
	"path/filepath"
	"strings"
)

// Save naming and layout constants.
const (
	// EndGameSavePrefix marks saves taken after the credits. They are never
	// considered for New Game Plus.
	EndGameSavePrefix = "EndGameSave"

	// PointOfNoReturnPrefix marks saves taken at the point of no return.
	PointOfNoReturnPrefix = "PointOfNoReturn"

	// MetadataFileName is the metadata document inside every save folder.
	MetadataFileName = "metadata.9.json"

	// MinSupportedGameVersion is the oldest gameVersion accepted.
	MinSupportedGameVersion int64 = 2000
)

// Entry is one save folder found while iterating the save directory.
type Entry struct {
	Identifier string // folder name, e.g. "ManualSave-12"
}

// NewEntry creates an Entry for the folder name id.
func NewEntry(id string) Entry {
	return Entry{Identifier: id}
}

// IsEndGameSave reports whether the save is an end-game save.
func (e Entry) IsEndGameSave() bool {
	return strings.HasPrefix(e.Identifier, EndGameSavePrefix)
}

// IsPointOfNoReturn reports whether the save was taken at the point of no return.
func (e Entry) IsPointOfNoReturn() bool {
	return strings.HasPrefix(e.Identifier, PointOfNoReturnPrefix)
}

// MetadataPath returns the metadata file of this save under baseDir.
func (e Entry) MetadataPath(baseDir string) string {
	return filepath.Join(baseDir, e.Identifier, MetadataFileName)
}
