// Package pathutils normalizes user-supplied directory paths.
package pathutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	homeDirectoryShortcutConstant  = "~"
	homeDirectoryErrorTemplate     = "unable to expand %s: %w"
	workingDirectoryMissingMessage = "working directory is empty"
)

// ErrWorkingDirectoryMissing indicates that a relative directory cannot be anchored.
var ErrWorkingDirectoryMissing = errors.New(workingDirectoryMissingMessage)

// DirectoryResolver turns raw directory flags into absolute, cleaned paths.
type DirectoryResolver struct {
	homeDirectory func() (string, error)
}

// NewDirectoryResolver constructs a DirectoryResolver using the user's home directory for "~".
func NewDirectoryResolver() DirectoryResolver {
	return NewDirectoryResolverWithHome(os.UserHomeDir)
}

// NewDirectoryResolverWithHome constructs a DirectoryResolver with a custom home directory lookup.
func NewDirectoryResolverWithHome(homeDirectory func() (string, error)) DirectoryResolver {
	if homeDirectory == nil {
		homeDirectory = os.UserHomeDir
	}
	return DirectoryResolver{homeDirectory: homeDirectory}
}

// Resolve returns the absolute form of raw. Blank input resolves to workingDirectory, "~" expands
// to the home directory, and other relative paths are anchored at workingDirectory.
func (resolver DirectoryResolver) Resolve(raw string, workingDirectory string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == homeDirectoryShortcutConstant || strings.HasPrefix(trimmed, homeDirectoryShortcutConstant+string(filepath.Separator)) || strings.HasPrefix(trimmed, homeDirectoryShortcutConstant+"/") {
		homeDirectory, homeError := resolver.homeDirectory()
		if homeError != nil {
			return "", fmt.Errorf(homeDirectoryErrorTemplate, trimmed, homeError)
		}
		return filepath.Clean(filepath.Join(homeDirectory, trimmed[len(homeDirectoryShortcutConstant):])), nil
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed), nil
	}

	anchor := strings.TrimSpace(workingDirectory)
	if len(anchor) == 0 {
		return "", ErrWorkingDirectoryMissing
	}
	return filepath.Clean(filepath.Join(anchor, trimmed)), nil
}
