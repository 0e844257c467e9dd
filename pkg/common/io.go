package common

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

func FileExists(filePath string) (bool, error) {
	info, err := os.Stat(filePath)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Checks if the given filePath matches at least one of the given patterns.
func FilePathMatchesPattern(filePath string, patterns ...string) (bool, error) {
	if patterns == nil {
		return true, nil
	}
	for _, pattern := range patterns {
		isMatch, err := doublestar.Match(filepath.ToSlash(pattern), filepath.ToSlash(filePath))
		if err != nil {
			return false, err
		}
		if isMatch {
			return true, nil
		}
	}
	return false, nil
}
