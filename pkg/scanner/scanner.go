// Package scanner finds installed extensions which opted into update checks.
package scanner

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adhocore/jsonc"
	"github.com/roemer/extupdate/pkg/common"
)

type ScannerSettings struct {
	// The logger to use for the scanner.
	Logger *slog.Logger
	// Patterns of extension directories (relative to the root) which are ignored.
	IgnorePatterns []string
}

type Scanner struct {
	logger   *slog.Logger
	settings *ScannerSettings
}

func NewScanner(settings *ScannerSettings) *Scanner {
	return &Scanner{
		logger:   settings.Logger.With(slog.String("component", "scanner")),
		settings: settings,
	}
}

// The parts of the metadata file which are relevant for updating.
type PackageMetadata struct {
	Name        string           `json:"name"`
	Identifier  string           `json:"identifier"`
	DisplayName string           `json:"displayName"`
	Version     string           `json:"version"`
	Updater     *UpdaterMetadata `json:"extensionUpdater"`
}

type UpdaterMetadata struct {
	UpdateUrl string `json:"updateUrl"`
}

// Scans the direct subdirectories of root and returns all extensions which opted into update checks, ordered by identifier.
func (s *Scanner) Scan(root string) ([]*common.PackageDescriptor, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed reading extensions directory '%s': %w", root, err)
	}

	byIdentifier := map[string]*common.PackageDescriptor{}
	byDisplayName := map[string]string{}
	for _, entry := range entries {
		if !s.isDirectory(root, entry) {
			continue
		}
		if len(s.settings.IgnorePatterns) > 0 {
			if isIgnored, err := common.FilePathMatchesPattern(entry.Name(), s.settings.IgnorePatterns...); err != nil {
				return nil, fmt.Errorf("invalid ignore pattern: %w", err)
			} else if isIgnored {
				s.logger.Debug(fmt.Sprintf("Ignoring directory '%s'", entry.Name()))
				continue
			}
		}

		descriptor := s.readDescriptor(filepath.Join(root, entry.Name()))
		if descriptor == nil {
			continue
		}
		if existing, ok := byIdentifier[descriptor.Identifier]; ok {
			s.logger.Warn(fmt.Sprintf("Extension '%s' found in '%s' and '%s', ignoring the latter", descriptor.Identifier, existing.Directory, descriptor.Directory))
			continue
		}
		if otherId, ok := byDisplayName[descriptor.DisplayName]; ok {
			s.logger.Warn(fmt.Sprintf("Extensions '%s' and '%s' share the display name '%s'", otherId, descriptor.Identifier, descriptor.DisplayName))
		} else {
			byDisplayName[descriptor.DisplayName] = descriptor.Identifier
		}
		byIdentifier[descriptor.Identifier] = descriptor
	}

	descriptors := make([]*common.PackageDescriptor, 0, len(byIdentifier))
	for _, descriptor := range byIdentifier {
		descriptors = append(descriptors, descriptor)
	}
	slices.SortFunc(descriptors, func(a, b *common.PackageDescriptor) int {
		return strings.Compare(a.Identifier, b.Identifier)
	})
	s.logger.Debug(fmt.Sprintf("Found %d extension(s) with update information", len(descriptors)))
	return descriptors, nil
}

func (s *Scanner) isDirectory(root string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	// Follow symlinks to directories
	if entry.Type()&os.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(root, entry.Name()))
		return err == nil && info.IsDir()
	}
	return false
}

// Reads the descriptor from the given extension directory. Returns nil if the extension does not participate.
func (s *Scanner) readDescriptor(directory string) *common.PackageDescriptor {
	metadataPath := filepath.Join(directory, common.PACKAGE_METADATA_FILE)
	content, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil
	}
	metadata, err := ParseMetadata(content)
	if err != nil {
		s.logger.Debug(fmt.Sprintf("Skipping '%s': %s", metadataPath, err))
		return nil
	}
	if metadata.Updater == nil || strings.TrimSpace(metadata.Updater.UpdateUrl) == "" {
		return nil
	}

	identifier := metadata.Identifier
	if identifier == "" {
		identifier = metadata.Name
	}
	if identifier == "" {
		identifier = filepath.Base(directory)
	}
	displayName := metadata.DisplayName
	if displayName == "" {
		displayName = identifier
	}
	return &common.PackageDescriptor{
		Identifier:       identifier,
		DisplayName:      displayName,
		InstalledVersion: strings.TrimSpace(metadata.Version),
		UpdateEndpoint:   strings.TrimSpace(metadata.Updater.UpdateUrl),
		Directory:        directory,
	}
}

// Parses the content of a metadata file. Comments and trailing commas are allowed.
func ParseMetadata(content []byte) (*PackageMetadata, error) {
	j := jsonc.New()
	stripped := j.StripS(string(content))
	metadata := &PackageMetadata{}
	if err := json.Unmarshal([]byte(stripped), metadata); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrParse, err)
	}
	return metadata, nil
}
