package config

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/roemer/extupdate/pkg/common"
	"github.com/roemer/extupdate/pkg/presets"
)

// The extensions which are probed when a config path has no extension.
var ConfigFileExtensions = []string{".json", ".yaml", ".yml"}

// Loads the given configuration
func Load(configPath string) (*ExtupdateConfig, error) {
	if configPath == "" {
		configPath = "local:extupdate"
	}
	if !strings.Contains(configPath, ":") {
		configPath = fmt.Sprintf("local:%s", configPath)
	}
	configInfo, err := newConfigInfo(configPath)
	if err != nil {
		return nil, err
	}
	return loadConfig(nil, configInfo, []string{})
}

// Searches for a config file with one of the known extensions. Returns an empty string if none exists.
func SearchConfigFileFromPath(basePath string) (string, error) {
	for _, ext := range ConfigFileExtensions {
		probePath := basePath + ext
		if exists, err := common.FileExists(probePath); err != nil {
			return "", err
		} else if exists {
			return probePath, nil
		}
	}
	return "", nil
}

// Searches the dir entries for a file with the given base name and one of the known extensions.
func SearchConfigFileFromDirEntries(baseName string, dirEntries []fs.DirEntry) (string, bool) {
	for _, ext := range ConfigFileExtensions {
		idx := slices.IndexFunc(dirEntries, func(entry fs.DirEntry) bool {
			return !entry.IsDir() && entry.Name() == baseName+ext
		})
		if idx >= 0 {
			return dirEntries[idx].Name(), true
		}
	}
	return "", false
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

const (
	infoTypePreset string = "preset"
	infoTypeLocal  string = "local"
	infoTypeWeb    string = "web"
)

var httpSchemeRegex = regexp.MustCompile(`^https?://.+`)

// Holds information about the type and location of a config
type configInfo struct {
	Type     string
	Location string
}

func (ci *configInfo) String() string {
	return fmt.Sprintf("%s:%s", ci.Type, ci.Location)
}

func newConfigInfo(info string) (*configInfo, error) {
	if info == "" {
		return nil, fmt.Errorf("empty config info")
	}

	var configType, configLoc string

	if httpSchemeRegex.MatchString(info) {
		// The info is an url, so use web
		configType = infoTypeWeb
		configLoc = info
	} else {
		parts := strings.SplitN(info, ":", 2)
		if len(parts) == 1 {
			configType = infoTypePreset
			configLoc = parts[0]
		} else {
			configType = parts[0]
			configLoc = parts[1]
		}
	}
	return &configInfo{
		Type:     configType,
		Location: configLoc,
	}, nil
}

func loadConfig(parentInfo, newInfo *configInfo, chain []string) (*ExtupdateConfig, error) {
	if slices.Contains(chain, newInfo.String()) {
		return nil, fmt.Errorf("config '%s' extends itself: %s", newInfo, strings.Join(append(chain, newInfo.String()), " -> "))
	}
	chain = append(chain, newInfo.String())

	var newConfig *ExtupdateConfig
	var err error
	switch newInfo.Type {
	case infoTypePreset:
		newConfig, err = loadConfigFromEmbeddedFile(newInfo.Location)
	case infoTypeLocal:
		newConfig, err = loadConfigFromFile(parentInfo, newInfo)
	case infoTypeWeb:
		newConfig, err = loadConfigFromWeb(newInfo.Location)
	default:
		return nil, fmt.Errorf("unknown config type '%s'", newInfo.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed reading config '%s': %w", newInfo, err)
	}

	// Process the "Extends" presets first
	mergedConfig := &ExtupdateConfig{}
	for _, presetLookupInfo := range newConfig.Extends {
		presetInfo, err := newConfigInfo(presetLookupInfo)
		if err != nil {
			return nil, err
		}
		extendsConfig, err := loadConfig(newInfo, presetInfo, chain)
		if err != nil {
			return nil, err
		}
		mergedConfig.MergeWith(extendsConfig)
	}
	// Merge the original config into the merged config
	mergedConfig.MergeWith(newConfig)
	return mergedConfig, nil
}

func loadConfigFromFile(parentInfo, newInfo *configInfo) (*ExtupdateConfig, error) {
	// Build a list of paths that should be searched
	searchPaths := []string{newInfo.Location}
	if !filepath.IsAbs(newInfo.Location) {
		// Folder of the parent config
		if parentInfo != nil && parentInfo.Type == infoTypeLocal && parentInfo.Location != "" {
			searchPaths = append(searchPaths, filepath.Clean(filepath.Join(filepath.Dir(parentInfo.Location), newInfo.Location)))
		}
		// User config directory
		if userConfigDir, err := os.UserConfigDir(); err == nil {
			searchPaths = append(searchPaths, filepath.Join(userConfigDir, "extupdate", newInfo.Location))
		}
		// Current executable directory
		if executablePath, err := os.Executable(); err == nil {
			searchPaths = append(searchPaths, filepath.Clean(filepath.Join(filepath.Dir(executablePath), newInfo.Location)))
		}
	}

	hasExt := filepath.Ext(newInfo.Location) != ""
	for _, searchPath := range searchPaths {
		finalPath := ""
		if hasExt {
			if exists, err := common.FileExists(searchPath); err != nil {
				return nil, err
			} else if exists {
				finalPath = searchPath
			}
		} else {
			foundPath, err := SearchConfigFileFromPath(searchPath)
			if err != nil {
				return nil, err
			}
			finalPath = foundPath
		}
		if finalPath == "" {
			continue
		}
		configFile, err := os.Open(finalPath)
		if err != nil {
			return nil, fmt.Errorf("failed opening file '%s': %w", finalPath, err)
		}
		defer configFile.Close()
		return decodeConfig(configFile, finalPath)
	}
	return nil, fmt.Errorf("file not found for '%s'", newInfo.Location)
}

func loadConfigFromEmbeddedFile(configPath string) (*ExtupdateConfig, error) {
	// The presets are all in a subfolder
	configPath = path.Join("configs", configPath)
	if path.Ext(configPath) == "" {
		dirEntries, err := presets.Presets.ReadDir(path.Dir(configPath))
		if err != nil {
			return nil, err
		}
		foundPath, found := SearchConfigFileFromDirEntries(path.Base(configPath), dirEntries)
		if !found {
			return nil, fmt.Errorf("could not find a preset for '%s'", configPath)
		}
		configPath = path.Join(path.Dir(configPath), foundPath)
	}
	configFile, err := presets.Presets.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed opening embedded file '%s': %w", configPath, err)
	}
	defer configFile.Close()
	return decodeConfig(configFile, configPath)
}

func loadConfigFromWeb(urlString string) (*ExtupdateConfig, error) {
	parsedUrl, err := url.Parse(urlString)
	if err != nil {
		return nil, err
	}
	content, err := common.HttpUtil.DownloadToMemory(urlString)
	if err != nil {
		return nil, fmt.Errorf("failed downloading config from '%s': %w", urlString, err)
	}
	return decodeConfig(strings.NewReader(string(content)), parsedUrl.Path)
}

// Decodes the config as json or yaml depending on the extension of the path.
func decodeConfig(reader io.Reader, filePath string) (*ExtupdateConfig, error) {
	config := &ExtupdateConfig{}
	if path.Ext(filepath.ToSlash(filePath)) == ".json" {
		if err := json.NewDecoder(reader).Decode(config); err != nil {
			return nil, fmt.Errorf("failed parsing '%s': %w", filePath, err)
		}
	} else {
		if err := yaml.NewDecoder(reader).Decode(config); err != nil {
			return nil, fmt.Errorf("failed parsing '%s': %w", filePath, err)
		}
	}
	return config, nil
}
