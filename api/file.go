// Package api holds the versioned urllang configuration kinds and the file
// helpers shared by them.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/macropower/urllang/pkg/yaml"
)

// AppName names the per-user configuration directory.
const AppName = "urllang"

// LocalConfigNames are the file names searched for by [ResolveConfigPath]
// before falling back to the user configuration directory.
var LocalConfigNames = []string{".urllang.yaml", ".urllang.yml"}

var (
	errIsDir        = errors.New("path is a directory")
	errUnknownState = errors.New("unknown file state")
)

// GetConfigPath returns the path to filename in the user's config directory.
// $XDG_CONFIG_HOME is preferred, then ~/.config, then a temp directory.
func GetConfigPath(filename string) string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, AppName, filename)
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", AppName, filename)
	}

	tmpPath := filepath.Join(os.TempDir(), AppName, filename)

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("error", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpPath
}

// ResolveConfigPath returns the nearest local configuration file above dir,
// or the user configuration file named filename when there is none.
func ResolveConfigPath(dir, filename string) string {
	local, err := FindConfigFile(dir, LocalConfigNames)
	if err != nil {
		slog.Debug("search for local config", slog.String("dir", dir), slog.Any("err", err))
	}
	if local != "" {
		return local
	}

	return GetConfigPath(filename)
}

// ReadFile reads a regular file.
func ReadFile(path string) ([]byte, error) {
	pathInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if pathInfo.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, errIsDir)
	}
	if !pathInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, errUnknownState)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// MarshalYAML serializes an object to YAML bytes.
func MarshalYAML(obj any) ([]byte, error) {
	b := &bytes.Buffer{}

	enc := yaml.NewEncoder(b)
	defer func() {
		err := enc.Close()
		if err != nil {
			slog.Error("close YAML encoder", slog.Any("error", err))
		}
	}()

	err := enc.Encode(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b.Bytes(), nil
}

// WriteIfNotExists writes data to path unless a regular file is already there.
func WriteIfNotExists(path string, data []byte) error {
	exists, err := regularFileExists(path)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// FindConfigFile walks up from targetPath to the filesystem root and returns
// the first file named by one of fileNames. It returns an empty string when
// nothing is found.
func FindConfigFile(targetPath string, fileNames []string) (string, error) {
	absPath, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("stat path: %w", err)
	}

	searchDir := absPath
	if !info.IsDir() {
		searchDir = filepath.Dir(absPath)
	}

	for {
		for _, fileName := range fileNames {
			configPath := filepath.Join(searchDir, fileName)

			_, statErr := os.Stat(configPath)
			if statErr == nil {
				return configPath, nil
			}
		}

		parent := filepath.Dir(searchDir)
		if parent == searchDir {
			return "", nil
		}

		searchDir = parent
	}
}

// WriteDefaultFile writes defaultData to path. An existing file is left in
// place unless force is set, in which case it is renamed to a timestamped
// backup first.
func WriteDefaultFile(path string, defaultData []byte, force bool, kind string) error {
	fileExists, err := regularFileExists(path)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	if fileExists && !force {
		slog.Debug("file already exists, skipping write",
			slog.String("type", kind),
			slog.String("path", path),
		)

		return nil
	}

	if fileExists {
		backupFile := fmt.Sprintf("%s.%d.old", filepath.Base(path), time.Now().UnixNano())
		backupPath := filepath.Join(filepath.Dir(path), backupFile)
		slog.Info("backing up existing file",
			slog.String("type", kind),
			slog.String("path", backupPath),
		)

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("rename existing %s file to backup: %w", kind, err)
		}
	}

	slog.Info("write default file",
		slog.String("type", kind),
		slog.String("path", path),
	)

	err = os.WriteFile(path, defaultData, 0o600)
	if err != nil {
		return fmt.Errorf("write %s file: %w", kind, err)
	}

	return nil
}

func regularFileExists(path string) (bool, error) {
	pathInfo, err := os.Stat(path)
	if err != nil {
		return false, nil //nolint:nilerr // A missing file is written.
	}

	switch {
	case pathInfo.Mode().IsRegular():
		return true, nil
	case pathInfo.IsDir():
		return false, fmt.Errorf("%s: %w", path, errIsDir)
	default:
		return false, fmt.Errorf("%s: %w", path, errUnknownState)
	}
}
