// Package config provides the configuration loader for autolink.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/autolink/internal/core/domain"
	"go.trai.ch/autolink/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the configuration file.
	FileName = "autolink.yaml"

	// DefaultNativeModulesDir is scanned as a search path, relative to the root, when it exists.
	DefaultNativeModulesDir = "modules"

	supportedVersion = "1"
)

var validPackageNameRegex = regexp.MustCompile(`^(@[a-z0-9~][a-z0-9._~-]*/)?[a-z0-9~][a-z0-9._~-]*$`)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds the project of cwd and returns its settings.
//
// The nearest autolink.yaml in cwd or its ancestors wins. Without one, the nearest directory
// holding a package manifest becomes the root and defaults apply.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	configPath, err := findConfiguration(cwd)
	if err == nil {
		return l.loadConfigfile(configPath)
	}
	if !errors.Is(err, domain.ErrConfigNotFound) {
		return nil, err
	}

	root, err := findManifestRoot(cwd)
	if err != nil {
		return nil, err
	}
	l.Logger.Info(fmt.Sprintf("no %s found, using defaults for %s", FileName, root))
	return buildProject(root, &Configfile{}), nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "no "+FileName), "cwd", cwd)
		}
		currentDir = parentDir
	}
}

func findManifestRoot(cwd string) (string, error) {
	currentDir := cwd
	for {
		if _, err := os.Stat(filepath.Join(currentDir, domain.ManifestFileName)); err == nil {
			return filepath.Clean(currentDir), nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", zerr.With(zerr.Wrap(domain.ErrProjectNotFound, "no "+domain.ManifestFileName), "cwd", cwd)
		}
		currentDir = parentDir
	}
}

func (l *Loader) loadConfigfile(configPath string) (*domain.Project, error) {
	var configfile Configfile
	if err := readAndUnmarshalYAML(configPath, &configfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if err := validateConfigfile(&configfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if len(configfile.Dependencies) == 0 && len(configfile.SearchPaths) == 0 {
		l.Logger.Info(fmt.Sprintf("%s declares no search paths or dependencies", configPath))
	}

	return buildProject(resolveRoot(configPath, configfile.Root), &configfile), nil
}

func validateConfigfile(configfile *Configfile) error {
	if configfile.Version != "" && configfile.Version != supportedVersion {
		err := zerr.Wrap(domain.ErrInvalidConfig, "unsupported version")
		return zerr.With(zerr.With(err, "field", "version"), "value", configfile.Version)
	}
	if configfile.MaxDepth < 0 {
		err := zerr.Wrap(domain.ErrInvalidConfig, "maxDepth must not be negative")
		return zerr.With(zerr.With(err, "field", "maxDepth"), "value", configfile.MaxDepth)
	}
	if configfile.Concurrency < 0 {
		err := zerr.Wrap(domain.ErrInvalidConfig, "concurrency must not be negative")
		return zerr.With(zerr.With(err, "field", "concurrency"), "value", configfile.Concurrency)
	}

	for _, name := range slices.Sorted(maps.Keys(configfile.Dependencies)) {
		if !validPackageNameRegex.MatchString(name) {
			return zerr.With(zerr.Wrap(domain.ErrInvalidDependencyName, "invalid package name"), "dependency", name)
		}
		if configfile.Dependencies[name].Root == "" {
			err := zerr.Wrap(domain.ErrInvalidConfig, "dependency root is required")
			return zerr.With(zerr.With(err, "field", "dependencies."+name+".root"), "dependency", name)
		}
	}
	return nil
}

func buildProject(root string, configfile *Configfile) *domain.Project {
	project := &domain.Project{
		Root:        root,
		Exclude:     canonicalizeStrings(configfile.Exclude),
		MaxDepth:    configfile.MaxDepth,
		Concurrency: configfile.Concurrency,
		Platforms:   canonicalizeStrings(configfile.Platforms),
	}

	for _, p := range configfile.SearchPaths {
		project.SearchPaths = appendUnique(project.SearchPaths, resolvePath(root, p))
	}

	nativeModulesDir := DefaultNativeModulesDir
	if configfile.NativeModulesDir != nil {
		nativeModulesDir = *configfile.NativeModulesDir
	}
	if nativeModulesDir != "" {
		dir := resolvePath(root, nativeModulesDir)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			project.SearchPaths = appendUnique(project.SearchPaths, dir)
		}
	}

	if len(configfile.Dependencies) > 0 {
		project.Declarations = make(map[string]string, len(configfile.Dependencies))
		for name, dto := range configfile.Dependencies {
			project.Declarations[name] = dto.Root
		}
	}

	return project
}

func appendUnique(paths []string, p string) []string {
	if slices.Contains(paths, p) {
		return paths
	}
	return append(paths, p)
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

func resolveRoot(configPath, configuredRoot string) string {
	return resolvePath(filepath.Dir(configPath), configuredRoot)
}

func resolvePath(base, p string) string {
	if p == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to read config file")
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(zerr.Wrap(domain.ErrInvalidConfig, parseErr.Error()), "failed to parse config file")
	}

	return nil
}
