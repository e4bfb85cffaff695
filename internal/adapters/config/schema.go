package config

// Configfile represents the structure of the autolink.yaml configuration file.
type Configfile struct {
	Version          string                   `yaml:"version"`
	Root             string                   `yaml:"root"`
	SearchPaths      []string                 `yaml:"searchPaths"`
	NativeModulesDir *string                  `yaml:"nativeModulesDir"`
	Exclude          []string                 `yaml:"exclude"`
	MaxDepth         int                      `yaml:"maxDepth"`
	Concurrency      int                      `yaml:"concurrency"`
	Platforms        []string                 `yaml:"platforms"`
	Dependencies     map[string]DependencyDTO `yaml:"dependencies"`
}

// DependencyDTO declares a workspace package.
type DependencyDTO struct {
	Root string `yaml:"root"`
}
