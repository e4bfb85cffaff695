package domain

// DescriptorFileName is the file that marks a package as a linkable native module.
const DescriptorFileName = "module.config.json"

// ModuleDescriptor is the platform-specific description of a linkable native module.
type ModuleDescriptor struct {
	Name     string   `json:"name" yaml:"name"`
	Version  string   `json:"version" yaml:"version"`
	Path     string   `json:"path" yaml:"path"`
	Platform string   `json:"platform" yaml:"platform"`
	Modules  []string `json:"modules" yaml:"modules"`
}
