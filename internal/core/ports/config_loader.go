package ports

import "go.trai.ch/autolink/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration starting at the given working directory and returns the project.
	Load(cwd string) (*domain.Project, error)
}
