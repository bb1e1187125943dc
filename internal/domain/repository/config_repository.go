package repository

import (
	"github.com/diillson/finops-variance-go/internal/shared/types"
)

// ConfigRepository defines the interface for loading configuration files
// and the process environment.
type ConfigRepository interface {
	LoadConfigFile(filePath string) (*types.Config, error)
	LoadEnv(filenames ...string) error
}
