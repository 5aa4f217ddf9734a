package cli

import (
	"github.com/sdejongh/dirdiff/internal/platform"
	"github.com/sdejongh/dirdiff/pkg/config"
)

// normalizeArgs checks both paths are well-formed and cleans them. Existence
// is checked later by the engine, a missing path is not a usage error.
func normalizeArgs(args []string) ([]string, error) {
	paths := make([]string, len(args))
	for i, p := range args {
		if err := platform.ValidatePath(p); err != nil {
			return nil, usageError("%w", err)
		}
		paths[i] = platform.NormalizePath(p)
	}
	return paths, nil
}

// validateConfig checks the merged configuration
func validateConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return usageError("invalid configuration: %w", err)
	}
	return nil
}
