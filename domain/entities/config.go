package entities

// HostConfig configures how the host finds and runs parser modules.
type HostConfig struct {
	// Candidates are module file names probed in order; the first that opens
	// with the full capability set wins.
	Candidates []string `yaml:"candidates" json:"candidates" validate:"required,min=1,dive,required"`

	// SearchDirs are prefixed to relative candidates. Empty means the
	// working directory.
	SearchDirs []string `yaml:"search_dirs,omitempty" json:"search_dirs,omitempty"`

	// MountDir is exposed read-only to modules as their root directory.
	MountDir string `yaml:"mount_dir" json:"mount_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// MinVersion and MaxVersion bound the accepted module version.
	MinVersion int64 `yaml:"min_version" json:"min_version" validate:"gte=0"`
	MaxVersion int64 `yaml:"max_version" json:"max_version" validate:"gtefield=MinVersion"`

	// MemoryLimitPages caps module memory in 64 KiB pages; 0 keeps the
	// runtime default.
	MemoryLimitPages uint32 `yaml:"memory_limit_pages" json:"memory_limit_pages" validate:"lte=65536"`
}
