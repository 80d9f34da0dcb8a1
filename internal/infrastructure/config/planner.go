package config

// PlannerConfig holds plan building defaults
type PlannerConfig struct {
	// Policy applied to new alternative sets
	DefaultPolicy string `mapstructure:"default_policy" validate:"required,policy"`

	// Include recipes the player has not unlocked yet
	AllowLocked bool `mapstructure:"allow_locked"`

	// Build ceilings. 0 picks the default, -1 disables the ceiling.
	MaxDepth int `mapstructure:"max_depth" validate:"min=-1"`
	MaxNodes int `mapstructure:"max_nodes" validate:"min=-1"`
}

// Limit converts a configured ceiling to a build limit where 0 means unlimited
func Limit(configured int) int {
	if configured < 0 {
		return 0
	}
	return configured
}
