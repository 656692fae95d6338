package authorize

import "github.com/roxydental/roxydental_backend/config"

// Config selects the casbin model and whether policy changes from other
// instances are picked up through the PostgreSQL watcher.
type Config struct {
	ModelPath string
	Watch     bool
}

// DefaultConfig uses the embedded RBAC model and no watcher.
func DefaultConfig() Config { return Config{} }

func FromCentralConfig(c config.AuthorizationConfig) Config {
	return Config{ModelPath: c.CasbinModelPath, Watch: c.PolicySyncEnabled}
}
