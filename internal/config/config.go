// Package config loads the request core's environment-tunable defaults,
// the same envconfig-struct-with-tags idiom used elsewhere in the stack for
// small, env-driven knob sets.
package config

import "github.com/kelseyhightower/envconfig"

// Defaults holds the five named configuration values from spec §6, each
// overridable via a KINVEY_-prefixed environment variable.
type Defaults struct {
	SyncCollectionName string `envconfig:"SYNC_COLLECTION_NAME" default:"sync"`
	MaxCustomPropsBytes int   `envconfig:"MAX_CUSTOM_PROPS_BYTES" default:"2000"`
	DefaultTimeoutMS    int   `envconfig:"DEFAULT_TIMEOUT_MS" default:"10000"`
	MaxIDsPerRequest    int   `envconfig:"MAX_IDS_PER_REQUEST" default:"200"`
	APIVersion          int   `envconfig:"API_VERSION" default:"3"`
}

// Load reads Defaults from the environment under the KINVEY_ prefix,
// falling back to struct-tag defaults for anything unset.
func Load() (Defaults, error) {
	var d Defaults
	if err := envconfig.Process("kinvey", &d); err != nil {
		return Defaults{}, err
	}
	return d, nil
}
