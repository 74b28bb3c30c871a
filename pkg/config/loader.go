package config

import (
	"os"

	"github.com/kkyr/fig"
)

const EnvPrefix = "RETROFRONT"

// LoadConfig loads a configuration file into the given struct.
// The path param specifies a custom dir with the configuration file.
// Reads and puts environment variables with the prefix RETROFRONT_.
// Params from the config should be in uppercase separated with _.
func LoadConfig(config any, path string) error {
	dirs := []string{path}
	if path == "" {
		dirs = append(dirs, ".", "configs", "../../configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home+"/.retrofront")
		}
	}
	if err := fig.Load(config, fig.File("retrofront.yaml"), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix)); err != nil {
		return err
	}
	if c, ok := config.(*Config); ok {
		c.overrideOptions(os.Environ())
	}
	return nil
}

func LoadConfigEnv(config any) error {
	if err := fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix)); err != nil {
		return err
	}
	if c, ok := config.(*Config); ok {
		c.overrideOptions(os.Environ())
	}
	return nil
}
