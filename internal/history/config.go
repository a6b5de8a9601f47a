package history

import "github.com/Lostonepelosone-777/PC-Tool-Manager/internal/errors"

// Config controls snapshot persistence. Recording is off by default; the
// engine itself never touches disk.
type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

func (c Config) Validate() error {
	if c.Enabled && c.DBPath == "" {
		return errors.New().New(errors.ErrInvalidDBPath)
	}

	return nil
}
