package commands

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ENV_CREDENTIALS = "LOVE_SANDWICHES_CREDENTIALS"
	ENV_WORKDIR     = "LOVE_SANDWICHES_WORKDIR"
	ENV_URL         = "LOVE_SANDWICHES_URL"
	ENV_SPREADSHEET = "LOVE_SANDWICHES_SPREADSHEET"

	DEFAULT_SPREADSHEET = "love_sandwiches"
)

// LoadEnv reads default settings from a .env file. A missing file is not an error and
// variables that are already set in the environment take precedence.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// defaults fills any unset options from the environment and then the built-in defaults.
func (c *command) defaults() {
	c.workdir = setting(c.workdir, ENV_WORKDIR, DEFAULT_WORKDIR)
	c.credentials = setting(c.credentials, ENV_CREDENTIALS, DEFAULT_CREDENTIALS)
	c.url = setting(c.url, ENV_URL, "")

	if c.url == "" {
		c.spreadsheet = setting(c.spreadsheet, ENV_SPREADSHEET, DEFAULT_SPREADSHEET)
	}
}

func setting(v string, env string, defval string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}

	if s, ok := os.LookupEnv(env); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}

	return defval
}
