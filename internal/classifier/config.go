package classifier

import (
	"fmt"
	"os"
	"time"
)

// Config holds external classifier parameters.
type Config struct {
	Mode            string `toml:"mode"`
	ProjectID       string `toml:"project_id"`
	Location        string `toml:"location"`
	Model           string `toml:"model"`
	CredentialsFile string `toml:"credentials_file"`
	Timeout         string `toml:"timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Mode            string
	ProjectID       string
	Location        string
	Model           string
	CredentialsFile string
	Timeout         string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.ProjectID != "" {
		c.ProjectID = overlay.ProjectID
	}
	if overlay.Location != "" {
		c.Location = overlay.Location
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.CredentialsFile != "" {
		c.CredentialsFile = overlay.CredentialsFile
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *Config) loadDefaults() {
	if c.Mode == "" {
		c.Mode = ModeVertex
	}
	if c.Location == "" {
		c.Location = "us-central1"
	}
	if c.Model == "" {
		c.Model = "gemini-2.5-pro"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Mode != "" {
		if v := os.Getenv(env.Mode); v != "" {
			c.Mode = v
		}
	}
	if env.ProjectID != "" {
		if v := os.Getenv(env.ProjectID); v != "" {
			c.ProjectID = v
		}
	}
	if env.Location != "" {
		if v := os.Getenv(env.Location); v != "" {
			c.Location = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.CredentialsFile != "" {
		if v := os.Getenv(env.CredentialsFile); v != "" {
			c.CredentialsFile = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
}

func (c *Config) validate() error {
	if c.Mode != ModeVertex && c.Mode != ModeMock {
		return fmt.Errorf("invalid mode: %q", c.Mode)
	}
	if c.Mode == ModeVertex && c.ProjectID == "" {
		return fmt.Errorf("project_id required for vertex mode")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
