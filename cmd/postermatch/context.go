package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dweagle/extras/internal/config"
	"github.com/dweagle/extras/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	envFileFlag  *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	logCloser  io.Closer
	loggerErr  error
	runID      string
}

func newCommandContext(configFlag, logLevelFlag, envFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		envFileFlag:  envFileFlag,
		runID:        uuid.NewString(),
	}
}

// loadEnvFile exports variables from the --env-file path without overriding
// anything already set in the environment.
func (c *commandContext) loadEnvFile() error {
	if c.envFileFlag == nil {
		return nil
	}
	path := strings.TrimSpace(*c.envFileFlag)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// ensureLogger builds the run logger once. Console output goes to the
// command's stderr.
func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		opts := logging.OptionsFromConfig(cfg, c.runID)
		opts.Console = cmd.ErrOrStderr()
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			opts.Level = *c.logLevelFlag
		}
		logger, closer, err := logging.New(opts)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
		c.logCloser = closer
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) close() error {
	if c.logCloser == nil {
		return nil
	}
	err := c.logCloser.Close()
	c.logCloser = nil
	return err
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
