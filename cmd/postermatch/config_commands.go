package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dweagle/extras/internal/config"
	"github.com/dweagle/extras/internal/fileutil"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	cmd.AddCommand(newConfigInitCommand(ctx))
	cmd.AddCommand(newConfigShowCommand(ctx))
	cmd.AddCommand(newConfigValidateCommand(ctx))
	return cmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var (
		path      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(path)
			if target == "" && ctx.configFlag != nil {
				target = strings.TrimSpace(*ctx.configFlag)
			}
			var err error
			if target == "" {
				target, err = config.DefaultConfigPath()
			} else {
				target, err = config.ExpandPath(target)
			}
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}

			existing := false
			if _, err := os.Stat(target); err == nil {
				existing = true
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat config file: %w", err)
			}
			if existing && !overwrite {
				return fmt.Errorf("config file %s already exists (use --overwrite to replace it)", target)
			}
			if existing {
				backup := target + ".bak"
				if err := fileutil.CopyFile(target, backup); err != nil {
					return fmt.Errorf("back up existing config: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Previous configuration saved to %s\n", backup)
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(cmd.OutOrStdout(), "Set tmdb.api_key and at least one [[radarr]], [[sonarr]] or [[jellyfin]] entry before running 'postermatch match'.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Destination path (default ~/.config/postermatch/config.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg.Redacted())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and report the configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			source := ctx.configPath
			if !ctx.configExists {
				source += " (not found, using defaults)"
			}
			fmt.Fprintln(out, "Configuration valid")
			rows := [][]string{
				{"Config file", source},
				{"Input", cfg.Paths.InputFile},
				{"Output", cfg.Paths.OutputFile},
				{"Remote matching", yesNo(cfg.RemoteEnabled())},
				{"Radarr instances", strconv.Itoa(len(cfg.Radarr))},
				{"Sonarr instances", strconv.Itoa(len(cfg.Sonarr))},
				{"Jellyfin instances", strconv.Itoa(len(cfg.Jellyfin))},
				{"Search cache", yesNo(cfg.SearchCache.Enabled)},
			}
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil, nil))
			return nil
		},
	}
}
