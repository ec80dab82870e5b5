// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AnirudhGatech/IECS-UI/internal/config"
)

func (a *App) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the configuration",
	}
	cmd.AddCommand(
		a.configShowCommand(),
		a.configPathCommand(),
		a.configInitCommand(),
		a.configGetCommand(),
		a.configSetCommand(),
		a.configKeysCommand(),
	)
	return cmd
}

// skipConfig marks cmd to run without loading the config file, so it
// still works when the file is invalid.
func skipConfig(cmd *cobra.Command) *cobra.Command {
	cmd.Annotations = map[string]string{skipConfigAnnotation: "true"}
	return cmd
}

// =============================================================================
// SHOW / GET
// =============================================================================

func (a *App) configShowCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := renderConfig(a.cfg, format)
			if err != nil {
				return err
			}
			source := a.cfgPath
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintln(a.Stdout, DimStyle.Render("# source: "+source))
			fmt.Fprint(a.Stdout, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, json or yaml")
	return cmd
}

// renderConfig encodes cfg in the named format.
func renderConfig(cfg *config.Config, format string) (string, error) {
	switch strings.ToLower(format) {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return "", err
		}
		return buf.String(), nil
	case "json":
		return cfg.String() + "\n", nil
	case "yaml", "yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", usageError("unknown format %q (want toml, json or yaml)", format)
}

func (a *App) configGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.cfg.Get(args[0])
			if err != nil {
				return usageError("%v", err)
			}
			fmt.Fprintln(a.Stdout, v)
			return nil
		},
	}
}

func (a *App) configKeysCommand() *cobra.Command {
	return skipConfig(&cobra.Command{
		Use:   "keys",
		Short: "List configuration keys",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, k := range config.Keys() {
				fmt.Fprintln(a.Stdout, k)
			}
		},
	})
}

// =============================================================================
// PATH / INIT / SET
// =============================================================================

// targetPath is the file written by init and set.
func (a *App) targetPath() (string, error) {
	if a.flags.configPath != "" {
		return a.flags.configPath, nil
	}
	return config.ConfigPathTOML()
}

func (a *App) configPathCommand() *cobra.Command {
	return skipConfig(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.targetPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.Stdout, path)
			return nil
		},
	})
}

func (a *App) configInitCommand() *cobra.Command {
	var force bool
	cmd := skipConfig(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := a.targetPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return usageError("%s already exists (use --force to overwrite)", path)
			}
			if err := checkTOMLPath(path); err != nil {
				return err
			}
			if err := config.SaveTOML(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintln(a.Stdout, SuccessStyle.Render("Wrote "+path))
			return nil
		},
	})
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *App) configSetCommand() *cobra.Command {
	return skipConfig(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one value in the config file",
		Example: `  gtsearch config set search.endpoint https://search.example.edu/api
  gtsearch config set ui.hyperlinks false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.targetPath()
			if err != nil {
				return err
			}
			if err := checkTOMLPath(path); err != nil {
				return err
			}

			// Decode the file alone so environment overrides are not
			// written back.
			cfg := config.Default()
			if err := config.LoadTOML(cfg, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return configError(err)
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return usageError("%v", err)
			}
			cfg.SetDefaults()
			if err := cfg.Validate(); err != nil {
				return configError(err)
			}
			if err := config.SaveTOML(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(a.Stdout, "%s %s = %s\n", SuccessStyle.Render("Set"), args[0], args[1])
			return nil
		},
	})
}

func checkTOMLPath(path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".json" || ext == ".yaml" || ext == ".yml" {
		return usageError("only TOML config files can be written, got %s", path)
	}
	return nil
}
