package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vcf-to-data/internal/output"
)

// configKeys lists the settings that can be persisted, and whether each
// holds a list.
var configKeys = map[string]bool{
	"vcf-file":       false,
	"output":         false,
	"output-format":  false,
	"gnomad-af":      false,
	"gene-list-file": false,
	"gene-field":     false,
	"info-fields":    true,
	"format-fields":  true,
	"verbose":        false,
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vcf-to-data configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.vcf-to-data.yaml.",
		Example: `  vcf-to-data config                                  # show effective config
  vcf-to-data config set output-format json           # default to JSON output
  vcf-to-data config set info-fields Annotation,RankScore
  vcf-to-data config get gnomad-af                    # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

// runConfigShow prints the effective value of every known setting.
func runConfigShow(out io.Writer) error {
	settings := make(map[string]interface{}, len(configKeys))
	for key := range configKeys {
		if val := viper.Get(key); val != nil {
			settings[key] = val
		}
	}
	if len(settings) == 0 {
		fmt.Fprintf(out, "# No configuration set. Config file: ~/%s.yaml\n", configName)
		return nil
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

// runConfigSet stores key in the config file. Only values read from the file
// are written back, so flag defaults do not leak into it.
func runConfigSet(out io.Writer, key, value string) error {
	isList, ok := configKeys[key]
	if !ok {
		return &usageError{err: fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(knownKeys(), ", "))}
	}
	if key == "output-format" {
		if _, err := output.ParseFormat(value); err != nil {
			return &usageError{err: err}
		}
	}

	cfgFile, err := configFilePath()
	if err != nil {
		return err
	}

	file := viper.New()
	file.SetConfigFile(cfgFile)
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reading config: %w", err)
	}

	switch {
	case isList:
		file.Set(key, splitList(value))
	case key == "verbose":
		file.Set(key, parseBool(value))
	default:
		file.Set(key, value)
	}

	if err := file.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "Set %s = %s in %s\n", key, value, cfgFile)
	return nil
}

func runConfigGet(out io.Writer, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	if configKeys[key] {
		fmt.Fprintln(out, strings.Join(getList(key), ","))
		return nil
	}
	fmt.Fprintln(out, val)
	return nil
}

func configFilePath() (string, error) {
	if cfgFile := viper.ConfigFileUsed(); cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, configName+".yaml"), nil
}

func knownKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// getList reads a list setting. Values from the environment arrive as one
// comma-separated string.
func getList(key string) []string {
	var items []string
	for _, v := range viper.GetStringSlice(key) {
		items = append(items, splitList(v)...)
	}
	return items
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true
	}
	return false
}
