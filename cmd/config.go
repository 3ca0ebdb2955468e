package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	benchCfg "github.com/ZeroLiu2018/mcbench/config"
	"github.com/ZeroLiu2018/mcbench/constants"
)

var configPath string

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mcbench configuration",
	Long:  "View and modify the persisted mcbench configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration",
	Long:  "Write the default configuration (with environment variables applied) to the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		cfg := benchCfg.GetDefaultConfig()
		if err := cfg.WriteConfig(configPath); err != nil {
			return fmt.Errorf("failed to write default config: %w", err)
		}
		fmt.Println("Default configuration saved in", configPath)
		return nil
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View current configuration",
	Long:  "Print the current configuration in JSON format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := benchCfg.ReadConfig(configPath)
		if err != nil {
			return fmt.Errorf("config not found, run 'mcbench config init' first: %w", err)
		}
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Println(string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set field=value",
	Short: "Set a configuration field",
	Long:  "Set the value of a specific configuration field by its snake_case name (e.g. config set value_size=4096)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := strings.SplitN(args[0], "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format, use: field=value")
		}

		cfg, err := benchCfg.ReadConfig(configPath)
		if err != nil {
			return fmt.Errorf("config not found, run 'mcbench config init' first: %w", err)
		}
		if err := setConfigField(cfg, parts[0], parts[1]); err != nil {
			return err
		}
		if err := benchCfg.ValidateConfig(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg.WriteConfig(configPath)
	},
}

// setConfigField matches the snake_case field name against the config struct
// and converts the value according to the field's type.
func setConfigField(cfg *benchCfg.BenchConfig, name, value string) error {
	want := strings.ReplaceAll(name, "_", "")
	configVal := reflect.ValueOf(cfg).Elem()
	fieldVal := configVal.FieldByNameFunc(func(s string) bool {
		return strings.EqualFold(s, want)
	})
	if !fieldVal.IsValid() {
		return fmt.Errorf("field %s not found", name)
	}

	if fieldVal.Type() == reflect.TypeOf(benchCfg.Duration(0)) {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", name, err)
		}
		fieldVal.Set(reflect.ValueOf(benchCfg.Duration(duration)))
		return nil
	}

	switch fieldVal.Kind() {
	case reflect.Int, reflect.Int64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		fieldVal.SetInt(v)
	case reflect.String:
		fieldVal.SetString(value)
	default:
		return fmt.Errorf("unsupported type for field %s", name)
	}
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return constants.DEFAULT_CONFIG_FILE
	}
	return filepath.Join(home, constants.DEFAULT_CONFIG_DIR, constants.DEFAULT_CONFIG_FILE)
}

func init() {
	ConfigCmd.PersistentFlags().StringVar(&configPath, "path", defaultConfigPath(), "config file location")
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configViewCmd)
	ConfigCmd.AddCommand(configSetCmd)
}
