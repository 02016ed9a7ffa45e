package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cuemby/stitch/pkg/stitch"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// STITCH_MACHINE_PROVIDER
const EnvPrefix = "STITCH"

// Config is the root CLI configuration
type Config struct {
	// Namespace is the deployment namespace used when none is given on the
	// command line
	Namespace string `mapstructure:"namespace"`

	// AdminACL lists the addresses allowed to administer deployments
	AdminACL []string `mapstructure:"admin_acl" validate:"dive,required"`

	// MaxPrice is the maximum machine price, 0 meaning unset
	MaxPrice float64 `mapstructure:"max_price" validate:"gte=0"`

	// DataDir holds the revision database
	DataDir string `mapstructure:"data_dir" validate:"required"`

	Log     LogConfig     `mapstructure:"log"`
	Machine MachineConfig `mapstructure:"machine"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// MachineConfig holds the defaults applied to machines built by the CLI
type MachineConfig struct {
	Provider string   `mapstructure:"provider" validate:"required"`
	Size     string   `mapstructure:"size"`
	Region   string   `mapstructure:"region"`
	DiskSize int      `mapstructure:"disk_size" validate:"gte=0"`
	SSHKeys  []string `mapstructure:"ssh_keys" validate:"dive,required"`
}

var validate = validator.New()

// Load reads configuration from a file and environment variables.
// If cfgFile is empty, it searches for stitch.yaml in ., $HOME/.stitch and
// /etc/stitch, and finding none there is not an error; defaults apply. An
// explicit cfgFile must exist.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (STITCH_ prefix)
//  2. Configuration file
//  3. Default values
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("stitch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.stitch")
		v.AddConfigPath("/etc/stitch")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" || !isFileNotFoundError(err) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("namespace", "")
	v.SetDefault("admin_acl", []string{})
	v.SetDefault("max_price", 0.0)
	v.SetDefault("data_dir", defaultDataDir())

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("machine.provider", "Amazon")
	v.SetDefault("machine.size", "")
	v.SetDefault("machine.region", "")
	v.SetDefault("machine.disk_size", 0)
	v.SetDefault("machine.ssh_keys", []string{})
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stitch"
	}
	return filepath.Join(home, ".stitch")
}

// Deployment returns the deployment options
func (c *Config) Deployment() stitch.Config {
	return stitch.Config{
		Namespace: c.Namespace,
		AdminACL:  append([]string{}, c.AdminACL...),
		MaxPrice:  c.MaxPrice,
	}
}

// MachineTemplate returns a role-less machine carrying the configured
// defaults, ready for AsMaster/AsWorker
func (c *Config) MachineTemplate() stitch.Machine {
	return stitch.NewMachine(stitch.MachineConfig{
		Provider: c.Machine.Provider,
		Size:     c.Machine.Size,
		Region:   c.Machine.Region,
		DiskSize: c.Machine.DiskSize,
		SSHKeys:  c.Machine.SSHKeys,
	})
}

// isFileNotFoundError reports whether the search paths held no config file
func isFileNotFoundError(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}
