package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/josenarvaezp/curate/internal/partition"
)

const (
	DefaultDropColumn  = "to_be_dropped"
	DefaultConcurrency = 8
)

// Config represents the configuration file specified by the user
type Config struct {
	Region         string `yaml:"region"`
	Local          bool   `yaml:"local"`
	LocalstackHost string `yaml:"localstackHost"`
	LocalstackPort int    `yaml:"localstackPort"`
	LogLevel       int    `yaml:"logLevel"`
	AccountID      string `yaml:"accountID"`

	// job
	Scheme               string              `yaml:"scheme"`
	DropColumn           string              `yaml:"dropColumn"`
	StrictDrop           bool                `yaml:"strictDrop"`
	DestinationPartition partition.Partition `yaml:"destinationPartition"`
	MaxRecordsPerFile    int                 `yaml:"maxRecordsPerFile"`
	Concurrency          int                 `yaml:"concurrency"`

	// signals
	DoneQueue string `yaml:"doneQueue"`
	LogGroup  string `yaml:"logGroup"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	conf := &Config{}
	conf.setDefaults()
	return conf
}

// ReadLocalConfigFile reads the config file from the file system
// note that the path can be absolute or relative path
func ReadLocalConfigFile(path string) (*Config, error) {
	var conf Config

	confFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.UnmarshalStrict(confFile, &conf)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	conf.setDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

// Validate checks the values that cannot be defaulted
func (c *Config) Validate() error {
	if err := c.DestinationPartition.Validate(); err != nil {
		return err
	}
	if c.MaxRecordsPerFile < 0 {
		return fmt.Errorf("maxRecordsPerFile must not be negative, got %d", c.MaxRecordsPerFile)
	}

	return nil
}

func (c *Config) setDefaults() {
	if c.Region == "" {
		c.Region = os.Getenv("AWS_REGION")
	}
	if c.LocalstackHost == "" {
		c.LocalstackHost = LOCALSTACK_HOST_NAME
	}
	if c.LocalstackPort == 0 {
		c.LocalstackPort = LOCALSTACK_PORT
	}
	if c.Scheme == "" {
		c.Scheme = partition.DefaultScheme
	}
	if c.DropColumn == "" {
		c.DropColumn = DefaultDropColumn
	}
	if c.DestinationPartition.IsZero() {
		c.DestinationPartition = partition.DefaultDestination
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
}

// Load reads the config file at path, or returns the default configuration
// when path is empty
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	return ReadLocalConfigFile(path)
}
