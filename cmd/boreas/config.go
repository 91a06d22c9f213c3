package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the command's configuration.
type Config struct {
	Scan ScanConfig
	Node NodeConfig
	NATS NATSConfig
}

// ScanConfig holds discovery settings.
type ScanConfig struct {
	Root string
}

// NodeConfig identifies this node in wiring announcements.
type NodeConfig struct {
	Name string
}

// NATSConfig holds announcement settings. Announcing requires a URL.
type NATSConfig struct {
	URL      string
	Announce bool
}

func defaultNodeName() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "boreas"
	}
	return hostname
}

// Load reads configuration from file and env. Env var overrides use prefix
// BOREAS_. configPath takes precedence over BOREAS_CONFIG; when neither is
// set an optional boreas.toml in the working directory is read.
func Load(configPath string) (Config, error) {
	v := viper.New()

	v.SetDefault("scan.root", ".")
	v.SetDefault("node.name", defaultNodeName())
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.announce", false)

	v.SetConfigType("toml")

	if configPath == "" {
		configPath = os.Getenv("BOREAS_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("boreas")
	}

	v.SetEnvPrefix("BOREAS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.NATS.Announce && c.NATS.URL == "" {
		return Config{}, errors.New("nats.announce requires nats.url")
	}
	return c, nil
}
