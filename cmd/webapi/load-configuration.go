package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"gopkg.in/yaml.v2"
)

// Configuration gathers every tweakable setting of the web server. Values
// originate, in order of increasing priority, from defaults, environment
// variables or command line flags, and an optional YAML file.
type Configuration struct {
	conf.Version
	Config struct {
		Path string `conf:"default:./config.yml" yaml:"-"`
	}
	Debug bool `conf:"default:false" yaml:"debug"`
	Web   struct {
		APIHost         string        `conf:"default:0.0.0.0:3000" yaml:"api_host"`
		ReadTimeout     time.Duration `conf:"default:5s" yaml:"read_timeout"`
		WriteTimeout    time.Duration `conf:"default:5s" yaml:"write_timeout"`
		ShutdownTimeout time.Duration `conf:"default:5s" yaml:"shutdown_timeout"`
		SchemaFolder    string        `conf:"default:./static/schema" yaml:"schema_folder"`
	} `yaml:"web"`
	DB struct {
		Filename string `conf:"default:./exertrack.db" yaml:"filename"`
		Seed     string `conf:"default:" yaml:"seed"`
	} `yaml:"db"`
}

const envPrefix = "EXERTRACK"

// loadConfiguration parses defaults, environment variables and flags, then
// overlays the YAML configuration file when one exists at the configured
// path.
func loadConfiguration() (cfg Configuration, err error) {
	cfg.Version.SVN = "1.0.0"
	cfg.Version.Desc = "exercise tracker hypermedia API"

	if err = conf.Parse(os.Args[1:], envPrefix, &cfg); err != nil {
		switch {
		case errors.Is(err, conf.ErrHelpWanted):
			usage, usageErr := conf.Usage(envPrefix, &cfg)
			if usageErr != nil {
				return cfg, fmt.Errorf("generating config usage: %w", usageErr)
			}
			fmt.Println(usage)
			return cfg, err
		case errors.Is(err, conf.ErrVersionWanted):
			version, versionErr := conf.VersionString(envPrefix, &cfg)
			if versionErr != nil {
				return cfg, fmt.Errorf("generating config version: %w", versionErr)
			}
			fmt.Println(version)
			return cfg, conf.ErrHelpWanted
		}
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	// a missing configuration file isn't an error; defaults and env vars suffice
	contents, err := os.ReadFile(cfg.Config.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading configuration file %q: %w", cfg.Config.Path, err)
	}

	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing configuration file %q: %w", cfg.Config.Path, err)
	}

	return cfg, nil
}
