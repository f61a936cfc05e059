package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Options control where and how the configuration is written. They never
// affect the content of Site().
type Options struct {
	ProjectDir string `mapstructure:"projectDir"`
	DocsDir    string `mapstructure:"docsDir"`
	Format     string `mapstructure:"format"`
	Generator  string `mapstructure:"generator"`
	LogLevel   string `mapstructure:"logLevel"`
}

func (o Options) ConfigFormat() (Format, error) {
	return ParseFormat(o.Format)
}

// Docs returns the docs directory, resolved against the project directory.
func (o Options) Docs() string {
	if filepath.IsAbs(o.DocsDir) {
		return o.DocsDir
	}
	return filepath.Join(o.ProjectDir, o.DocsDir)
}

var flagKeys = map[string]string{
	"project":   "projectDir",
	"docs":      "docsDir",
	"format":    "format",
	"log-level": "logLevel",
}

func loadOptions(cfgFile string, cmd *cobra.Command) (Options, error) {
	var opts Options
	v := viper.New()

	v.SetDefault("projectDir", ".")
	v.SetDefault("docsDir", "docs")
	v.SetDefault("format", string(FormatModule))
	v.SetDefault("generator", "npx vitepress")
	v.SetDefault("logLevel", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("qfe")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("QFE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return opts, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return opts, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&opts); err != nil {
		return opts, fmt.Errorf("unable to decode options: %w", err)
	}
	if _, err := opts.ConfigFormat(); err != nil {
		return opts, err
	}
	return opts, nil
}
