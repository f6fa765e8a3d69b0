package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/figtools/figgen/pkg/errors"
	"github.com/figtools/figgen/pkg/figure"
)

// fileConfig mirrors the optional figgen config file:
//
//	[tools]
//	drawio   = "/opt/drawio/drawio"
//	dot      = "/usr/bin/dot"
//	inkscape = "/usr/bin/inkscape"
//	magick   = "/usr/bin/convert"
//
//	[kroki]
//	host = "https://kroki.io"
type fileConfig struct {
	Tools toolsConfig `toml:"tools"`
	Kroki krokiConfig `toml:"kroki"`
}

type toolsConfig struct {
	Drawio   string `toml:"drawio"`
	Dot      string `toml:"dot"`
	Inkscape string `toml:"inkscape"`
	Magick   string `toml:"magick"`
}

type krokiConfig struct {
	Host string `toml:"host"`
}

// configDir returns the config directory using XDG standard (~/.config/figgen/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads the config file at path. An empty path selects the
// default location; a missing file is not an error, it just yields the
// zero config so the built-in defaults apply.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// backendConfig merges flag overrides on top of the config file. Flags
// win; empty fields fall through to the engine's built-in defaults.
func backendConfig(cfg fileConfig, opts *convertOpts) figure.Config {
	pick := func(flag, file string) string {
		if flag != "" {
			return flag
		}
		return file
	}
	return figure.Config{
		DrawioPath:   pick(opts.drawioPath, cfg.Tools.Drawio),
		DotPath:      pick(opts.dotPath, cfg.Tools.Dot),
		InkscapePath: pick(opts.inkscapePath, cfg.Tools.Inkscape),
		MagickPath:   pick(opts.magickPath, cfg.Tools.Magick),
		KrokiHost:    cfg.Kroki.Host,
	}
}
