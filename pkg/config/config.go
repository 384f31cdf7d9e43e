// Package config loads run parameters through layered sources: embedded
// defaults, then the user config file, then HOSTUP_* environment
// variables. Flags and interactive prompts layer on top in the CLI.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/types"
)

const envPrefix = "HOSTUP_"

// Options holds every recognized run parameter
type Options struct {
	TargetHost        string `koanf:"target_host" toml:"target_host"`
	TargetUser        string `koanf:"target_user" toml:"target_user"`
	PrivateKeyPath    string `koanf:"private_key_path" toml:"private_key_path"`
	CopyPrivateKey    bool   `koanf:"copy_private_key" toml:"copy_private_key"`
	RemoteKeyFilename string `koanf:"remote_key_filename" toml:"remote_key_filename"`
	NonInteractive    bool   `koanf:"noninteractive" toml:"noninteractive"`

	SSHPort     string `koanf:"ssh_port" toml:"ssh_port"`
	SSHOptions  string `koanf:"ssh_options" toml:"ssh_options"`
	BastionHost string `koanf:"bastion_host" toml:"bastion_host"`
	BastionUser string `koanf:"bastion_user" toml:"bastion_user"`

	Packages      string `koanf:"packages" toml:"packages"`
	PlaybookRepo  string `koanf:"playbook_repo" toml:"playbook_repo"`
	PlaybookRef   string `koanf:"playbook_ref" toml:"playbook_ref"`
	PlaybookDir   string `koanf:"playbook_dir" toml:"playbook_dir"`
	InventoryPath string `koanf:"inventory_path" toml:"inventory_path"`
	PlaybookFile  string `koanf:"playbook_file" toml:"playbook_file"`
}

// Load resolves Options from defaults, config file, and environment
func Load() (*Options, error) {
	return loadFrom(configFilePaths())
}

// loadFrom is the file-path-injectable core of Load, used by tests
func loadFrom(candidates []string) (*Options, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. First existing config file
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse,
					"failed to load config from %s", path)
			}
			break
		}
	}

	// 3. HOSTUP_* environment variables (HOSTUP_TARGET_HOST -> target_host)
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var opts Options
	if err := k.Unmarshal("", &opts); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to unmarshal config")
	}

	opts.PrivateKeyPath = expandHome(opts.PrivateKeyPath)
	opts.PlaybookDir = expandHome(opts.PlaybookDir)
	return &opts, nil
}

// configFilePaths returns the candidate config file locations in priority order
func configFilePaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "hostup", "hostup.toml"),
		"hostup.toml",
	}
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// EnvironmentMap converts Options into the flat parameter map the run
// environment is built from
func (o *Options) EnvironmentMap() map[string]string {
	return map[string]string{
		types.KeyTargetHost:        o.TargetHost,
		types.KeyTargetUser:        o.TargetUser,
		types.KeyPrivateKeyPath:    o.PrivateKeyPath,
		types.KeyCopyPrivateKey:    strconv.FormatBool(o.CopyPrivateKey),
		types.KeyRemoteKeyFilename: o.RemoteKeyFilename,
		types.KeyNonInteractive:    strconv.FormatBool(o.NonInteractive),
		types.KeySSHPort:           o.SSHPort,
		types.KeySSHOptions:        o.SSHOptions,
		types.KeyBastionHost:       o.BastionHost,
		types.KeyBastionUser:       o.BastionUser,
		types.KeyPackages:          o.Packages,
		types.KeyPlaybookRepo:      o.PlaybookRepo,
		types.KeyPlaybookRef:       o.PlaybookRef,
		types.KeyPlaybookDir:       o.PlaybookDir,
		types.KeyInventoryPath:     o.InventoryPath,
		types.KeyPlaybookFile:      o.PlaybookFile,
	}
}

// Validate checks that the parameters a run cannot proceed without are set
func (o *Options) Validate() error {
	if o.TargetHost == "" {
		return errors.New(errors.ErrConfigValid, "target_host is required")
	}
	if o.TargetUser == "" {
		return errors.New(errors.ErrConfigValid, "target_user is required")
	}
	if o.PrivateKeyPath == "" {
		return errors.New(errors.ErrConfigValid, "private_key_path is required")
	}
	return nil
}
