package types

import "strconv"

// Environment parameter keys recognized by the step library and the CLI
const (
	KeyTargetHost        = "target_host"
	KeyTargetUser        = "target_user"
	KeyPrivateKeyPath    = "private_key_path"
	KeyCopyPrivateKey    = "copy_private_key"
	KeyRemoteKeyFilename = "remote_key_filename"
	KeyNonInteractive    = "noninteractive"
	KeySSHPort           = "ssh_port"
	KeySSHOptions        = "ssh_options"
	KeyBastionHost       = "bastion_host"
	KeyBastionUser       = "bastion_user"
	KeyPackages          = "packages"
	KeyPlaybookRepo      = "playbook_repo"
	KeyPlaybookRef       = "playbook_ref"
	KeyPlaybookDir       = "playbook_dir"
	KeyInventoryPath     = "inventory_path"
	KeyPlaybookFile      = "playbook_file"
)

// Environment holds the run-scoped parameters. Values are resolved once at
// the start of a run (config file, env vars, prompts) and are read-only for
// the remainder of the run. One runner owns one Environment; environments
// are never shared across runs.
type Environment struct {
	values map[string]string
}

// NewEnvironment creates an Environment from resolved parameters.
// The map is copied, so later mutation of the argument has no effect.
func NewEnvironment(values map[string]string) *Environment {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Environment{values: copied}
}

// Get returns the value for key, or the empty string when unset
func (e *Environment) Get(key string) string {
	return e.values[key]
}

// Lookup returns the value for key and whether it was set
func (e *Environment) Lookup(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// GetBool interprets the value for key as a boolean, false when unset
// or unparseable.
func (e *Environment) GetBool(key string) bool {
	v, ok := e.values[key]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}

// Keys returns the set of keys present, for diagnostics
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	return keys
}
