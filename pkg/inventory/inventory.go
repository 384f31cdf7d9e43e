// Package inventory generates a Kubespray-compatible Ansible inventory
// from Terraform/OpenTofu outputs (`terraform output -json`). It is
// defensive about output naming: several candidate names are tried per
// group, missing hostnames are synthesized, and missing values become
// warnings rather than hard failures.
package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/logging"
)

// Host is one inventory host entry in Kubespray's expected shape
type Host struct {
	AnsibleHost              string `yaml:"ansible_host"`
	IP                       string `yaml:"ip"`
	AccessIP                 string `yaml:"access_ip,omitempty"`
	AnsibleUser              string `yaml:"ansible_user"`
	AnsibleSSHPrivateKeyFile string `yaml:"ansible_ssh_private_key_file"`
}

// Inventory is a built inventory plus the warnings collected while
// building it
type Inventory struct {
	Hosts         map[string]Host
	ControlPlanes []string
	Workers       []string
	Bastions      []string
	Warnings      []string
}

// LoadOutputs reads a terraform output -json document, unwrapping the
// {"key": {"value": ...}} indirection terraform applies per output
func LoadOutputs(r io.Reader) (map[string]interface{}, error) {
	var raw map[string]interface{}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrInventoryOutputs, "failed to parse outputs JSON")
	}

	outputs := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		if m, ok := v.(map[string]interface{}); ok {
			if inner, present := m["value"]; present {
				outputs[k] = inner
				continue
			}
		}
		outputs[k] = v
	}
	return outputs, nil
}

// Build assembles an inventory from outputs. It fails only when no hosts
// at all are discovered.
func Build(outputs map[string]interface{}, sshUser, sshKey string) (*Inventory, error) {
	logger := logging.GetLogger("inventory")

	inv := &Inventory{Hosts: map[string]Host{}}

	cpNames := asStringSlice(pick(outputs, "control_plane_names", "control_plane_node_names", "cp_names"))
	cpIPs := asStringSlice(pick(outputs, "control_plane_ips", "control_plane_private_ips", "cp_ips"))
	workerNames := asStringSlice(pick(outputs, "worker_names", "worker_node_names"))
	workerIPs := asStringSlice(pick(outputs, "worker_ips", "worker_private_ips"))
	bastionPriv := asStringSlice(pick(outputs, "bastion_private_ip", "bastion_private_ips"))
	bastionPub := asStringSlice(pick(outputs, "bastion_public_ip", "bastion_public_ips"))

	inv.ControlPlanes = inv.addGroup(cpNames, cpIPs, "k8s-cp", sshUser, sshKey)
	inv.Workers = inv.addGroup(workerNames, workerIPs, "k8s-worker", sshUser, sshKey)

	for i, ip := range bastionPriv {
		name := fmt.Sprintf("bastion-%d", i+1)
		host := Host{
			AnsibleHost:              ip,
			IP:                       ip,
			AnsibleUser:              sshUser,
			AnsibleSSHPrivateKeyFile: sshKey,
		}
		if i < len(bastionPub) {
			host.AccessIP = bastionPub[i]
		}
		inv.Hosts[name] = host
		inv.Bastions = append(inv.Bastions, name)
	}

	if len(inv.Hosts) == 0 {
		return nil, errors.New(errors.ErrInventoryOutputs,
			"no hosts discovered in outputs; check for control_plane/worker/bastion keys")
	}

	for _, w := range inv.Warnings {
		logger.Warn().Str("warning", w).Msg("Inventory built with warning")
	}
	return inv, nil
}

// addGroup adds one host group, synthesizing names when absent and
// warning on missing IPs
func (inv *Inventory) addGroup(names, ips []string, prefix, sshUser, sshKey string) []string {
	count := len(names)
	if len(ips) > count {
		count = len(ips)
	}

	var added []string
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("%s-%d", prefix, i+1)
		if i < len(names) {
			name = names[i]
		}
		if i >= len(ips) {
			inv.Warnings = append(inv.Warnings, fmt.Sprintf("missing IP for host %s", name))
			continue
		}
		inv.Hosts[name] = Host{
			AnsibleHost:              ips[i],
			IP:                       ips[i],
			AnsibleUser:              sshUser,
			AnsibleSSHPrivateKeyFile: sshKey,
		}
		added = append(added, name)
	}
	return added
}

// YAML renders the inventory in Kubespray's hosts.yaml layout
func (inv *Inventory) YAML() ([]byte, error) {
	hostRefs := func(names []string) map[string]interface{} {
		refs := make(map[string]interface{}, len(names))
		for _, n := range names {
			refs[n] = map[string]interface{}{}
		}
		return refs
	}

	children := map[string]interface{}{}
	clusterChildren := map[string]interface{}{}
	if len(inv.ControlPlanes) > 0 {
		children["kube_control_plane"] = map[string]interface{}{"hosts": hostRefs(inv.ControlPlanes)}
		children["etcd"] = map[string]interface{}{"hosts": hostRefs(inv.ControlPlanes)}
		clusterChildren["kube_control_plane"] = map[string]interface{}{}
	}
	if len(inv.Workers) > 0 {
		children["kube_node"] = map[string]interface{}{"hosts": hostRefs(inv.Workers)}
		clusterChildren["kube_node"] = map[string]interface{}{}
	}
	children["k8s_cluster"] = map[string]interface{}{"children": clusterChildren}

	doc := map[string]interface{}{
		"all": map[string]interface{}{
			"hosts":    inv.Hosts,
			"children": children,
		},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal inventory")
	}
	return out, nil
}

// Write renders the inventory and writes it to path, creating parent
// directories as needed
func (inv *Inventory) Write(path string) error {
	out, err := inv.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrInventoryWrite, "failed to create inventory directory for %s", path)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrInventoryWrite, "failed to write inventory to %s", path)
	}
	return nil
}

// pick returns the first output present among the candidate names
func pick(outputs map[string]interface{}, candidates ...string) interface{} {
	for _, c := range candidates {
		if v, ok := outputs[c]; ok {
			return v
		}
	}
	return nil
}

// asStringSlice normalizes an output value: a single string becomes a
// one-element slice, a JSON array keeps its string elements
func asStringSlice(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []interface{}:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
