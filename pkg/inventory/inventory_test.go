// pkg/inventory/inventory_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test terraform-outputs parsing and hosts.yaml layout

package inventory_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/hostup/pkg/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const tfOutputs = `{
  "control_plane_names": {"value": ["cp-1", "cp-2"]},
  "control_plane_ips": {"value": ["10.0.1.10", "10.0.1.11"]},
  "worker_ips": {"value": ["10.0.2.10"]},
  "bastion_private_ip": {"value": "10.0.0.5"},
  "bastion_public_ip": {"value": "203.0.113.7"}
}`

func TestLoadOutputsUnwrapsValues(t *testing.T) {
	outputs, err := inventory.LoadOutputs(strings.NewReader(tfOutputs))
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", outputs["bastion_private_ip"])
	names, ok := outputs["control_plane_names"].([]interface{})
	require.True(t, ok)
	assert.Len(t, names, 2)
}

func TestLoadOutputsMalformed(t *testing.T) {
	_, err := inventory.LoadOutputs(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestBuildGroupsAndSynthesizedNames(t *testing.T) {
	outputs, err := inventory.LoadOutputs(strings.NewReader(tfOutputs))
	require.NoError(t, err)

	inv, err := inventory.Build(outputs, "ubuntu", "/home/me/.ssh/id_ed25519")
	require.NoError(t, err)

	assert.Equal(t, []string{"cp-1", "cp-2"}, inv.ControlPlanes)
	// No worker names in outputs: synthesized
	assert.Equal(t, []string{"k8s-worker-1"}, inv.Workers)
	assert.Equal(t, []string{"bastion-1"}, inv.Bastions)
	assert.Empty(t, inv.Warnings)

	cp1 := inv.Hosts["cp-1"]
	assert.Equal(t, "10.0.1.10", cp1.AnsibleHost)
	assert.Equal(t, "ubuntu", cp1.AnsibleUser)
	assert.Equal(t, "/home/me/.ssh/id_ed25519", cp1.AnsibleSSHPrivateKeyFile)

	bastion := inv.Hosts["bastion-1"]
	assert.Equal(t, "10.0.0.5", bastion.IP)
	assert.Equal(t, "203.0.113.7", bastion.AccessIP)
}

func TestBuildWarnsOnMissingIP(t *testing.T) {
	outputs := map[string]interface{}{
		"control_plane_names": []interface{}{"cp-1", "cp-2"},
		"control_plane_ips":   []interface{}{"10.0.1.10"},
	}

	inv, err := inventory.Build(outputs, "ubuntu", "/keys/id")
	require.NoError(t, err)

	assert.Equal(t, []string{"cp-1"}, inv.ControlPlanes)
	require.Len(t, inv.Warnings, 1)
	assert.Contains(t, inv.Warnings[0], "cp-2")
}

func TestBuildNoHosts(t *testing.T) {
	_, err := inventory.Build(map[string]interface{}{}, "ubuntu", "/keys/id")
	assert.Error(t, err)
}

func TestYAMLLayout(t *testing.T) {
	outputs, err := inventory.LoadOutputs(strings.NewReader(tfOutputs))
	require.NoError(t, err)
	inv, err := inventory.Build(outputs, "ubuntu", "/keys/id")
	require.NoError(t, err)

	out, err := inv.YAML()
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out, &doc))

	all := doc["all"].(map[string]interface{})
	hosts := all["hosts"].(map[string]interface{})
	assert.Contains(t, hosts, "cp-1")
	assert.Contains(t, hosts, "k8s-worker-1")
	assert.Contains(t, hosts, "bastion-1")

	children := all["children"].(map[string]interface{})
	assert.Contains(t, children, "kube_control_plane")
	assert.Contains(t, children, "kube_node")
	assert.Contains(t, children, "etcd")

	cluster := children["k8s_cluster"].(map[string]interface{})
	clusterChildren := cluster["children"].(map[string]interface{})
	assert.Contains(t, clusterChildren, "kube_control_plane")
	assert.Contains(t, clusterChildren, "kube_node")

	// etcd mirrors the control plane
	etcd := children["etcd"].(map[string]interface{})["hosts"].(map[string]interface{})
	assert.Contains(t, etcd, "cp-1")
	assert.Contains(t, etcd, "cp-2")
}

func TestWriteCreatesDirectories(t *testing.T) {
	outputs, err := inventory.LoadOutputs(strings.NewReader(tfOutputs))
	require.NoError(t, err)
	inv, err := inventory.Build(outputs, "ubuntu", "/keys/id")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "inventory", "mycluster", "hosts.yaml")
	require.NoError(t, inv.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kube_control_plane")
}
