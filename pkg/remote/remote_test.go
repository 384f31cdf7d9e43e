package remote_test

import (
	"testing"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/remote"
	"github.com/arthur-debert/hostup/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSHArgs(t *testing.T) {
	target := remote.Target{
		Host:         "node1.internal",
		User:         "ubuntu",
		Port:         "2222",
		IdentityFile: "/home/me/.ssh/id_ed25519",
	}

	cmd, err := target.SSH("uname -a")
	require.NoError(t, err)
	assert.Equal(t, "ssh", cmd.Name)
	assert.Equal(t, []string{
		"-o", "StrictHostKeyChecking=accept-new",
		"-p", "2222",
		"-i", "/home/me/.ssh/id_ed25519",
		"ubuntu@node1.internal",
		"uname -a",
	}, cmd.Args)
}

func TestSSHBastionProxyJump(t *testing.T) {
	target := remote.Target{
		Host:        "10.0.1.5",
		User:        "ubuntu",
		BastionHost: "bastion.example.com",
		BastionUser: "jump",
	}

	cmd, err := target.SSH("true")
	require.NoError(t, err)
	assert.Contains(t, cmd.Args, "ProxyJump=jump@bastion.example.com")
}

func TestSSHExtraOptionsParsedWithQuoting(t *testing.T) {
	target := remote.Target{
		Host:         "node1",
		User:         "root",
		ExtraOptions: `-o ConnectTimeout=5 -o "ServerAliveInterval 30"`,
	}

	cmd, err := target.SSH("true")
	require.NoError(t, err)
	assert.Contains(t, cmd.Args, "ConnectTimeout=5")
	assert.Contains(t, cmd.Args, "ServerAliveInterval 30")
}

func TestSSHExtraOptionsParseError(t *testing.T) {
	target := remote.Target{
		Host:         "node1",
		ExtraOptions: `-o "unterminated`,
	}

	_, err := target.SSH("true")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSCPArgs(t *testing.T) {
	target := remote.Target{
		Host: "node1",
		User: "ubuntu",
		Port: "2222",
	}

	cmd, err := target.SCP("/local/id_ed25519", "~/.ssh/id_ed25519")
	require.NoError(t, err)
	assert.Equal(t, "scp", cmd.Name)
	// scp uses -P for the port, not -p
	assert.Contains(t, cmd.Args, "-P")
	assert.NotContains(t, cmd.Args, "-p")
	assert.Equal(t, "ubuntu@node1:~/.ssh/id_ed25519", cmd.Args[len(cmd.Args)-1])
}

func TestTargetFromEnv(t *testing.T) {
	env := types.NewEnvironment(map[string]string{
		types.KeyTargetHost:     "node1",
		types.KeyTargetUser:     "ubuntu",
		types.KeySSHPort:        "22",
		types.KeyPrivateKeyPath: "/keys/id",
		types.KeyBastionHost:    "bastion",
	})

	target := remote.TargetFromEnv(env)
	assert.Equal(t, "node1", target.Host)
	assert.Equal(t, "ubuntu", target.User)
	assert.Equal(t, "22", target.Port)
	assert.Equal(t, "/keys/id", target.IdentityFile)
	assert.Equal(t, "bastion", target.BastionHost)
	assert.Equal(t, "ubuntu@node1", target.Destination())
}
