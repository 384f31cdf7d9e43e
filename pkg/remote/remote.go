// Package remote builds argument lists for the opaque remote-access
// collaborators (ssh, scp). It only assembles argv slices; the transport
// itself stays in the external binaries.
package remote

import (
	"fmt"

	"github.com/arthur-debert/hostup/pkg/errors"
	"github.com/arthur-debert/hostup/pkg/executor"
	"github.com/arthur-debert/hostup/pkg/types"
	shellwords "github.com/mattn/go-shellwords"
)

// Target identifies the host a run operates against, plus the access
// parameters shared by every ssh/scp invocation of that run.
type Target struct {
	Host         string
	User         string
	Port         string
	IdentityFile string

	// ExtraOptions is a single shell-quoted string of additional ssh
	// options from configuration, e.g. "-o ConnectTimeout=5"
	ExtraOptions string

	// BastionHost/BastionUser route the connection through a jump host
	BastionHost string
	BastionUser string
}

// TargetFromEnv builds a Target from the run environment
func TargetFromEnv(env *types.Environment) Target {
	return Target{
		Host:         env.Get(types.KeyTargetHost),
		User:         env.Get(types.KeyTargetUser),
		Port:         env.Get(types.KeySSHPort),
		IdentityFile: env.Get(types.KeyPrivateKeyPath),
		ExtraOptions: env.Get(types.KeySSHOptions),
		BastionHost:  env.Get(types.KeyBastionHost),
		BastionUser:  env.Get(types.KeyBastionUser),
	}
}

// Destination returns the user@host ssh destination
func (t Target) Destination() string {
	if t.User == "" {
		return t.Host
	}
	return fmt.Sprintf("%s@%s", t.User, t.Host)
}

func (t Target) proxyJump() string {
	if t.BastionHost == "" {
		return ""
	}
	if t.BastionUser == "" {
		return t.BastionHost
	}
	return fmt.Sprintf("%s@%s", t.BastionUser, t.BastionHost)
}

// commonOptions returns the option flags shared by ssh and scp.
// portFlag differs between the two ("-p" vs "-P").
func (t Target) commonOptions(portFlag string) ([]string, error) {
	args := []string{"-o", "StrictHostKeyChecking=accept-new"}

	if t.Port != "" {
		args = append(args, portFlag, t.Port)
	}
	if t.IdentityFile != "" {
		args = append(args, "-i", t.IdentityFile)
	}
	if jump := t.proxyJump(); jump != "" {
		args = append(args, "-o", "ProxyJump="+jump)
	}
	if t.ExtraOptions != "" {
		extra, err := shellwords.Parse(t.ExtraOptions)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput,
				"failed to parse ssh options: %q", t.ExtraOptions)
		}
		args = append(args, extra...)
	}

	return args, nil
}

// SSH builds an ssh invocation running remoteCommand on the target
func (t Target) SSH(remoteCommand string) (executor.Command, error) {
	args, err := t.commonOptions("-p")
	if err != nil {
		return executor.Command{}, err
	}
	args = append(args, t.Destination(), remoteCommand)
	return executor.Command{Name: "ssh", Args: args}, nil
}

// SCP builds an scp invocation copying localPath to remotePath on the target
func (t Target) SCP(localPath, remotePath string) (executor.Command, error) {
	args, err := t.commonOptions("-P")
	if err != nil {
		return executor.Command{}, err
	}
	args = append(args, localPath, fmt.Sprintf("%s:%s", t.Destination(), remotePath))
	return executor.Command{Name: "scp", Args: args}, nil
}
