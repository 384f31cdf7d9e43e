package config

import (
	"bytes"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/hostup/pkg/errors"
)

// GenerateConfigContent generates config file content with every value
// commented out, so users uncomment only what they change
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// MarshalOptions renders resolved options back as TOML, used to write a
// config file pre-filled from an interactive session
func MarshalOptions(opts *Options) (string, error) {
	var buf bytes.Buffer
	enc := gotoml.NewEncoder(&buf)
	if err := enc.Encode(opts); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to marshal options")
	}
	return buf.String(), nil
}

// commentOutConfigValues comments out all assignment lines while keeping
// comments, blanks, and section headers as-is
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
