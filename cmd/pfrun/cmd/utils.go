package cmd

import (
	"os"

	yaml "gopkg.in/yaml.v2"
)

// fileExists returns nil if path exists, or an error describing why it
// doesn't (or couldn't be stat'ed).
func fileExists(path string) error {
	_, err := os.Stat(path)
	return err
}

// unmarshalYAMLFile reads path and decodes it into out.
func unmarshalYAMLFile(path string, out interface{}) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(buf, out)
}
