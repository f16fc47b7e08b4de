// Package refdata loads the versioned reference tables (holiday rules, reporters,
// jurisdictions, limitation periods) embedded in the binary.
//
// Tables are immutable after load. A table that fails to decode or carries an
// unsupported version is a build defect, so the Must* helpers panic.
package refdata

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedVersions is the table schema range this build understands
const SupportedVersions = "^1.0.0"

// ErrIncompatibleVersion is returned when a table's version is outside SupportedVersions
var ErrIncompatibleVersion = errors.New("incompatible table version")

// Header is the common preamble of every table document
type Header struct {
	Version string `yaml:"version"`
	Source  string `yaml:"source,omitempty"`
}

// CheckVersion validates a table version string against SupportedVersions
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("parse table version %q: %w", version, err)
	}

	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parse constraint: %w", err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrIncompatibleVersion, version, SupportedVersions)
	}
	return nil
}

// Decode unmarshals a YAML table into out and checks its version header
func Decode(name string, data []byte, out interface{}) error {
	var hdr Header
	if err := yaml.Unmarshal(data, &hdr); err != nil {
		return fmt.Errorf("decode %s header: %w", name, err)
	}
	if err := CheckVersion(hdr.Version); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// MustDecode is Decode for embedded tables; failure is a defect
func MustDecode(name string, data []byte, out interface{}) {
	if err := Decode(name, data, out); err != nil {
		panic(fmt.Sprintf("refdata: %v", err))
	}
}
