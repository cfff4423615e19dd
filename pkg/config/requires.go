package config

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ErrVersionMismatch is returned when the binary does not satisfy requires.
var ErrVersionMismatch = errors.New("inclex version does not satisfy requires")

// CheckRequires tests version against the requires constraint. An empty
// constraint and development builds ("dev" or unparsable versions) pass.
func CheckRequires(requires, version string) error {
	if requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(requires)
	if err != nil {
		return fmt.Errorf("invalid requires %q: %w", requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil //nolint:nilerr // development builds carry no semantic version
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not match %s", ErrVersionMismatch, version, requires)
	}
	return nil
}
