package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Version is the schema version of a wallet document
type Version int

const (
	// VersionUnknown is the zero value, never a valid wallet version
	VersionUnknown Version = iota
	// Version1 and Version2 are the legacy non-HD schemas
	Version1
	Version2
	// Version3 introduced the HD wallet with one legacy derivation per account
	Version3
	// Version4 introduced multiple derivations (legacy and segwit) per account
	Version4

	// LatestVersion is the version produced by the upgrade chain
	LatestVersion = Version4
)

// ParseVersion converts a version string into a Version
func ParseVersion(str string) (Version, error) {
	n, err := strconv.Atoi(str)
	if err != nil {
		return VersionUnknown, fmt.Errorf("%w: %q", ErrUnsupportedVersion, str)
	}
	v := Version(n)
	if !v.IsSupported() {
		return VersionUnknown, fmt.Errorf("%w: %q", ErrUnsupportedVersion, str)
	}
	return v, nil
}

// IsSupported returns whether the version is one of the known ones
func (v Version) IsSupported() bool {
	return v >= Version1 && v <= LatestVersion
}

// IsHD returns whether documents of this version hold an HD wallet
func (v Version) IsHD() bool {
	return v >= Version3
}

func (v Version) String() string {
	return strconv.Itoa(int(v))
}

// MarshalText encodes the version as its string form
func (v Version) MarshalText() ([]byte, error) {
	if !v.IsSupported() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes the version from its string form
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// UnmarshalJSON accepts the version both as a JSON string and as a JSON
// number, older payloads use the latter.
func (v *Version) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		return v.UnmarshalText([]byte(str))
	}
	return v.UnmarshalText(data)
}
