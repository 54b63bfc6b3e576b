package update

import (
	"fmt"
	"strconv"
	"strings"
)

// VersionInfo describes the latest published release of the application.
// Instances are immutable after construction; the checker hands them to the
// manager, which passes them on to event consumers.
type VersionInfo struct {
	DownloadURL  string
	ReleaseNotes string
	Major        int
	Minor        int
}

// String returns the "major.minor" form of the version.
func (v *VersionInfo) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// NewerThan reports whether v is strictly newer than the given version.
func (v *VersionInfo) NewerThan(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor > minor
}

// ParseVersion parses a "major.minor" version string, tolerating a leading
// "v" and a trailing patch component.
func ParseVersion(s string) (major, minor int, err error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")

	parts := strings.Split(trimmed, ".")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid version %q: need major.minor", s)
	}

	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid major version in %q: %w", s, err)
	}

	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minor version in %q: %w", s, err)
	}

	return major, minor, nil
}
