package buildversion

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/woozymasta/semver"
)

const (
	// DefaultSubminor is the third version component; tags never carry it.
	DefaultSubminor = "0"
	// DefaultBuild is used when the tag has no -<build> suffix.
	DefaultBuild = "0"

	separator = "."
)

// tagRe matches the leading part of a tag. The end is intentionally left
// unanchored: "v2.5-13-g1a2b3c4" yields 2.5.0.13.
var tagRe = regexp.MustCompile(`^v(\d+)\.(\d+)(?:-(\d+))?`)

// ErrFormat is matched by every FormatError via errors.Is.
var ErrFormat = errors.New("tag does not match v<major>.<minor>[-<build>]")

// FormatError is returned when a tag does not start with v<digits>.<digits>.
type FormatError struct {
	// Tag is the rejected input as it was received.
	Tag string
}

// Error implements error.
func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid version tag %q: %s", strings.TrimRight(e.Tag, "\r\n"), ErrFormat)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Version is a parsed tag. All components are digit strings copied verbatim.
type Version struct {
	// Major is the first number after the leading "v".
	Major string
	// Minor is the number after the first dot.
	Minor string
	// Subminor is always DefaultSubminor.
	Subminor string
	// Build is the number after "-", or DefaultBuild when absent.
	Build string
}

// Parse extracts a Version from the beginning of tag.
// Anything after the matched prefix is ignored.
func Parse(tag string) (*Version, error) {
	m := tagRe.FindStringSubmatch(tag)
	if m == nil {
		return nil, &FormatError{Tag: tag}
	}

	build := m[3]
	if build == "" {
		build = DefaultBuild
	}

	return &Version{
		Major:    m[1],
		Minor:    m[2],
		Subminor: DefaultSubminor,
		Build:    build,
	}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(tag string) *Version {
	v, err := Parse(tag)
	if err != nil {
		panic(err)
	}

	return v
}

// String returns the dotted four-part form, e.g. "2.5.0.13".
func (v *Version) String() string {
	return strings.Join([]string{v.Major, v.Minor, v.Subminor, v.Build}, separator)
}

// Semver returns the version as SemVer with the build number kept as build
// metadata: 2.5.0.13 becomes 2.5.0+13.
func (v *Version) Semver() (semver.Semver, error) {
	raw := v.Major + separator + v.Minor + separator + v.Subminor + "+" + v.Build

	parsed, ok := semver.Parse(raw)
	if !ok || !parsed.IsValid() {
		return semver.Semver{}, fmt.Errorf("convert %s to semver: %w", v, ErrFormat)
	}

	return parsed, nil
}
