package buildversion

import (
	"fmt"
	"strings"
)

// Record names used in generated build headers.
const (
	RecordVersion  = "buildVersion"
	RecordRevision = "buildRevision"
	RecordDateTime = "buildDateTime"
)

// trailingSpace is trimmed from opaque values, which usually come from
// captured command output.
const trailingSpace = " \t\r\n"

// Record is a single name/value pair of a build header.
type Record struct {
	// Name is the identifier the value is declared under.
	Name string `json:"name" yaml:"name"`
	// Value is the literal string value.
	Value string `json:"value" yaml:"value"`
}

// Info is the version metadata embedded into a build.
type Info struct {
	// Version is the parsed tag.
	Version *Version
	// Revision identifies the source snapshot, usually a commit hash.
	Revision string
	// DateTime is the build timestamp, passed through verbatim.
	DateTime string
}

// NewInfo parses tag and trims trailing whitespace from revision and dateTime.
// A malformed tag fails the whole call with a *FormatError.
func NewInfo(tag, revision, dateTime string) (*Info, error) {
	v, err := Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("parse tag: %w", err)
	}

	return &Info{
		Version:  v,
		Revision: strings.TrimRight(revision, trailingSpace),
		DateTime: strings.TrimRight(dateTime, trailingSpace),
	}, nil
}

// Records returns buildVersion, buildRevision and buildDateTime in that order.
func (i *Info) Records() []Record {
	return []Record{
		{Name: RecordVersion, Value: i.Version.String()},
		{Name: RecordRevision, Value: i.Revision},
		{Name: RecordDateTime, Value: i.DateTime},
	}
}
