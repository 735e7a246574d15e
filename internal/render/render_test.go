package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/buildversion/internal/domain/buildversion"
)

func testRecords(t *testing.T) []buildversion.Record {
	t.Helper()

	info, err := buildversion.NewInfo("v3.1-9", "abcdef123456\n", "2024-01-01T00:00:00,000000000+0000\n")
	require.NoError(t, err)

	return info.Records()
}

// TestRender_CPP matches the header included by buildversion.cpp.
func TestRender_CPP(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatCPP, &buf).Render(testRecords(t)))
	require.Equal(t, `static const char buildVersion[] = "3.1.0.9";
static const char buildRevision[] = "abcdef123456";
static const char buildDateTime[] = "2024-01-01T00:00:00,000000000+0000";
`, buf.String())
}

// TestRender_Go produces a gofmt-ed file in the requested package.
func TestRender_Go(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatGo, &buf, WithPackage("buildinfo")).Render(testRecords(t)))
	require.Equal(t, `// Code generated by buildversion-gen. DO NOT EDIT.

package buildinfo

const (
	buildVersion  = "3.1.0.9"
	buildRevision = "abcdef123456"
	buildDateTime = "2024-01-01T00:00:00,000000000+0000"
)
`, buf.String())
}

// TestRender_GoInvalidPackage rejects a package clause gofmt would choke on.
func TestRender_GoInvalidPackage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := NewWriter(FormatGo, &buf, WithPackage("build-info")).Render(testRecords(t))
	require.ErrorIs(t, err, errInvalidName)
	require.Zero(t, buf.Len())
}

// TestRender_EscapesValues keeps opaque values from breaking the source.
func TestRender_EscapesValues(t *testing.T) {
	t.Parallel()

	records := []buildversion.Record{{Name: "buildRevision", Value: `a"b\c`}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatCPP, &buf).Render(records))
	require.Equal(t, `static const char buildRevision[] = "a\"b\\c";`+"\n", buf.String())
}

// TestRender_InvalidName rejects names that cannot be declared.
func TestRender_InvalidName(t *testing.T) {
	t.Parallel()

	records := []buildversion.Record{{Name: "build version", Value: "1"}}

	var buf bytes.Buffer
	require.ErrorIs(t, NewWriter(FormatCPP, &buf).Render(records), errInvalidName)
	require.ErrorIs(t, NewWriter(FormatGo, &buf).Render(records), errInvalidName)
}

// TestRender_Plain writes name=value lines.
func TestRender_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatPlain, &buf).Render(testRecords(t)))
	require.Equal(t, "buildVersion=3.1.0.9\nbuildRevision=abcdef123456\nbuildDateTime=2024-01-01T00:00:00,000000000+0000\n", buf.String())
}

// TestRender_YAML keeps record order and decodes back to the same values.
func TestRender_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatYAML, &buf).Render(testRecords(t)))
	require.Equal(t, `buildVersion: "3.1.0.9"
buildRevision: "abcdef123456"
buildDateTime: "2024-01-01T00:00:00,000000000+0000"
`, buf.String())

	var decoded map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "3.1.0.9", decoded["buildVersion"])
}

// TestRender_JSON writes an object keyed by record name.
func TestRender_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatJSON, &buf).Render(testRecords(t)))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, map[string]string{
		"buildVersion":  "3.1.0.9",
		"buildRevision": "abcdef123456",
		"buildDateTime": "2024-01-01T00:00:00,000000000+0000",
	}, decoded)
}

// TestParseFormat accepts every listed format and rejects the rest.
func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		got, err := ParseFormat(" " + string(f) + " ")
		require.NoError(t, err)
		require.Equal(t, f, got)
	}

	got, err := ParseFormat("CPP")
	require.NoError(t, err)
	require.Equal(t, FormatCPP, got)

	_, err = ParseFormat("toml")
	require.ErrorIs(t, err, ErrUnknownFormat)

	require.ErrorIs(t, NewWriter("toml", &bytes.Buffer{}).Render(nil), ErrUnknownFormat)
}
