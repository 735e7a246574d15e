package printer

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/buildversion/internal/domain/buildversion"
	"github.com/oshokin/buildversion/internal/source"
)

// TestRun_Stdin prints the dotted version for a line read from input.
func TestRun_Stdin(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"v2.5-13\n":          "2.5.0.13\n",
		"v1.0\n":             "1.0.0.0\n",
		"v10.42-7":           "10.42.0.7\n",
		"v2.5-13-gdeadbee\n": "2.5.0.13\n",
	}

	for in, want := range cases {
		var out bytes.Buffer

		err := Run(context.Background(), &Options{
			Input:  strings.NewReader(in),
			Output: &out,
		})
		require.NoError(t, err, in)
		require.Equal(t, want, out.String(), in)
	}
}

// TestRun_FormatError writes nothing and returns the FormatError.
func TestRun_FormatError(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"version2.5\n", "2.5-13\n", "\n"} {
		var out bytes.Buffer

		err := Run(context.Background(), &Options{
			Input:  strings.NewReader(in),
			Output: &out,
		})
		require.ErrorIs(t, err, buildversion.ErrFormat, in)
		require.Zero(t, out.Len(), in)
	}
}

// TestRun_EmptyInput reports missing input rather than a parse failure.
func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{Input: strings.NewReader(""), Output: &out})
	require.ErrorIs(t, err, source.ErrEmptyInput)
	require.Zero(t, out.Len())
}

// TestRun_TagOverride ignores input when a tag is given.
func TestRun_TagOverride(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		Tag:    "v3.1-9",
		Format: FormatSemver,
		Input:  strings.NewReader("garbage"),
		Output: &out,
	})
	require.NoError(t, err)
	require.Equal(t, "3.1.0+9\n", out.String())
}

// TestRun_FromGit uses the configured tag command.
func TestRun_FromGit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "buildversion.yaml")
	settings := "tag_command: [sh, -c, 'echo v4.2-17-g0123abc']\nrevision_command: [sh, -c, 'echo none']\n"
	require.NoError(t, os.WriteFile(path, []byte(settings), 0o600))

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	var out bytes.Buffer

	err := Run(context.Background(), &Options{ConfigPath: path, FromGit: true, Output: &out})
	require.NoError(t, err)
	require.Equal(t, "4.2.0.17\n", out.String())
}

// TestFormat covers every output format.
func TestFormat(t *testing.T) {
	t.Parallel()

	v := buildversion.MustParse("v2.5-13")

	cases := map[string]string{
		"":              "2.5.0.13",
		FormatDotted:    "2.5.0.13",
		FormatSemver:    "2.5.0+13",
		FormatCanonical: "v2.5.0",
		" SEMVER ":      "2.5.0+13",
	}

	for format, want := range cases {
		got, err := Format(v, format)
		require.NoError(t, err, format)
		require.Equal(t, want, got, format)
	}

	_, err := Format(v, "roman")
	require.ErrorIs(t, err, errUnknownFormat)
}
