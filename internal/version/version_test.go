package version

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return non-empty consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
	require.Contains(t, Full(), Revision)
}

// TestAttachCobraVersionCommand runs the subcommand in both modes.
func TestAttachCobraVersionCommand(t *testing.T) {
	t.Parallel()

	for args, want := range map[string]string{"": Full() + "\n", "--short": Short() + "\n"} {
		root := &cobra.Command{Use: "tool"}
		AttachCobraVersionCommand(root)

		var out bytes.Buffer
		root.SetOut(&out)

		argv := []string{"version"}
		if args != "" {
			argv = append(argv, args)
		}

		root.SetArgs(argv)
		require.NoError(t, root.Execute())
		require.Equal(t, want, out.String())
	}
}
