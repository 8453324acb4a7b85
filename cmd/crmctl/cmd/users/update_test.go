package users

import (
	"testing"

	"github.com/adityaj-eiosys/mycrm-frontend/pkg/sdk"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateInput(t *testing.T) {
	newFlags := func(t *testing.T, args ...string) *pflag.FlagSet {
		flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
		flags.StringVar(&updateName, "name", "", "")
		flags.StringVar(&updateEmail, "email", "", "")
		flags.StringVar(&updateMobile, "mobile", "", "")
		flags.BoolVar(&updateEnabled, "enabled", true, "")
		flags.BoolVar(&updatePasswordStdin, "password-stdin", false, "")
		require.NoError(t, flags.Parse(args))
		return flags
	}

	t.Run("disable", func(t *testing.T) {
		got, err := updateInput(newFlags(t, "--enabled=false"))
		require.NoError(t, err)
		assert.Equal(t, sdk.UpdateUserInput{Enabled: sdk.Ptr(false)}, got)
	})

	t.Run("password only is accepted", func(t *testing.T) {
		got, err := updateInput(newFlags(t, "--password-stdin"))
		require.NoError(t, err)
		assert.Equal(t, sdk.UpdateUserInput{}, got)
	})

	t.Run("no flags", func(t *testing.T) {
		_, err := updateInput(newFlags(t))
		assert.ErrorContains(t, err, "nothing to update")
	})
}
