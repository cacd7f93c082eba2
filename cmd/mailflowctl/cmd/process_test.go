package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProcessArgs(t *testing.T) {
	id, err := parseProcessArgs(false, []string{"42"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseProcessArgs(true, nil)
	assert.NoError(t, err)

	for _, tc := range []struct {
		name string
		all  bool
		args []string
	}{
		{"nothing", false, nil},
		{"both", true, []string{"1"}},
		{"two ids", false, []string{"1", "2"}},
		{"not a number", false, []string{"abc"}},
		{"zero", false, []string{"0"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseProcessArgs(tc.all, tc.args)
			assert.Error(t, err)
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])
	assert.True(t, names["process"])
}
