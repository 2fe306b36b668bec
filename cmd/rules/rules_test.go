package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_Metadata(t *testing.T) {
	assert.Equal(t, "rules", Cmd.Use)
	assert.NotEmpty(t, Cmd.Short)
}

func TestRulesCommand_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range Cmd.Commands() {
		names[sub.Name()] = true
	}
	require.True(t, names["list"])
	require.True(t, names["add"])
}
