package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertCommand_Metadata(t *testing.T) {
	assert.Equal(t, "convert <statement>...", Cmd.Use)
	assert.Contains(t, Cmd.Short, "categorized CSV ledger")
	assert.NotNil(t, Cmd.RunE)
	assert.NotNil(t, Cmd.Args)
}

func TestConvertCommand_SummaryFlag(t *testing.T) {
	flag := Cmd.Flags().Lookup("summary")
	assert.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}
