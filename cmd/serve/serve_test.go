package serve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", Cmd.Use)
	assert.Contains(t, Cmd.Short, "HTTP")
	assert.NotNil(t, Cmd.RunE)
	assert.NotNil(t, Cmd.Flags().Lookup("listen"))
}
