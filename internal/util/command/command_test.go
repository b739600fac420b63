package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/test"
	"github.com/iamshubha/roy-dex-sub005/internal/util/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithServer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := t.Context()

		var testError = errors.New("test error")

		s.Config.Logger.PrettyPrintConsole = false
		resultErr := command.WithServer(ctx, s.Config, func(ctx context.Context, s *api.Server) error {
			require.NoError(t, s.Store.Ping(ctx))
			assert.True(t, s.Ready())

			return testError
		})

		assert.Equal(t, testError, resultErr)
	})
}

func TestNewSubcommandGroup(t *testing.T) {
	child := command.NewSubcommandGroup("child")
	group := command.NewSubcommandGroup("group", child)

	assert.Equal(t, "group", group.Use)
	assert.Equal(t, "group related subcommands", group.Short)
	require.Len(t, group.Commands(), 1)
	assert.Equal(t, "child", group.Commands()[0].Use)
}
