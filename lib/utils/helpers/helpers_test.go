package helpers

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	t.Run(`pg unique violation`, func(t *testing.T) {
		err := errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert")
		require.True(t, IsUniqueViolation(err))
		require.False(t, IsForeignKeyViolation(err))
		require.False(t, IsUniqueViolation(nil))
		require.True(t, IsUniqueViolation(errors.New("duplicate key value (SQLSTATE 23505)")))
	})

	t.Run(`decode base64`, func(t *testing.T) {
		data, err := DecodeBase64("aGVsbG8=")
		require.NoError(t, err)
		require.Equal(t, "hello", string(data))

		data, err = DecodeBase64("data:text/plain;base64,aGVsbG8=")
		require.NoError(t, err)
		require.Equal(t, "hello", string(data))

		_, err = DecodeBase64("%%%")
		require.Error(t, err)
	})

	t.Run(`email format`, func(t *testing.T) {
		require.True(t, IsEmail("client@example.com"))
		require.False(t, IsEmail("client@example"))
		require.False(t, IsEmail("client example@example.com"))
		require.False(t, IsEmail(""))
	})

	t.Run(`context done`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		require.False(t, IsContextDone(ctx))
		cancel()
		require.True(t, IsContextDone(ctx))
	})
}
