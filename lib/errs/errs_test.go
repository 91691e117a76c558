package errs

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrs(t *testing.T) {
	t.Run(`kind survives wrapping`, func(t *testing.T) {
		err := errors.Wrap(CapacityExceeded("no vacancies left"), "accept")
		require.True(t, Is(err, KindCapacityExceeded))
		require.False(t, Is(err, KindConflict))
		require.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	})

	t.Run(`status mapping`, func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("x")))
		require.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("x")))
		require.Equal(t, http.StatusConflict, HTTPStatus(Conflict("x")))
		require.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidTransition("x")))
		require.Equal(t, http.StatusBadRequest, HTTPStatus(NotEligible("x")))
		require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("db down")))
	})

	t.Run(`message formatting`, func(t *testing.T) {
		err := Validation("field %s is required", "expiry_date")
		require.Equal(t, "field expiry_date is required", err.Error())
		require.Equal(t, "field expiry_date is required", Message(errors.Wrap(err, "job creation failed")))
		require.Equal(t, "db down", Message(errors.New("db down")))
	})
}
