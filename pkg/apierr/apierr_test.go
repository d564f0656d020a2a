package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Conflict("username is taken"), http.StatusBadRequest},
		{NotFound("user not found"), http.StatusNotFound},
		{Forbidden("no permission"), http.StatusForbidden},
		{Expired("token expired"), http.StatusUnauthorized},
		{Internal("normal role not found"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.err.HTTPStatus(), tc.err.Error())
	}
}

func TestIsKindThroughWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("register: %w", Conflict("username is taken"))
	require.True(t, IsKind(err, KindConflict))
	require.False(t, IsKind(err, KindNotFound))
	require.False(t, IsKind(errors.New("plain"), KindConflict))
}

func TestFromFallsBackToInternal(t *testing.T) {
	t.Parallel()

	e := From(errors.New("driver exploded"))
	require.Equal(t, KindInternal, e.Kind)

	orig := NotFound("role not found")
	require.Equal(t, orig, From(fmt.Errorf("wrap: %w", orig)))
}
