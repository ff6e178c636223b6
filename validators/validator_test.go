package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `validate:"required,username"`
}

func TestUsernameTag(t *testing.T) {
	v := NewValidator()

	for _, name := range []string{"alice", "Bob_99", "zoë"} {
		assert.NoError(t, v.Validate(&signup{Username: name}), name)
	}
	for _, name := range []string{"bad name", "a-b", "@alice", "x.y"} {
		err := v.Validate(&signup{Username: name})
		require.Error(t, err, name)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}
