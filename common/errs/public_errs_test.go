package errs

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestPublicError(t *testing.T) {
	t.Run("kind", func(t *testing.T) {
		err := NewPublicErrorKind(NotFound, "asset not found")

		var publicErr *PublicError
		assert.True(t, errors.As(err, &publicErr))
		assert.Equal(t, "asset not found", publicErr.Message())
		assert.Equal(t, "NOT_FOUND", publicErr.Code())
		assert.ErrorIs(t, err, NotFound)
		assert.NotErrorIs(t, err, Unauthorized)
	})
	t.Run("with message", func(t *testing.T) {
		err := WithPublicMessage(errors.Wrap(MalformedRate, "rate 10000001"), "validation error")

		var publicErr *PublicError
		assert.True(t, errors.As(err, &publicErr))
		assert.Equal(t, "validation error: rate 10000001: Malformed Rate", publicErr.Message())
		assert.ErrorIs(t, err, MalformedRate)
	})
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, WithPublicMessage(nil, "validation error"))
		assert.NoError(t, WithPublicMessageCode(errors.Join(), "validation error", "CODE"))
	})
}
