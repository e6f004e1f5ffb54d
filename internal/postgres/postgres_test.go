package postgres

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConfigString(t *testing.T) {
	testCases := []struct {
		name     string
		conf     Config
		expected string
	}{
		{
			name:     "default",
			conf:     Config{},
			expected: "host=127.0.0.1 dbname=postgres port=5432 sslmode=prefer",
		},
		{
			name:     "credentials",
			conf:     Config{Host: "db", Port: "6432", DBName: "royalty", SSLMode: "disable", User: "admin", Password: "secret"},
			expected: "host=db dbname=royalty port=6432 sslmode=disable user=admin password=secret",
		},
		{
			name:     "url",
			conf:     Config{Host: "db", URL: "postgres://admin@localhost:5432/royalty"},
			expected: "postgres://admin@localhost:5432/royalty",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.conf.String())
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	err := errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert asset")
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestNewPoolInvalidConfig(t *testing.T) {
	_, err := NewPool(context.Background(), Config{URL: "postgres://admin@localhost:notaport/royalty"})
	assert.ErrorIs(t, err, errs.InvalidArgument)
}
