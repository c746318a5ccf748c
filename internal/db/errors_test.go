package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"pgx unique violation", &pgconn.PgError{Code: "23505"}, CodeUniqueViolation},
		{"wrapped pgx foreign key violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), CodeForeignKeyViolation},
		{"lib/pq unique violation", &pq.Error{Code: "23505"}, CodeUniqueViolation},
		{"plain error", errors.New("connection refused"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestViolationHelpers(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(errors.New("timeout")))
}
