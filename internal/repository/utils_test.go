package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockTx struct {
	mock.Mock
}

func (m *mockTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	return &buf
}

func TestSafeRollback(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		err     error
		wantLog bool
	}{
		{"rolled back", nil, false},
		{"already committed", ErrTxClosed, false},
		{"wrapped closed", fmt.Errorf("pg: %w", ErrTxClosed), false},
		{"real failure", errors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			tx := new(mockTx)
			tx.On("Rollback", ctx).Return(tt.err).Once()

			SafeRollback(ctx, tx)

			tx.AssertExpectations(t)
			if tt.wantLog {
				assert.Contains(t, logs.String(), "Failed to rollback transaction")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}
