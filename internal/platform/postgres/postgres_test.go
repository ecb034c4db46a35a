package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectRequiresDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ", Pool{})
	require.ErrorIs(t, err, ErrNoDSN)
}

func TestConnectOrFallbackWithoutDSN(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, cleanup := ConnectOrFallback(context.Background(), "", Pool{}, logger)
	require.Nil(t, db)
	require.NotNil(t, cleanup)
	cleanup()
}
