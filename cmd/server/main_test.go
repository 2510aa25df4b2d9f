package main

import (
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun_Success(t *testing.T) {
	t.Setenv("API_PORT", "8181")
	t.Setenv("DATA_SOURCE", "demo")
	t.Setenv("AUTOMATION_INTERVAL", "") // worker stays off during setup

	logger := zap.NewNop()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	server, err := run(logger, mockPool)

	assert.NoError(t, err)
	require.NotNil(t, server)
	assert.Equal(t, ":8181", server.Addr)
	assert.NotNil(t, server.Handler)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRun_AppliesMigrations(t *testing.T) {
	t.Setenv("API_PORT", "8181")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("AUTOMATION_INTERVAL", "")

	logger := zap.NewNop()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec("CREATE EXTENSION IF NOT EXISTS").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	server, err := run(logger, mockPool)

	assert.NoError(t, err)
	assert.NotNil(t, server)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRun_MigrationFailure(t *testing.T) {
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("AUTOMATION_INTERVAL", "")

	logger := zap.NewNop()

	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec("CREATE EXTENSION IF NOT EXISTS").
		WillReturnError(errors.New("permission denied"))

	server, err := run(logger, mockPool)

	assert.Error(t, err)
	assert.Nil(t, server)
}
