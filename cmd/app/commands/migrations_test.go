package commands

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrationsRejectsBadInputs(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name             string
		driver           string
		connectionString string
	}{
		{name: "unknown driver", driver: "bogus", connectionString: "postgres://localhost"},
		{name: "malformed connection string", driver: "postgres", connectionString: "not-a-dsn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunMigrations(logger, tt.driver, tt.connectionString)
			require.Error(t, err)
			require.Contains(t, err.Error(), "failed to create migrate instance")
		})
	}
}
