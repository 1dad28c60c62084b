package cmd

import (
	"context"
	"testing"

	"licensee-matcher/core/config"
	"licensee-matcher/core/dataset"
	"licensee-matcher/feature/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Local", func(t *testing.T) {
		cfg := &config.Config{Match: matching.Config{Backend: matching.BackendLocal, DataDir: t.TempDir()}}
		store, err := openStore(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &dataset.LocalStore{}, store)
	})

	t.Run("Unknown", func(t *testing.T) {
		cfg := &config.Config{Match: matching.Config{Backend: "ftp"}}
		_, err := openStore(ctx, cfg)
		assert.ErrorContains(t, err, "unknown dataset backend")
	})
}
