package prefs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// createTestManager creates a preferences manager for testing
func createTestManager(t *testing.T) *Manager {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	manager, err := NewManager(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() { _ = manager.Close() })

	return manager
}

func TestNewManager(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	manager, err := NewManager(dbPath)
	require.NoError(t, err)
	require.NotNil(t, manager)

	require.NoError(t, manager.Close())
}

func TestCloseActuallyClosesDatabase(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	manager, err := NewManager(dbPath)
	require.NoError(t, err)
	require.NoError(t, manager.Close())

	// Reopening the same file should work if the first manager released it.
	manager2, err := NewManager(dbPath)
	require.NoError(t, err)
	require.NoError(t, manager2.Close())
}

func TestAutoCheckForUpdates_DefaultTrue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	manager := createTestManager(t)

	enabled, err := manager.AutoCheckForUpdates(ctx)
	require.NoError(t, err)
	require.True(t, enabled)
}

func TestSetAutoCheckForUpdates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	manager := createTestManager(t)

	require.NoError(t, manager.SetAutoCheckForUpdates(ctx, false))

	enabled, err := manager.AutoCheckForUpdates(ctx)
	require.NoError(t, err)
	require.False(t, enabled)

	require.NoError(t, manager.SetAutoCheckForUpdates(ctx, true))

	enabled, err = manager.AutoCheckForUpdates(ctx)
	require.NoError(t, err)
	require.True(t, enabled)
}

func TestSubscribeAutoCheckReceivesEveryToggle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	manager := createTestManager(t)

	var got []bool
	manager.SubscribeAutoCheck(func(enabled bool) {
		got = append(got, enabled)
	})

	require.NoError(t, manager.SetAutoCheckForUpdates(ctx, false))
	require.NoError(t, manager.SetAutoCheckForUpdates(ctx, true))
	require.NoError(t, manager.SetAutoCheckForUpdates(ctx, true))

	require.Equal(t, []bool{false, true, true}, got)
}

func TestLastUpdateCheck_DefaultZero(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	manager := createTestManager(t)

	at, err := manager.LastUpdateCheck(ctx)
	require.NoError(t, err)
	require.True(t, at.IsZero())
}

func TestSetLastUpdateCheckRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	manager := createTestManager(t)

	now := time.Now().Truncate(time.Second)
	require.NoError(t, manager.SetLastUpdateCheck(ctx, now))

	at, err := manager.LastUpdateCheck(ctx)
	require.NoError(t, err)
	require.True(t, at.Equal(now))
}

func TestCustomBackupLocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	manager := createTestManager(t)

	use, err := manager.UseCustomBackupLocation(ctx)
	require.NoError(t, err)
	require.False(t, use)

	require.NoError(t, manager.SetUseCustomBackupLocation(ctx, true))
	require.NoError(t, manager.SetCustomBackupLocation(ctx, "/backups/snipd"))

	use, err = manager.UseCustomBackupLocation(ctx)
	require.NoError(t, err)
	require.True(t, use)

	dir, err := manager.CustomBackupLocation(ctx)
	require.NoError(t, err)
	require.Equal(t, "/backups/snipd", dir)
}

func TestLocaleRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	manager := createTestManager(t)

	locale, err := manager.Locale(ctx)
	require.NoError(t, err)
	require.Empty(t, locale)

	require.NoError(t, manager.SetLocale(ctx, "fr_FR"))

	locale, err = manager.Locale(ctx)
	require.NoError(t, err)
	require.Equal(t, "fr_FR", locale)
}

func TestPreferencesSurviveReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "settings.db")

	manager, err := NewManager(dbPath)
	require.NoError(t, err)
	require.NoError(t, manager.SetAutoCheckForUpdates(ctx, false))
	require.NoError(t, manager.Close())

	manager2, err := NewManager(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager2.Close() })

	enabled, err := manager2.AutoCheckForUpdates(ctx)
	require.NoError(t, err)
	require.False(t, enabled)
}
