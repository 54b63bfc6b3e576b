package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/snipkit/snipd/internal/testutil"
	"github.com/snipkit/snipd/internal/update"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkerFunc adapts a function to the update.Checker interface
type checkerFunc func(ctx context.Context) (*update.VersionInfo, error)

func (f checkerFunc) Check(ctx context.Context) (*update.VersionInfo, error) {
	return f(ctx)
}

// newTestApp creates an app running in portable mode inside a temp
// directory, so every path stays local to the test.
func newTestApp(t *testing.T) *App {
	t.Helper()

	exeDir := filepath.Join(t.TempDir(), "snipd")
	configPath := filepath.Join(exeDir, "snipd.yml")
	return NewAppWithFs(configPath, true, afero.NewOsFs(), exeDir)
}

func TestPathsReport(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	report, err := app.PathsReport(context.Background())
	require.NoError(t, err)

	assert.Contains(t, report, "mode:                portable")
	assert.Contains(t, report, filepath.Join(app.exeDir, "Data"))
	assert.Contains(t, report, "log.txt")
	assert.Contains(t, report, "sensitiveApps.json")
	assert.Contains(t, report, "emojiExcludedApps.json")
}

func TestCheckOnce_NoUpdate(t *testing.T) {
	t.Parallel()
	defer testutil.VerifyNoLeaks(t)

	app := newTestApp(t).WithChecker(checkerFunc(
		func(context.Context) (*update.VersionInfo, error) {
			return nil, nil
		}))

	outcome, err := app.CheckOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, update.EventNoUpdateAvailable, outcome.Kind)

	// The completion time was persisted.
	report, err := app.PrefsReport()
	require.NoError(t, err)
	assert.NotContains(t, report, "last update check:       never")
}

func TestCheckOnce_UpdateAvailable(t *testing.T) {
	t.Parallel()
	defer testutil.VerifyNoLeaks(t)

	app := newTestApp(t).WithChecker(checkerFunc(
		func(context.Context) (*update.VersionInfo, error) {
			return &update.VersionInfo{Major: 9, Minor: 9}, nil
		}))

	outcome, err := app.CheckOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, update.EventUpdateAvailable, outcome.Kind)
	require.NotNil(t, outcome.Version)
	assert.Equal(t, "9.9", outcome.Version.String())
}

func TestCheckOnce_Failure(t *testing.T) {
	t.Parallel()
	defer testutil.VerifyNoLeaks(t)

	app := newTestApp(t).WithChecker(checkerFunc(
		func(context.Context) (*update.VersionInfo, error) {
			return nil, errors.New("feed unreachable")
		}))

	outcome, err := app.CheckOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, update.EventCheckFailed, outcome.Kind)
	assert.Contains(t, outcome.Message, "feed unreachable")
}

func TestPrefsReport_Defaults(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	report, err := app.PrefsReport()
	require.NoError(t, err)

	assert.Contains(t, report, "auto check for updates:  true")
	assert.Contains(t, report, "last update check:       never")
	assert.Contains(t, report, "locale:                  system default")
}

func TestSetAutoCheckRoundTrip(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	require.NoError(t, app.SetAutoCheck(false))

	report, err := app.PrefsReport()
	require.NoError(t, err)
	assert.Contains(t, report, "auto check for updates:  false")
}

func TestSetBackupLocation(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	require.NoError(t, app.SetBackupLocation("/backups/snipd"))

	report, err := app.PrefsReport()
	require.NoError(t, err)
	assert.Contains(t, report, "backup directory:        /backups/snipd")

	// Empty reverts to the default inside the data directory.
	require.NoError(t, app.SetBackupLocation(""))

	report, err = app.PrefsReport()
	require.NoError(t, err)
	assert.Contains(t, report, filepath.Join("Data", "Backup"))
}

func TestSetLocale(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	require.NoError(t, app.SetLocale("de_DE"))

	report, err := app.PrefsReport()
	require.NoError(t, err)
	assert.Contains(t, report, "locale:                  de_DE")
}

func TestAppLists(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	apps, err := app.ListApps(SensitiveApps)
	require.NoError(t, err)
	assert.Empty(t, apps)

	added, err := app.AddApp(SensitiveApps, "keepassxc.exe")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = app.AddApp(SensitiveApps, "KeePassXC.exe")
	require.NoError(t, err)
	assert.False(t, added, "duplicates differing only in case are rejected")

	// The two lists are stored independently.
	apps, err = app.ListApps(EmojiExcludedApps)
	require.NoError(t, err)
	assert.Empty(t, apps)

	apps, err = app.ListApps(SensitiveApps)
	require.NoError(t, err)
	assert.Equal(t, []string{"keepassxc.exe"}, apps)

	removed, err := app.RemoveApp(SensitiveApps, "KEEPASSXC.EXE")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = app.RemoveApp(SensitiveApps, "keepassxc.exe")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAppLists_UnknownKind(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)

	_, err := app.ListApps(AppList("bogus"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown application list")
}
