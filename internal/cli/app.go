// Package cli assembles snipd's components behind the commands exposed by
// the snipd binary.
package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/snipkit/snipd/internal/applist"
	"github.com/snipkit/snipd/internal/config"
	"github.com/snipkit/snipd/internal/logging"
	"github.com/snipkit/snipd/internal/paths"
	"github.com/snipkit/snipd/internal/prefs"
	"github.com/snipkit/snipd/internal/update"
	"github.com/spf13/afero"
)

// App is the composition root: it owns configuration loading, path
// resolution, the preferences store and the update manager. One instance is
// built per command invocation.
type App struct {
	fs         afero.Fs
	checker    update.Checker
	configPath string
	exeDir     string
	portable   bool
}

// NewApp creates an App reading the config file at configPath. portable
// forces portable mode regardless of marker files.
func NewApp(configPath string, portable bool) *App {
	return &App{configPath: configPath, portable: portable, fs: afero.NewOsFs()}
}

// NewAppWithFs creates an App with an injected filesystem and executable
// directory. This is primarily used for testing to avoid global state
// dependencies.
func NewAppWithFs(configPath string, portable bool, fs afero.Fs, exeDir string) *App {
	return &App{configPath: configPath, portable: portable, fs: fs, exeDir: exeDir}
}

// WithChecker overrides the update checker, used by tests to avoid network
// access.
func (a *App) WithChecker(checker update.Checker) *App {
	a.checker = checker
	return a
}

func (a *App) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (a *App) newResolver(cfg *config.Config) (*paths.Resolver, error) {
	opts := []paths.Option{}
	if a.exeDir != "" {
		opts = append(opts, paths.WithExecutableDir(a.exeDir))
	}
	if a.portable || cfg.Portable {
		opts = append(opts, paths.WithPortableMode(true))
	}
	return paths.NewResolver(a.fs, opts...)
}

// openPrefs opens the preferences store, creating the data directory first.
func (a *App) openPrefs(resolver *paths.Resolver) (*prefs.Manager, error) {
	if _, err := resolver.EnsureDataDir(); err != nil {
		return nil, err
	}
	manager, err := prefs.NewManager(resolver.SettingsFile())
	if err != nil {
		return nil, err
	}
	return manager, nil
}

// loggingContext attaches the file logger to ctx at the configured level.
func (a *App) loggingContext(ctx context.Context, cfg *config.Config, resolver *paths.Resolver) (context.Context, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(ctx, resolver, logging.Config{Level: level})
}

// PathsReport returns a human-readable listing of every resolved location.
func (a *App) PathsReport(ctx context.Context) (string, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return "", err
	}
	resolver, err := a.newResolver(cfg)
	if err != nil {
		return "", err
	}
	manager, err := a.openPrefs(resolver)
	if err != nil {
		return "", err
	}
	defer func() { _ = manager.Close() }()

	useCustom, err := manager.UseCustomBackupLocation(ctx)
	if err != nil {
		return "", err
	}
	custom, err := manager.CustomBackupLocation(ctx)
	if err != nil {
		return "", err
	}

	mode := "installed"
	if resolver.Portable() {
		mode = "portable"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "mode:                %s\n", mode)
	fmt.Fprintf(&b, "data directory:      %s\n", resolver.DataDir())
	fmt.Fprintf(&b, "settings file:       %s\n", resolver.SettingsFile())
	fmt.Fprintf(&b, "log file:            %s\n", resolver.LogFile())
	fmt.Fprintf(&b, "backup directory:    %s\n", resolver.BackupDir(useCustom, custom))
	fmt.Fprintf(&b, "translations:        %s\n", resolver.TranslationsDir())
	fmt.Fprintf(&b, "user translations:   %s\n", resolver.UserTranslationsDir())
	fmt.Fprintf(&b, "sensitive apps:      %s\n", resolver.SensitiveAppsFile())
	fmt.Fprintf(&b, "emoji exclusions:    %s\n", resolver.EmojiExcludedAppsFile())
	return b.String(), nil
}

func (a *App) buildManager(cfg *config.Config, manager *prefs.Manager) *update.Manager {
	checker := a.checker
	if checker == nil {
		major, minor := cfg.CurrentVersion()
		checker = update.NewHTTPChecker(nil, cfg.UpdateFeedURL, major, minor)
	}
	return update.New(update.Config{Checker: checker, Prefs: manager})
}

// CheckOnce triggers a single update check through the manager and returns
// its outcome event.
func (a *App) CheckOnce(ctx context.Context) (update.Event, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return update.Event{}, err
	}
	resolver, err := a.newResolver(cfg)
	if err != nil {
		return update.Event{}, err
	}
	manager, err := a.openPrefs(resolver)
	if err != nil {
		return update.Event{}, err
	}
	defer func() { _ = manager.Close() }()

	ctx, err = a.loggingContext(ctx, cfg, resolver)
	if err != nil {
		return update.Event{}, err
	}

	updateManager := a.buildManager(cfg, manager)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = updateManager.Run(runCtx)
	}()

	updateManager.CheckNow()

	var outcome update.Event
	for ev := range updateManager.Events() {
		switch ev.Kind {
		case update.EventUpdateAvailable, update.EventNoUpdateAvailable, update.EventCheckFailed:
			outcome = ev
		case update.EventCheckStarted, update.EventCheckFinished:
		}
		if ev.Kind == update.EventCheckFinished {
			break
		}
	}

	cancel()
	<-done
	for range updateManager.Events() { //nolint:revive // drain until close
	}

	return outcome, nil
}

// RunScheduler drives the update manager until ctx is cancelled, invoking
// onEvent for every notification. Preference toggles made through this
// process re-schedule checks immediately.
func (a *App) RunScheduler(ctx context.Context, onEvent func(update.Event)) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	resolver, err := a.newResolver(cfg)
	if err != nil {
		return err
	}
	manager, err := a.openPrefs(resolver)
	if err != nil {
		return err
	}
	defer func() { _ = manager.Close() }()

	ctx, err = a.loggingContext(ctx, cfg, resolver)
	if err != nil {
		return err
	}

	updateManager := a.buildManager(cfg, manager)
	manager.SubscribeAutoCheck(updateManager.SetAutoCheckEnabled)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range updateManager.Events() {
			if onEvent != nil {
				onEvent(ev)
			}
		}
	}()

	logging.Get(ctx).Info().Msg("update scheduler started")
	err = updateManager.Run(ctx)
	<-done
	return err
}

// prefsWith runs fn against an open preferences store.
func (a *App) prefsWith(fn func(ctx context.Context, manager *prefs.Manager, resolver *paths.Resolver) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	resolver, err := a.newResolver(cfg)
	if err != nil {
		return err
	}
	manager, err := a.openPrefs(resolver)
	if err != nil {
		return err
	}
	defer func() { _ = manager.Close() }()

	return fn(context.Background(), manager, resolver)
}

// PrefsReport returns a human-readable listing of the persisted preferences.
func (a *App) PrefsReport() (string, error) {
	var report string
	err := a.prefsWith(func(ctx context.Context, manager *prefs.Manager, resolver *paths.Resolver) error {
		autoCheck, err := manager.AutoCheckForUpdates(ctx)
		if err != nil {
			return err
		}
		last, err := manager.LastUpdateCheck(ctx)
		if err != nil {
			return err
		}
		useCustom, err := manager.UseCustomBackupLocation(ctx)
		if err != nil {
			return err
		}
		custom, err := manager.CustomBackupLocation(ctx)
		if err != nil {
			return err
		}
		locale, err := manager.Locale(ctx)
		if err != nil {
			return err
		}

		lastStr := "never"
		if !last.IsZero() {
			lastStr = last.Format(time.RFC3339)
		}
		if locale == "" {
			locale = "system default"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "auto check for updates:  %t\n", autoCheck)
		fmt.Fprintf(&b, "last update check:       %s\n", lastStr)
		fmt.Fprintf(&b, "backup directory:        %s\n", resolver.BackupDir(useCustom, custom))
		fmt.Fprintf(&b, "locale:                  %s\n", locale)
		report = b.String()
		return nil
	})
	return report, err
}

// SetAutoCheck persists the auto-check preference.
func (a *App) SetAutoCheck(enabled bool) error {
	return a.prefsWith(func(ctx context.Context, manager *prefs.Manager, _ *paths.Resolver) error {
		return manager.SetAutoCheckForUpdates(ctx, enabled)
	})
}

// SetBackupLocation persists a custom backup directory. An empty dir
// reverts to the default location.
func (a *App) SetBackupLocation(dir string) error {
	return a.prefsWith(func(ctx context.Context, manager *prefs.Manager, _ *paths.Resolver) error {
		if err := manager.SetUseCustomBackupLocation(ctx, dir != ""); err != nil {
			return err
		}
		return manager.SetCustomBackupLocation(ctx, dir)
	})
}

// SetLocale persists the interface language.
func (a *App) SetLocale(locale string) error {
	return a.prefsWith(func(ctx context.Context, manager *prefs.Manager, _ *paths.Resolver) error {
		return manager.SetLocale(ctx, locale)
	})
}

// AppList identifies one of the fixed-name application lists.
type AppList string

const (
	// SensitiveApps is the list of applications snipd never expands text in.
	SensitiveApps AppList = "sensitive"
	// EmojiExcludedApps is the list of applications excluded from emoji
	// substitution.
	EmojiExcludedApps AppList = "emoji"
)

func (a *App) appListStore(kind AppList) (*applist.Store, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	resolver, err := a.newResolver(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := resolver.EnsureDataDir(); err != nil {
		return nil, err
	}

	switch kind {
	case SensitiveApps:
		return applist.NewStore(a.fs, resolver.SensitiveAppsFile()), nil
	case EmojiExcludedApps:
		return applist.NewStore(a.fs, resolver.EmojiExcludedAppsFile()), nil
	default:
		return nil, fmt.Errorf("unknown application list %q", kind)
	}
}

// ListApps returns the entries of the given application list.
func (a *App) ListApps(kind AppList) ([]string, error) {
	store, err := a.appListStore(kind)
	if err != nil {
		return nil, err
	}
	return store.Load()
}

// AddApp adds an executable name to the given application list, reporting
// whether the list changed.
func (a *App) AddApp(kind AppList, name string) (bool, error) {
	store, err := a.appListStore(kind)
	if err != nil {
		return false, err
	}
	return store.Add(name)
}

// RemoveApp removes an executable name from the given application list,
// reporting whether it was present.
func (a *App) RemoveApp(kind AppList, name string) (bool, error) {
	store, err := a.appListStore(kind)
	if err != nil {
		return false, err
	}
	return store.Remove(name)
}
