// Package paths resolves the filesystem locations snipd reads and writes:
// the data directory, log file, backups, translations and the fixed-name
// JSON side files. In installed mode everything lives under the platform
// data home; in portable mode it lives next to the executable so the whole
// installation can move with the binary.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/snipkit/snipd/internal/constants"
	"github.com/spf13/afero"
)

// Resolver computes application paths for one deployment mode. All methods
// are pure; only EnsureDataDir touches the filesystem.
type Resolver struct {
	fs           afero.Fs
	exeDir       string
	portable     bool
	portableApps bool
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithExecutableDir overrides the directory of the running binary, used by
// tests and by deployments that relocate the data layout.
func WithExecutableDir(dir string) Option {
	return func(r *Resolver) { r.exeDir = dir }
}

// WithPortableMode forces portable mode on or off, bypassing marker-file
// detection.
func WithPortableMode(portable bool) Option {
	return func(r *Resolver) { r.portable = portable }
}

// NewResolver builds a Resolver, detecting portable mode from a marker file
// next to the executable unless an option overrides it.
func NewResolver(fs afero.Fs, opts ...Option) (*Resolver, error) {
	r := &Resolver{fs: fs, portable: false}

	for _, opt := range opts {
		opt(r)
	}

	if r.exeDir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate executable: %w", err)
		}
		r.exeDir = filepath.Dir(exe)
	}

	if !r.portable {
		r.portable = r.hasPortableMarker()
	}
	// The PortableApps.com layout nests the binary under <root>/App/<name>
	// and keeps data at <root>/Data/settings.
	r.portableApps = r.portable && filepath.Base(filepath.Dir(r.exeDir)) == "App"

	return r, nil
}

func (r *Resolver) hasPortableMarker() bool {
	_, err := r.fs.Stat(filepath.Join(r.exeDir, constants.PortableMarkerFilename))
	return err == nil
}

// Portable reports whether the resolver is in portable mode.
func (r *Resolver) Portable() bool {
	return r.portable
}

// DataDir returns the directory holding all of snipd's user data.
func (r *Resolver) DataDir() string {
	if !r.portable {
		return filepath.Join(xdg.DataHome, constants.AppName)
	}
	if r.portableApps {
		return filepath.Join(r.exeDir, filepath.FromSlash(constants.PortableAppsDataDir))
	}
	return filepath.Join(r.exeDir, constants.DataDirName)
}

// EnsureDataDir creates the data directory if it does not exist yet.
func (r *Resolver) EnsureDataDir() (string, error) {
	dataDir := r.DataDir()
	if err := r.fs.MkdirAll(dataDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return dataDir, nil
}

// LogFile returns the path of the application log file.
func (r *Resolver) LogFile() string {
	return filepath.Join(r.DataDir(), constants.LogFilename)
}

// SettingsFile returns the path of the preferences database. In portable
// mode this sits inside the portable data directory, so preferences travel
// with the installation.
func (r *Resolver) SettingsFile() string {
	return filepath.Join(r.DataDir(), constants.SettingsFilename)
}

// DefaultBackupDir returns the backup directory used when the user has not
// configured a custom location.
func (r *Resolver) DefaultBackupDir() string {
	return filepath.Join(r.DataDir(), constants.BackupDirName)
}

// BackupDir returns the effective backup directory. A custom location wins
// only when enabled and non-empty; everything else falls back to the
// default.
func (r *Resolver) BackupDir(useCustom bool, custom string) string {
	if useCustom && custom != "" {
		return custom
	}
	return r.DefaultBackupDir()
}

// TranslationsDir returns the directory of application-provided translation
// files, next to the executable.
func (r *Resolver) TranslationsDir() string {
	return filepath.Join(r.exeDir, constants.TranslationsDirName)
}

// UserTranslationsDir returns the directory of user-provided translation
// files, inside the data directory.
func (r *Resolver) UserTranslationsDir() string {
	return filepath.Join(r.DataDir(), constants.TranslationsDirName)
}

// SensitiveAppsFile returns the path of the sensitive-application list.
func (r *Resolver) SensitiveAppsFile() string {
	return filepath.Join(r.DataDir(), constants.SensitiveAppsFilename)
}

// EmojiExcludedAppsFile returns the path of the emoji-exclusion list.
func (r *Resolver) EmojiExcludedAppsFile() string {
	return filepath.Join(r.DataDir(), constants.EmojiExcludedAppsFilename)
}
