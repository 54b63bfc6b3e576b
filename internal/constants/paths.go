// Package constants contains fixed names and timings shared across snipd.
package constants

const (
	// AppName is the application name used for user-facing output and
	// platform data directories.
	AppName = "snipd"

	// DataDirName is the portable-mode data directory, relative to the
	// executable.
	DataDirName = "Data"

	// PortableAppsDataDir is the settings directory used under the
	// PortableApps.com folder layout, relative to the executable.
	PortableAppsDataDir = "../../Data/settings"

	// PortableMarkerFilename next to the executable switches snipd into
	// portable mode.
	PortableMarkerFilename = "portable.txt"

	// LogFilename is the log file name inside the data directory.
	LogFilename = "log.txt"

	// SettingsFilename is the preferences database file name.
	SettingsFilename = "settings.db"

	// BackupDirName is the default backup directory inside the data directory.
	BackupDirName = "Backup"

	// TranslationsDirName holds translation files, both next to the
	// executable (application-provided) and inside the data directory
	// (user-provided).
	TranslationsDirName = "Translations"

	// SensitiveAppsFilename lists applications snipd must not expand text in.
	SensitiveAppsFilename = "sensitiveApps.json"

	// EmojiExcludedAppsFilename lists applications excluded from emoji
	// substitution.
	EmojiExcludedAppsFilename = "emojiExcludedApps.json"
)
