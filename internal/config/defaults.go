package config

const (
	defaultSourceDir  = "~/Downloads"
	defaultJournalDir = "~/.local/share/sortd"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// defaultExcludedNames are OS droppings that should never be organized.
var defaultExcludedNames = []string{
	".DS_Store",
	".localized",
	"Thumbs.db",
	"desktop.ini",
}

// Default returns the repository default configuration. Paths are expanded
// during normalize, not here.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDir:  defaultSourceDir,
			JournalDir: defaultJournalDir,
		},
		Organize: Organize{
			AgeBucket: "none",
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
