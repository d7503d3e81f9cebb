package log

import "github.com/x-thooh/duallog/pkg/util"

const (
	RotationNumbered   = "numbered"
	RotationLumberjack = "lumberjack"

	ConsoleStderr = "stderr"
	ConsoleStdout = "stdout"
)

// ErrPathConflict reports that the log directory path exists but is not a
// directory.
var ErrPathConflict = util.ErrPathConflict

type Config struct {
	Dir            string `yaml:"dir"`
	Name           string `yaml:"name"`
	FileNameFormat string `yaml:"file_name_format"`
	ConsoleLevel   Level  `yaml:"console_level"`
	Console        string `yaml:"console"`
	Rotation       string `yaml:"rotation"`
	MaxBytes       int64  `yaml:"max_bytes"`
	MaxBackups     int    `yaml:"max_backups"`
	// MaxAgeDays and Compress only apply to the lumberjack rotation.
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
	// Global installs the logger as the slog (and standard log) default.
	Global bool `yaml:"global"`
}

func DefaultConfig() *Config {
	return &Config{
		Dir:            "log",
		Name:           "log",
		FileNameFormat: util.DefaultFileNameFormat,
		ConsoleLevel:   LevelWarning,
		Console:        ConsoleStderr,
		Rotation:       RotationNumbered,
		MaxBytes:       1024 * 1024,
		MaxBackups:     100,
		Global:         true,
	}
}
