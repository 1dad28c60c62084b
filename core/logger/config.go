package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum enabled level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the output encoding (json, console).
	Format string `mapstructure:"format" default:"json"`
	// Output is a comma separated list of sinks: stdout, stderr or file paths.
	Output string `mapstructure:"output" default:"stderr"`
}
