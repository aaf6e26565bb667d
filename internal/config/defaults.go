package config

const (
	defaultDataDir        = "~/.local/share/fabline"
	defaultLogDir         = "~/.local/share/fabline/logs"
	defaultRequestTimeout = 10
	defaultPollInterval   = 15
	defaultRetryInterval  = 30
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Backend: Backend{
			RequestTimeout: defaultRequestTimeout,
		},
		Workflow: Workflow{
			PollInterval:  defaultPollInterval,
			RetryInterval: defaultRetryInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
