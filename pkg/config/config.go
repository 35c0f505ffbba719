package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB              string // connection string for the database
	WaitForServices string // duration to wait for other services to be ready
	LogLevel        string // sets the log level (zap log level values)
	SQLLogLevel     string // sets the log level for sql subsystem
	LogFormat       string // text vs json
	LogFilter       string // zapfilter rules for named loggers
	HTTPServerAddr  string // listen addr for the HTTP API server
	OpenF1URL       string // base url of the OpenF1 REST provider
	ReplayURL       string // base url of the session replay provider
	ProviderTimeout string // timeout for provider requests
)
