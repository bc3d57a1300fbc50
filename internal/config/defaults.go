package config

const (
	defaultServerBaseURL        = "http://localhost:8000"
	defaultServerRequestTimeout = 120
	defaultDataDir              = "~/.local/share/rdfmap"
	defaultLogDir               = "~/.local/share/rdfmap/logs"
	defaultDownloadDir          = "."
	defaultMappingMinConfidence = 0.5
	defaultMappingBaseIRI       = "http://example.org/"
	defaultOutputFormat         = "turtle"
	defaultPollIntervalMS       = 1500
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// OutputFormats lists the RDF serializations the conversion endpoint accepts.
var OutputFormats = []string{"turtle", "json-ld", "xml", "nt", "n3"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			BaseURL:        defaultServerBaseURL,
			RequestTimeout: defaultServerRequestTimeout,
		},
		Paths: Paths{
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
			DownloadDir: defaultDownloadDir,
		},
		Mapping: Mapping{
			UseSemantic:   true,
			MinConfidence: defaultMappingMinConfidence,
			BaseIRI:       defaultMappingBaseIRI,
		},
		Conversion: Conversion{
			OutputFormat:   defaultOutputFormat,
			Validate:       true,
			PollIntervalMS: defaultPollIntervalMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
