package config

const (
	defaultMediaDir          = "~/.local/share/spool/media"
	defaultTranscriptDir     = "~/.local/share/spool/transcripts"
	defaultDatasetDir        = "~/.local/share/spool/datasets"
	defaultLogDir            = "~/.local/share/spool/logs"
	defaultJournalPath       = "~/.local/share/spool/journal.db"
	defaultWorklistPath      = "worklist.txt"
	defaultAnalysisKind      = "script"
	defaultScriptDataset     = "script_analysis.csv"
	defaultSegmentsDataset   = "segment_analysis.csv"
	defaultGeminiModel       = "gemini-2.5-flash"
	defaultRequestTimeout    = 120
	defaultUploadTimeout     = 120
	defaultPollInterval      = 10
	defaultProcessingTimeout = 300
	defaultFetchBinary       = "yt-dlp"
	defaultResolveTimeout    = 60
	defaultDownloadTimeout   = 300
	defaultRequestsPerWindow = 10
	defaultWindowSeconds     = 60
	defaultNotifyTimeout     = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MediaDir:      defaultMediaDir,
			TranscriptDir: defaultTranscriptDir,
			DatasetDir:    defaultDatasetDir,
			LogDir:        defaultLogDir,
			JournalPath:   defaultJournalPath,
		},
		Worklist: Worklist{
			Path: defaultWorklistPath,
		},
		Analysis: Analysis{
			Kind:            defaultAnalysisKind,
			ScriptDataset:   defaultScriptDataset,
			SegmentsDataset: defaultSegmentsDataset,
		},
		Gemini: Gemini{
			Model:             defaultGeminiModel,
			RequestTimeout:    defaultRequestTimeout,
			UploadTimeout:     defaultUploadTimeout,
			PollInterval:      defaultPollInterval,
			ProcessingTimeout: defaultProcessingTimeout,
		},
		Fetch: Fetch{
			Binary:          defaultFetchBinary,
			ResolveTimeout:  defaultResolveTimeout,
			DownloadTimeout: defaultDownloadTimeout,
		},
		Rate: Rate{
			RequestsPerWindow: defaultRequestsPerWindow,
			WindowSeconds:     defaultWindowSeconds,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
