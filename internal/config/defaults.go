package config

const (
	defaultUsersDir       = "~/.local/share/bujonow/users"
	defaultUploadsDir     = "~/.local/share/bujonow/uploads"
	defaultLogDir         = "~/.local/share/bujonow/logs"
	defaultAPIBind        = "127.0.0.1:7380"
	defaultUser           = "local"
	defaultGeminiBaseURL  = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel    = "gemini-2.0-flash"
	defaultVisionModel    = "gemini-2.0-flash"
	defaultGeminiTimeout  = 60
	defaultProvider       = "keyword"
	defaultAnalysisCache  = "~/.local/share/bujonow/cache/analysis.db"
	defaultWhisperXModel  = "small"
	defaultFFmpegBinary   = "ffmpeg"
	defaultNotifyTimeout  = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			UsersDir:    defaultUsersDir,
			UploadsDir:  defaultUploadsDir,
			LogDir:      defaultLogDir,
			APIBind:     defaultAPIBind,
			DefaultUser: defaultUser,
		},
		Gemini: Gemini{
			BaseURL:        defaultGeminiBaseURL,
			Model:          defaultGeminiModel,
			VisionModel:    defaultVisionModel,
			TimeoutSeconds: defaultGeminiTimeout,
		},
		Analysis: Analysis{
			Provider:  defaultProvider,
			CachePath: defaultAnalysisCache,
		},
		Transcription: Transcription{
			Enabled:       false,
			WhisperXModel: defaultWhisperXModel,
			FFmpegBinary:  defaultFFmpegBinary,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Entries:        true,
			Summaries:      true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
