package config

const (
	defaultMediaDir            = "~/media"
	defaultLogDir              = "~/.local/share/curator/logs"
	defaultTVSubfolder         = "TV"
	defaultMoviesSubfolder     = "Movies"
	defaultAudiobooksSubfolder = "Audiobooks"
	defaultRenamerBinary       = "filebot"
	defaultTaggerBinary        = "beet"
	defaultChapterizerBinary   = "m4b-tool"
	defaultFFprobeBinary       = "ffprobe"
	defaultBooksBaseURL        = "https://www.googleapis.com/books/v1"
	defaultPushoverBaseURL     = "https://api.pushover.net/1/messages.json"
	defaultTransmissionURL     = "http://127.0.0.1:9091/transmission/rpc"
	defaultRequestTimeout      = 15
	defaultMaxPartSeconds      = 43200
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MediaDir: defaultMediaDir,
			LogDir:   defaultLogDir,
		},
		Types: Types{
			TV:         true,
			Movies:     true,
			Music:      true,
			Audiobooks: true,
		},
		TV: Video{
			Strict: true,
		},
		Movies: Video{
			Strict: true,
		},
		Audiobooks: Audiobooks{
			MaxPartSeconds: defaultMaxPartSeconds,
		},
		Tools: Tools{
			Renamer:     defaultRenamerBinary,
			Tagger:      defaultTaggerBinary,
			Chapterizer: defaultChapterizerBinary,
			FFprobe:     defaultFFprobeBinary,
		},
		Books: Books{
			BaseURL:        defaultBooksBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Notifications: Notifications{
			BaseURL:        defaultPushoverBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Transmission: Transmission{
			URL: defaultTransmissionURL,
		},
		Cleanup: Cleanup{
			KeepIfSkips: true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// TVSubfolder is the default library subfolder for television.
const TVSubfolder = defaultTVSubfolder

// MoviesSubfolder is the default library subfolder for movies.
const MoviesSubfolder = defaultMoviesSubfolder

// AudiobooksSubfolder is the default library subfolder for audiobooks.
const AudiobooksSubfolder = defaultAudiobooksSubfolder
