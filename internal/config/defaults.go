package config

const (
	defaultLibraryDir        = "~/videos"
	defaultDataDir           = "~/.local/share/shunt"
	defaultLogDir            = "~/.local/share/shunt/logs"
	defaultTVDBBaseURL       = "https://thetvdb.com"
	defaultTVDBUserAgent     = "Mozilla/5.0 (compatible; shunt/1.0)"
	defaultTVDBTimeout       = 30
	defaultFilmlisteURL      = "https://liste.mediathekview.de/Filmliste-akt.xz"
	defaultFilmlisteTimeout  = 120
	defaultMinDuration       = "00:25:00"
	defaultMatchingThreshold = 0.50
	defaultNamingExtension   = ".mp4"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LibraryDir: defaultLibraryDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		TVDB: TVDB{
			BaseURL:        defaultTVDBBaseURL,
			UserAgent:      defaultTVDBUserAgent,
			TimeoutSeconds: defaultTVDBTimeout,
		},
		Mediathek: Mediathek{
			FilmlisteURL:   defaultFilmlisteURL,
			MinDuration:    defaultMinDuration,
			TimeoutSeconds: defaultFilmlisteTimeout,
		},
		Matching: Matching{
			Threshold: defaultMatchingThreshold,
		},
		Naming: Naming{
			Extension: defaultNamingExtension,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
