package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full pipeline configuration. Credentials come from the
// environment (or a .env file); everything else has viper defaults and can
// be overridden from a config.yaml.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Debug   DebugConfig   `mapstructure:"debug"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Sources SourcesConfig `mapstructure:"sources"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type CacheConfig struct {
	Path string `mapstructure:"path"`
}

type AssetsConfig struct {
	// Backend is "local" or "s3". The local backend writes into Dir and
	// rewrites thumbnails to PublicPrefix-relative paths, matching what the
	// site generator serves.
	Backend      string `mapstructure:"backend"`
	Dir          string `mapstructure:"dir"`
	PublicPrefix string `mapstructure:"public_prefix"`

	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
}

type DebugConfig struct {
	// DumpJSON mirrors every fetched collection to DumpDir/<source>.json.
	// Enabled in development builds, off in production.
	DumpJSON bool   `mapstructure:"dump_json"`
	DumpDir  string `mapstructure:"dump_dir"`
}

type FetchConfig struct {
	// Workers caps concurrent enrichment calls per bucket.
	Workers        int  `mapstructure:"workers"`
	UseCache       bool `mapstructure:"use_cache"`
	BrowserTimeout int  `mapstructure:"browser_timeout_seconds"`
	Headless       bool `mapstructure:"headless"`
}

type SourcesConfig struct {
	Games       GamesConfig       `mapstructure:"games"`
	Trakt       TraktConfig       `mapstructure:"trakt"`
	Manga       MangaConfig       `mapstructure:"manga"`
	Music       MusicConfig       `mapstructure:"music"`
	Videos      VideosConfig      `mapstructure:"videos"`
	Webcomics   WebcomicsConfig   `mapstructure:"webcomics"`
	Status      StatusConfig      `mapstructure:"status"`
	Webmentions WebmentionsConfig `mapstructure:"webmentions"`
}

type GamesConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	User     string `mapstructure:"user"`
	TTLDays  int    `mapstructure:"ttl_days"`
	UseCache bool   `mapstructure:"use_cache"`
}

type TraktConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	User     string `mapstructure:"user"`
	ClientID string `mapstructure:"client_id"`
	TTLDays  int    `mapstructure:"ttl_days"`
	UseCache bool   `mapstructure:"use_cache"`
}

type MangaConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	ListID       string `mapstructure:"list_id"`
	TTLDays      int    `mapstructure:"ttl_days"`
}

type MusicConfig struct {
	Enabled      bool              `mapstructure:"enabled"`
	ClientID     string            `mapstructure:"client_id"`
	ClientSecret string            `mapstructure:"client_secret"`
	Playlists    map[string]string `mapstructure:"playlists"` // bucket -> playlist id
	TTLDays      int               `mapstructure:"ttl_days"`
}

type VideosConfig struct {
	Enabled   bool              `mapstructure:"enabled"`
	APIKey    string            `mapstructure:"api_key"`
	Playlists map[string]string `mapstructure:"playlists"` // bucket -> playlist id
	TTLDays   int               `mapstructure:"ttl_days"`
}

// WebcomicFeed is one (bucket, feed URL) scrape target. The flat list
// replaces nested per-status config so targets resolve once at startup.
type WebcomicFeed struct {
	Bucket string `mapstructure:"bucket"`
	URL    string `mapstructure:"url"`
}

// WebcomicOverride supplies static metadata for feeds that publish none.
type WebcomicOverride struct {
	Title       string   `mapstructure:"title"`
	Description string   `mapstructure:"description"`
	Thumbnail   string   `mapstructure:"thumbnail"`
	Genres      []string `mapstructure:"genres"`
	Author      string   `mapstructure:"author"`
	Link        string   `mapstructure:"link"`
}

type WebcomicsConfig struct {
	Enabled   bool                        `mapstructure:"enabled"`
	Feeds     []WebcomicFeed              `mapstructure:"feeds"`
	Overrides map[string]WebcomicOverride `mapstructure:"overrides"` // feed URL -> override
	TTLDays   int                         `mapstructure:"ttl_days"`
	UseCache  bool                        `mapstructure:"use_cache"`
}

type StatusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	FeedURL  string `mapstructure:"feed_url"`
	TTLDays  int    `mapstructure:"ttl_days"`
	UseCache bool   `mapstructure:"use_cache"`
}

type WebmentionsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
	PerPage int    `mapstructure:"per_page"`
	TTLDays int    `mapstructure:"ttl_days"`
}

// TTL converts a per-source ttl_days value into a duration, defaulting to
// one day when unset. TTLs intentionally differ across sources.
func TTL(days int) time.Duration {
	if days <= 0 {
		days = 1
	}
	return time.Duration(days) * 24 * time.Hour
}

// Load reads configuration from an optional YAML file, environment
// variables and a .env file.
func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for credentials
	v.BindEnv("sources.trakt.client_id", "TRAKT_CLIENT_ID")
	v.BindEnv("sources.manga.username", "MANGADEX_USERNAME")
	v.BindEnv("sources.manga.password", "MANGADEX_PASSWORD")
	v.BindEnv("sources.manga.client_id", "MANGADEX_CLIENT_ID")
	v.BindEnv("sources.manga.client_secret", "MANGADEX_CLIENT_SECRET")
	v.BindEnv("sources.music.client_id", "SPOTIFY_CLIENT_ID")
	v.BindEnv("sources.music.client_secret", "SPOTIFY_SECRET_KEY")
	v.BindEnv("sources.videos.api_key", "YOUTUBE_API_KEY")
	v.BindEnv("sources.webmentions.token", "WEBMENTIONS_TOKEN")
	v.BindEnv("assets.access_key", "ASSETS_ACCESS_KEY")
	v.BindEnv("assets.secret_key", "ASSETS_SECRET_KEY")
	v.BindEnv("debug.dump_json", "DEBUG_DUMP_JSON")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("cache.path", "./data/cache.db")

	v.SetDefault("assets.backend", "local")
	v.SetDefault("assets.dir", "./src/assets/images/covers")
	v.SetDefault("assets.public_prefix", "/assets/images/covers")

	v.SetDefault("debug.dump_json", false)
	v.SetDefault("debug.dump_dir", "./src/js/utils/_test")

	v.SetDefault("fetch.workers", 5)
	v.SetDefault("fetch.use_cache", true)
	v.SetDefault("fetch.browser_timeout_seconds", 10)
	v.SetDefault("fetch.headless", true)

	v.SetDefault("sources.games.enabled", true)
	v.SetDefault("sources.games.user", "KuluGary")
	v.SetDefault("sources.games.ttl_days", 7)
	v.SetDefault("sources.games.use_cache", true)

	v.SetDefault("sources.trakt.enabled", true)
	v.SetDefault("sources.trakt.user", "kulugary")
	v.SetDefault("sources.trakt.ttl_days", 1)
	v.SetDefault("sources.trakt.use_cache", true)

	v.SetDefault("sources.manga.enabled", true)
	v.SetDefault("sources.manga.list_id", "afb0fc3b-ad9c-44e4-ba9f-5e780f464ded")
	v.SetDefault("sources.manga.ttl_days", 7)

	v.SetDefault("sources.music.enabled", true)
	v.SetDefault("sources.music.playlists", map[string]string{
		"favourites": "79jHGYxWHmhXthpE0o8DIK",
	})
	v.SetDefault("sources.music.ttl_days", 7)

	v.SetDefault("sources.videos.enabled", true)
	v.SetDefault("sources.videos.playlists", map[string]string{
		"favourites": "FLYZ470OLAQ3k2sAcPDX4erg",
	})
	v.SetDefault("sources.videos.ttl_days", 1)

	v.SetDefault("sources.webcomics.enabled", true)
	v.SetDefault("sources.webcomics.ttl_days", 1)
	v.SetDefault("sources.webcomics.use_cache", true)

	v.SetDefault("sources.status.enabled", true)
	v.SetDefault("sources.status.feed_url", "https://status.cafe/users/kulugary.atom")
	v.SetDefault("sources.status.ttl_days", 1)
	// status.cafe entries change often enough that caching is off by default
	v.SetDefault("sources.status.use_cache", false)

	v.SetDefault("sources.webmentions.enabled", true)
	v.SetDefault("sources.webmentions.per_page", 1000)
	v.SetDefault("sources.webmentions.ttl_days", 1)
}
