package shared

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/tailscale/hujson"
)

const (
	configVarName  = "CONFIG"                      // If set, will load config.jsonc from this path and not from devConfigPath
	secretsVarName = "SECRETS"                     // If set, will load secrets.jsonc from this path and not from devSecretsPath
	devConfigPath  = "./dev/config.dev.jsonc"  // Path to config.jsonc in development environment
	devSecretsPath = "./dev/secrets.dev.jsonc" // Path to secrets.jsonc in development environment
)

const (
	minRefreshSec  = 5
	minCleanupDays = 1
)

type Config struct {
	Secrets            Secrets                `json:"-"`
	LogFile            string                 `json:"log_file"`
	LogLevel           string                 `json:"log_level"`
	ServicePort        uint                   `json:"service_port"`
	DbFile             string                 `json:"db_file"`
	Proxy              string                 `json:"proxy"`
	CleanupDays        int                    `json:"cleanup_days"`
	MaxMessageBytes    int                    `json:"max_message_bytes"`
	MessageMarginBytes int                    `json:"message_margin_bytes"`
	Rss                RssConfig              `json:"rss"`
	Sbots              map[string]*SbotConfig `json:"sbots"`
}

type RssConfig struct {
	UserAgent     string `json:"user_agent"`
	SkipFirstLoad bool   `json:"skip_first_load"`
	RefreshSec    int    `json:"refresh_sec"`
}

type SbotConfig struct {
	BridgeUrl string        `json:"bridge_url"`
	KeyFile   string        `json:"key_file"`
	Feeds     []*FeedConfig `json:"feeds"`
}

type FeedConfig struct {
	Url          string `json:"url"`
	RefreshSec   int    `json:"refresh_sec"`
	Proxy        string `json:"proxy"`
	CleanupDays  int    `json:"cleanup_days"`
	Channels     string `json:"channels"`
	PostTemplate string `json:"post_template"`
	StripImages  bool   `json:"strip_images"`
}

type Secrets struct {
	KeyPass     string   `json:"key_passphrase"`
	MetricsAuth string   `json:"metrics_auth"`
	ApiKeys     []string `json:"api_keys"`
}

// MessageBudget is the maximum encoded size a single post may occupy, leaving
// a margin below the sbot's hard message limit.
func (c *Config) MessageBudget() int {
	return c.MaxMessageBytes - c.MessageMarginBytes
}

func (fc *FeedConfig) Refresh() time.Duration {
	return time.Duration(fc.RefreshSec) * time.Second
}

func LoadConfig() *Config {

	// Where are our config and secrets files?
	cfgPath := os.Getenv(configVarName)
	if len(cfgPath) == 0 {
		cfgPath = devConfigPath
	}
	secretsPath := os.Getenv(secretsVarName)
	if len(secretsPath) == 0 {
		secretsPath = devSecretsPath
	}

	// Read config file
	var config Config
	mustDeserializeFile(cfgPath, &config)
	// Read secrets member from secrets file
	mustDeserializeFile(secretsPath, &config.Secrets)

	if err := config.validateAndNormalize(); err != nil {
		log.Fatal(err)
	}
	return &config
}

// validateAndNormalize fills in defaults, enforces lower bounds on intervals,
// and rejects malformed URLs. Feeds inherit proxy, refresh and cleanup from
// the global config when unset.
func (c *Config) validateAndNormalize() error {

	if c.MaxMessageBytes == 0 {
		c.MaxMessageBytes = 8192
	}
	if c.MessageMarginBytes == 0 {
		c.MessageMarginBytes = 200
	}
	if c.CleanupDays < minCleanupDays {
		c.CleanupDays = minCleanupDays
	}
	if c.Rss.RefreshSec < minRefreshSec {
		c.Rss.RefreshSec = minRefreshSec
	}

	if c.Proxy != "" {
		normalized, err := normalizeUrl(c.Proxy, "socks5", "socks5h")
		if err != nil {
			return fmt.Errorf("config: 'proxy' is invalid: %v", err)
		}
		c.Proxy = normalized
	}

	if len(c.Sbots) == 0 {
		log.Println("config: WARNING: no sbot instance defined; nothing will be posted")
		return nil
	}

	usedBridges := map[string]string{}
	for sbotName, sbot := range c.Sbots {
		if sbot.BridgeUrl == "" {
			return fmt.Errorf("config: 'bridge_url' of sbot %q is missing", sbotName)
		}
		normalized, err := normalizeUrl(sbot.BridgeUrl, "http", "https")
		if err != nil {
			return fmt.Errorf("config: 'bridge_url' of sbot %q is invalid: %v", sbotName, err)
		}
		sbot.BridgeUrl = normalized
		if other, taken := usedBridges[sbot.BridgeUrl]; taken {
			return fmt.Errorf("config: bridge %s of sbot %q is already used by sbot %q",
				sbot.BridgeUrl, sbotName, other)
		}
		usedBridges[sbot.BridgeUrl] = sbotName
		if sbot.KeyFile == "" {
			return fmt.Errorf("config: 'key_file' of sbot %q is missing", sbotName)
		}

		if len(sbot.Feeds) == 0 {
			log.Printf("config: WARNING: no feed defined for sbot %q; nothing will be posted to it", sbotName)
		}
		for _, feed := range sbot.Feeds {
			if normalized, err = normalizeUrl(feed.Url, "http", "https"); err != nil {
				return fmt.Errorf("config: feed url %q in sbot %q is invalid: %v", feed.Url, sbotName, err)
			}
			feed.Url = normalized
			if feed.RefreshSec < minRefreshSec {
				feed.RefreshSec = c.Rss.RefreshSec
			}
			if feed.CleanupDays < minCleanupDays {
				feed.CleanupDays = c.CleanupDays
			}
			if feed.Proxy == "" {
				feed.Proxy = c.Proxy
			} else {
				if normalized, err = normalizeUrl(feed.Proxy, "socks5", "socks5h"); err != nil {
					return fmt.Errorf("config: feed 'proxy' in sbot %q is invalid: %v", sbotName, err)
				}
				feed.Proxy = normalized
			}
		}
	}
	return nil
}

func normalizeUrl(urlStr string, acceptedSchemes ...string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return "", err
	}
	schemeOk := false
	for _, s := range acceptedSchemes {
		if parsed.Scheme == s {
			schemeOk = true
		}
	}
	if !schemeOk {
		return "", fmt.Errorf("scheme must be one of %v", acceptedSchemes)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("no host")
	}
	return parsed.String(), nil
}

func mustDeserializeFile[T any](fileName string, obj *T) {
	var err error
	var cfgJson []byte
	cfgJson, err = os.ReadFile(fileName)
	if err != nil {
		log.Fatal(err)
	}
	// JSONC => JSON
	cfgJson, err = standardizeJSON(cfgJson)
	if err != nil {
		log.Fatal(err)
	}
	// Parse
	if err := json.Unmarshal(cfgJson, obj); err != nil {
		log.Fatal(err)
	}
}

func standardizeJSON(b []byte) ([]byte, error) {
	ast, err := hujson.Parse(b)
	if err != nil {
		return b, err
	}
	ast.Standardize()
	return ast.Pack(), nil
}
