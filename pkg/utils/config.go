package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ContactModeEmailJS = "emailjs"
	ContactModeMailto  = "mailto"
)

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	GRPC    GRPCConfig    `mapstructure:"grpc"`
	DB      DBConfig      `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Site    SiteConfig    `mapstructure:"site"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	Contact ContactConfig `mapstructure:"contact"`
	EmailJS EmailJSConfig `mapstructure:"emailjs"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Ambient AmbientConfig `mapstructure:"ambient"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type GRPCConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type SiteConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type GitHubConfig struct {
	Account string        `mapstructure:"account"`
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ContactConfig struct {
	Mode        string        `mapstructure:"mode"`
	Recipient   string        `mapstructure:"recipient"`
	AckDuration time.Duration `mapstructure:"ack_duration"`
	ResetDelay  time.Duration `mapstructure:"reset_delay"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// EmailJSConfig holds provider credentials. Never log these values.
type EmailJSConfig struct {
	PublicKey  string `mapstructure:"public_key"`
	ServiceID  string `mapstructure:"service_id"`
	TemplateID string `mapstructure:"template_id"`
	Endpoint   string `mapstructure:"endpoint"`
}

func (c EmailJSConfig) Complete() bool {
	return c.PublicKey != "" && c.ServiceID != "" && c.TemplateID != ""
}

type AdminConfig struct {
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTIssuer    string        `mapstructure:"jwt_issuer"`
	JWTDuration  time.Duration `mapstructure:"jwt_duration"`
}

func (c AdminConfig) Enabled() bool {
	return c.PasswordHash != ""
}

type AmbientConfig struct {
	FPS  int   `mapstructure:"fps"`
	Seed int64 `mapstructure:"seed"`
}

// LoadConfig reads .env (if present), an optional portfolio.yaml, and
// PORTFOLIO_* environment variables, in increasing precedence.
func LoadConfig(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Contact.Mode = ResolveContactMode(cfg.Contact.Mode, cfg.EmailJS)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("grpc.addr", ":9090")
	v.SetDefault("db.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("site.base_url", "http://localhost:8080")

	v.SetDefault("github.account", "MDTOUFIQUE623")
	v.SetDefault("github.api_url", "https://api.github.com")
	v.SetDefault("github.timeout", 10*time.Second)

	v.SetDefault("contact.mode", "")
	v.SetDefault("contact.recipient", "mdtoufiq6231@outlook.com")
	v.SetDefault("contact.ack_duration", 5*time.Second)
	v.SetDefault("contact.reset_delay", time.Second)
	v.SetDefault("contact.timeout", 10*time.Second)

	v.SetDefault("emailjs.public_key", "")
	v.SetDefault("emailjs.service_id", "")
	v.SetDefault("emailjs.template_id", "")
	v.SetDefault("emailjs.endpoint", "https://api.emailjs.com/api/v1.0/email/send")

	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.jwt_secret", "")
	v.SetDefault("admin.jwt_issuer", "portfolio")
	v.SetDefault("admin.jwt_duration", 24*time.Hour)

	v.SetDefault("ambient.fps", 30)
	v.SetDefault("ambient.seed", 1)
}

// ResolveContactMode picks the single delivery mechanism for this
// deployment. An explicit mode wins; otherwise EmailJS is used only when all
// three credentials are present.
func ResolveContactMode(mode string, emailjs EmailJSConfig) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode != "" {
		return mode
	}
	if emailjs.Complete() {
		return ContactModeEmailJS
	}
	return ContactModeMailto
}

func (c *Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("PORTFOLIO_HTTP_ADDR is required")
	}
	if strings.TrimSpace(c.GitHub.Account) == "" {
		return fmt.Errorf("PORTFOLIO_GITHUB_ACCOUNT is required")
	}
	switch c.Contact.Mode {
	case ContactModeEmailJS:
		if !c.EmailJS.Complete() {
			return fmt.Errorf("emailjs contact mode needs PORTFOLIO_EMAILJS_PUBLIC_KEY, PORTFOLIO_EMAILJS_SERVICE_ID and PORTFOLIO_EMAILJS_TEMPLATE_ID")
		}
	case ContactModeMailto:
	default:
		return fmt.Errorf("unknown contact mode %q", c.Contact.Mode)
	}
	if c.Contact.Recipient == "" {
		return fmt.Errorf("PORTFOLIO_CONTACT_RECIPIENT is required")
	}
	if c.Ambient.FPS < 1 || c.Ambient.FPS > 60 {
		return fmt.Errorf("PORTFOLIO_AMBIENT_FPS must be between 1 and 60")
	}
	return nil
}
