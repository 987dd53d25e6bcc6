package config

import (
	"fmt"
	"math"
	"net/url"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gbytes "github.com/labstack/gommon/bytes"
	"github.com/rs/zerolog"
)

// Load monta a configuração: padrões -> arquivo (se path != "") -> ambiente.
//
// Erros de leitura do arquivo voltam embrulhados. Valores ausentes ou inválidos
// voltam juntos num *ValidationError.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// 1. padrões
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. arquivo opcional
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// 3. ambiente: só variáveis conhecidas e não vazias
	err := k.Load(env.ProviderWithValue("", ".", func(name, value string) (string, any) {
		key := strings.ToLower(name)
		if _, ok := keysByName[key]; !ok || value == "" {
			return "", nil
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. tipos
	var p problems
	for _, key := range keys {
		if !typeOK(key.kind, k.Get(key.name)) {
			p.add(key.name)
		}
	}
	if err := p.err(); err != nil {
		return nil, err
	}

	// 5. unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	normalize(&cfg)

	// 6. regras
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// typeOK aceita o tipo nativo (arquivo/padrões) ou uma string parseável (ambiente).
func typeOK(k kind, v any) bool {
	s, isString := v.(string)
	if isString {
		s = strings.TrimSpace(s)
	}

	switch k {
	case kindString:
		return isString || v == nil
	case kindInt:
		if isString {
			_, err := strconv.Atoi(s)
			return err == nil
		}
		switch n := v.(type) {
		case int, int64:
			return true
		case float64:
			return n == math.Trunc(n)
		}
		return false
	case kindFloat:
		if isString {
			_, err := strconv.ParseFloat(s, 64)
			return err == nil
		}
		switch v.(type) {
		case int, int64, float64:
			return true
		}
		return false
	case kindBool:
		if isString {
			_, err := strconv.ParseBool(s)
			return err == nil
		}
		_, ok := v.(bool)
		return ok
	case kindDuration:
		if !isString {
			return false
		}
		_, err := time.ParseDuration(s)
		return err == nil
	}
	return false
}

func normalize(cfg *Config) {
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.Notifier = strings.ToLower(strings.TrimSpace(cfg.Notifier))
	cfg.StatsBucket = strings.ToLower(strings.TrimSpace(cfg.StatsBucket))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.SlackBotToken = strings.TrimSpace(cfg.SlackBotToken)
	cfg.SlackChannelID = strings.TrimSpace(cfg.SlackChannelID)
	cfg.BodyLimit = strings.TrimSpace(cfg.BodyLimit)
}

func validate(cfg *Config) error {
	var p problems

	if !slices.Contains([]string{"development", "production", "test"}, cfg.AppEnv) {
		p.add("app_env")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		p.add("port")
	}

	switch cfg.Notifier {
	case NotifierSlack:
		if cfg.SlackBotToken == "" {
			p.add("slack_bot_token")
		}
		if cfg.SlackChannelID == "" {
			p.add("slack_channel_id")
		}
	case NotifierNATS:
		if strings.TrimSpace(cfg.NATSURL) == "" {
			p.add("nats_url")
		}
		if strings.TrimSpace(cfg.NATSSubject) == "" {
			p.add("nats_subject")
		}
	case NotifierLog:
	default:
		p.add("notifier")
	}
	if cfg.SlackAPIURL != "" {
		u, err := url.Parse(cfg.SlackAPIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			p.add("slack_api_url")
		}
	}

	if cfg.NotifyConcurrency < 1 {
		p.add("notify_concurrency")
	}
	if cfg.NotifyRPS <= 0 {
		p.add("notify_rps")
	}
	if cfg.NotifyBurst <= 0 {
		p.add("notify_burst")
	}
	if cfg.NotifyTimeout < 0 {
		p.add("notify_timeout")
	}
	if _, err := time.LoadLocation(cfg.NotifyTimezone); err != nil || cfg.NotifyTimezone == "" {
		p.add("notify_timezone")
	}

	if cfg.StatsEnabled && strings.TrimSpace(cfg.StatsRedisAddr) == "" {
		p.add("stats_redis_addr")
	}
	if cfg.StatsRedisDB < 0 {
		p.add("stats_redis_db")
	}
	if cfg.StatsTTL < 0 {
		p.add("stats_ttl")
	}
	if cfg.StatsBucket != "minute" && cfg.StatsBucket != "none" {
		p.add("stats_bucket")
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		p.add("log_level")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		p.add("log_format")
	}
	if n, err := gbytes.Parse(cfg.BodyLimit); err != nil || n <= 0 {
		p.add("body_limit")
	}

	return p.err()
}
