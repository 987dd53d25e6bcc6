// Package config carrega a configuração da API: padrões, arquivo opcional
// (YAML ou TOML) e variáveis de ambiente, nessa ordem de precedência.
//
// As chaves do arquivo são os nomes das variáveis em minúsculas
// (PORT -> port, SLACK_CHANNEL_ID -> slack_channel_id).
package config

import (
	"net"
	"strconv"
	"time"
	_ "time/tzdata" // imagens sem zoneinfo
)

type Config struct {
	AppEnv string `koanf:"app_env"`
	Port   int    `koanf:"port"`

	Notifier       string `koanf:"notifier"`
	SlackBotToken  string `koanf:"slack_bot_token"`
	SlackChannelID string `koanf:"slack_channel_id"`
	SlackAPIURL    string `koanf:"slack_api_url"`
	NATSURL        string `koanf:"nats_url"`
	NATSSubject    string `koanf:"nats_subject"`

	NotifyConcurrency int           `koanf:"notify_concurrency"`
	NotifyRPS         float64       `koanf:"notify_rps"`
	NotifyBurst       int           `koanf:"notify_burst"`
	NotifyTimeout     time.Duration `koanf:"notify_timeout"`
	NotifyTimezone    string        `koanf:"notify_timezone"`

	StatsEnabled       bool          `koanf:"stats_enabled"`
	StatsRedisAddr     string        `koanf:"stats_redis_addr"`
	StatsRedisPassword string        `koanf:"stats_redis_password"`
	StatsRedisDB       int           `koanf:"stats_redis_db"`
	StatsPrefix        string        `koanf:"stats_prefix"`
	StatsTTL           time.Duration `koanf:"stats_ttl"`
	StatsBucket        string        `koanf:"stats_bucket"`

	MetricsEnabled bool   `koanf:"metrics_enabled"`
	LogLevel       string `koanf:"log_level"`
	LogFormat      string `koanf:"log_format"`
	BodyLimit      string `koanf:"body_limit"`
}

const (
	NotifierSlack = "slack"
	NotifierNATS  = "nats"
	NotifierLog   = "log"
)

// ListenAddr devolve o endereço do servidor HTTP (":3000").
func (c *Config) ListenAddr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// Location devolve o fuso de NOTIFY_TIMEZONE. O valor já foi validado no Load;
// o fallback para time.Local só acontece com Config montado à mão.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.NotifyTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}
