package config

import (
	"strings"
	"time"
)

type kind int

const (
	kindString kind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
)

type key struct {
	name string // chave no koanf, igual ao nome da variável em minúsculas
	kind kind
	def  any
}

// keys lista todas as variáveis conhecidas. A ordem aqui é a ordem das
// variáveis no ValidationError.
var keys = []key{
	{"app_env", kindString, "development"},
	{"port", kindInt, 3000},

	{"notifier", kindString, NotifierSlack},
	{"slack_bot_token", kindString, ""},
	{"slack_channel_id", kindString, "#hiring"},
	{"slack_api_url", kindString, ""},
	{"nats_url", kindString, ""},
	{"nats_subject", kindString, "jobs.applications"},

	{"notify_concurrency", kindInt, 4},
	{"notify_rps", kindFloat, 1.0},
	{"notify_burst", kindInt, 3},
	{"notify_timeout", kindDuration, "10s"},
	{"notify_timezone", kindString, "America/Sao_Paulo"},

	{"stats_enabled", kindBool, false},
	{"stats_redis_addr", kindString, ""},
	{"stats_redis_password", kindString, ""},
	{"stats_redis_db", kindInt, 0},
	{"stats_prefix", kindString, "jobs:stats"},
	{"stats_ttl", kindDuration, (24 * time.Hour).String()},
	{"stats_bucket", kindString, "minute"},

	{"metrics_enabled", kindBool, true},
	{"log_level", kindString, "info"},
	{"log_format", kindString, "json"},
	{"body_limit", kindString, "64K"},
}

var keysByName = func() map[string]key {
	m := make(map[string]key, len(keys))
	for _, k := range keys {
		m[k.name] = k
	}
	return m
}()

func defaults() map[string]any {
	m := make(map[string]any, len(keys))
	for _, k := range keys {
		m[k.name] = k.def
	}
	return m
}

// envName converte a chave para o nome da variável de ambiente.
func envName(name string) string { return strings.ToUpper(name) }
