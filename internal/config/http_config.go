package config

import (
	"time"
)

const httpTimeoutVar = "HTTP_TIMEOUT"

type HTTPConfig interface {
	GetHTTPTimeout() time.Duration
	GetUserAgent() string
}

type HTTP struct{}

var _ HTTPConfig = HTTP{}

func (HTTP) GetHTTPTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(httpTimeoutVar, "30s"))
	if err != nil {
		return 30 * time.Second
	}
	return d
}

func (HTTP) GetUserAgent() string {
	return "petplace-go-client"
}
