package config

import (
	"time"
)

type Config struct {
	Scanwatch  Scanwatch  `yaml:"scanwatch"`
	Logger     Logger     `yaml:"logger"`
	Server     Server     `yaml:"server"`
	HttpClient HttpClient `yaml:"http_client"`
	Poller     Poller     `yaml:"poller"`
}

// Scanwatch holds the local working folders of the client.
type Scanwatch struct {
	HomeFolder    string `yaml:"home_folder"`
	ReportsFolder string `yaml:"reports_folder"`
	HistoryFolder string `yaml:"history_folder"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Server describes the remote Cody Foxy analysis service.
type Server struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
}

type HttpClient struct {
	Debug            string          `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TlsClientConfig  TlsClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TlsClientConfig struct {
	Verify bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

// Poller controls the scan status polling loop.
type Poller struct {
	Interval time.Duration `yaml:"interval"`
}
