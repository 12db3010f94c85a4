package shared

import (
	"net/http"
)

const defaultUserAgent = "SSB-Courier-Bot/1.0 (+https://github.com/ssb-courier)"

type IUserAgent interface {
	AddUserAgent(req *http.Request)
}

type userAgent struct {
	userAgentValue string
}

func NewUserAgent(cfg *Config) IUserAgent {
	value := cfg.Rss.UserAgent
	if value == "" {
		value = defaultUserAgent
	}
	return &userAgent{
		userAgentValue: value,
	}
}

func (ua *userAgent) AddUserAgent(req *http.Request) {
	req.Header.Add("User-Agent", ua.userAgentValue)
}
