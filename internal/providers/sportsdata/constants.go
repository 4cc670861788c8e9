package sportsdata

import "time"

const (
	providerName       = "sportsdata"
	defaultBaseURL     = "https://api.sportsdata.io/v3/cfb"
	defaultHTTPTimeout = 9 * time.Second
)
