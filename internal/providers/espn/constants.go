package espn

import "time"

const (
	providerName       = "espn"
	defaultBaseURL     = "https://site.api.espn.com/apis/site/v2/sports/football/college-football"
	defaultHTTPTimeout = 9 * time.Second

	profileURLFormat = "https://www.espn.com/college-football/player/_/id/%d"
)
