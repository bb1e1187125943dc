package types

import "errors"

var (
	ErrMissingOrganization = errors.New("no organization given. Use --org or set organization in the config file")
	ErrUnsupportedSource   = errors.New("unsupported data source; use postgres or aws")
	ErrMissingDatabaseURL  = errors.New("DATABASE_URL environment variable not set")
	ErrEmptyNarrative      = errors.New("empty response from narrative generator")
)
