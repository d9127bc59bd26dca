package ports

import (
	"time"

	"github.com/layer-3/marketauth/core"
)

// SessionTokenizer converts between session claims and bearer tokens
type SessionTokenizer interface {
	// Issue signs a token for subject valid for lifetime from now
	Issue(subject string, now time.Time, lifetime time.Duration) (string, *core.SessionClaims, error)

	// Validate checks the token integrity and expiry as of now
	Validate(token string, now time.Time) (*core.SessionClaims, error)
}
