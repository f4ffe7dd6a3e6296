// Package variable holds the handful of tunable constants shared across
// the bridge client and server.
package variable

import "time"

const (
	// MaxChunk - maximum payload carried by one PUT body or one GET response body.
	MaxChunk = 640 * 1024

	// IdleTimeoutSeconds - upper bound on how long the server's GET handler
	// waits for destination readability before answering 204.
	IdleTimeoutSeconds = 60
)

// ServerIdleWait - how long the server's GET handler waits for data before
// giving up and responding 204. Three seconds short of IdleTimeoutSeconds so
// the response is always written before the client's own read deadline fires.
const ServerIdleWait = (IdleTimeoutSeconds - 3) * time.Second

// ClientReadTimeout - the Downlink Pump's HTTP client timeout. Three seconds
// longer than IdleTimeoutSeconds so the server always answers first.
const ClientReadTimeout = (IdleTimeoutSeconds + 3) * time.Second
