// Package timeouts defines shared timeout defaults for biomemod commands.
package timeouts

import "time"

// TelemetryShutdown limits how long a command waits for spans to flush.
const TelemetryShutdown = 5 * time.Second

// Pass caps a single modification pass, script loading included.
const Pass = 2 * time.Minute
