package actorfsm

import "log/slog"

// StateID is a unique identifier for a state
type StateID string

// DefaultState is the fallback default state name and the no-op transition target
const DefaultState StateID = "default"

// Logger is the default logger used when none is provided
var Logger = slog.Default()
