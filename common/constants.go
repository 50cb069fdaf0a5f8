package common

import (
	"time"
)

// Compute hosts at or above this CPU utilization do not get new nodes started on them.
const DefaultCPUThreshold = 60.0

// How long to wait before probing a busy compute host again.
const DefaultAdmissionPoll = 4 * time.Second

// Settle delays imposed after a node start, before the next node of the same host is considered.
const DefaultHeavySettle = 4 * time.Second
const DefaultLightSettle = 2 * time.Second

// Remaining delays at or below this are treated as elapsed.
const DefaultReadyTolerance = 90 * time.Millisecond

const DefaultClientTimeout = 30 * time.Second
const DefaultHttpTries = 3
const DefaultConnectTries = 3

// Parameter files whose name carries this suffix are removed once read.
const TransientParamFileSuffix = ".tmp"
