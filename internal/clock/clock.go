// Package clock isolates time acquisition so tests can pin timestamps.
package clock

import "time"

// NowFunc supplies the current time. Replace in tests for determinism.
var NowFunc = time.Now

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }
