// Package logging provides structured logging with per-module log levels.
//
// Every package asks for its own logger once and keeps it:
//
//	logger := logging.GetLogger("devices")
//	logger.Info("Device opened", "serial", serial)
//
// Loggers obtained before Initialize start at info level and are updated in
// place when Initialize or SetLevels runs, so package-level logger variables
// are safe.
//
// Text or JSON output goes to stderr, keeping stdout free for command output.
// When journald is reachable every record is also sent to the journal under
// the identifier "spincam", with attributes as upper-cased fields:
//
//	journalctl -t spincam MODULE=devices SERIAL=19230452
//
// Levels come from the [logging] table of spincam.toml. Keys other than level
// and format name modules:
//
//	[logging]
//	level = "info"
//	format = "text"
//	devices = "debug"
//	capture = "warn"
package logging
