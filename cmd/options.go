package cmd

import (
	"time"

	"github.com/smazurov/spincam/internal/logging"
	"github.com/smazurov/spincam/pkg/machinevision"
)

// Options are the settings shared by every command - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"spincam.toml"`

	// Device selection
	DeviceIndex  int    `help:"Camera index in the enumeration" default:"0" toml:"device.index" env:"DEVICE_INDEX"`
	DeviceSerial string `help:"Camera serial number, takes precedence over the index" toml:"device.serial" env:"DEVICE_SERIAL"`

	// Acquisition settings
	FrameTimeout        time.Duration `help:"How long a frame request waits for the camera" default:"1s" toml:"device.frame_timeout" env:"DEVICE_FRAME_TIMEOUT"`
	ExtraBoolParameters []string      `help:"Additional boolean camera nodes to expose as parameters" toml:"device.extra_bool_parameters" env:"DEVICE_EXTRA_BOOL_PARAMETERS"`

	// SDK settings
	SpinnakerLibrary string `help:"Path to the Spinnaker C library" toml:"spinnaker.library" env:"SPINNAKER_LIBRARY"`

	// Logging settings
	LoggingLevel     string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat    string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingDevices   string `help:"Devices logging level" toml:"logging.devices" env:"LOGGING_DEVICES"`
	LoggingCapture   string `help:"Capture logging level" toml:"logging.capture" env:"LOGGING_CAPTURE"`
	LoggingSpinnaker string `help:"Spinnaker SDK logging level" toml:"logging.spinnaker" env:"LOGGING_SPINNAKER"`
	LoggingConfig    string `help:"Config logging level" toml:"logging.config" env:"LOGGING_CONFIG"`
	LoggingAPI       string `help:"API logging level" toml:"logging.api" env:"LOGGING_API"`
}

// GrabOptions are the settings of the grab command. They are read from the
// [grab] table of the shared config file.
type GrabOptions struct {
	Output     string `help:"Directory PNG frames are written to, empty to skip writing files" short:"o" default:"frames" toml:"grab.output" env:"GRAB_OUTPUT"`
	Prefix     string `help:"File name prefix of written frames" default:"frame" toml:"grab.prefix" env:"GRAB_PREFIX"`
	Count      int    `help:"Number of frames to grab, 0 runs until interrupted" short:"n" default:"0" toml:"grab.count" env:"GRAB_COUNT"`
	Flip       bool   `help:"Rotate frames by 180 degrees" toml:"grab.flip" env:"GRAB_FLIP"`
	Presets    bool   `help:"Apply the [parameters] table of the config file after opening" default:"true" toml:"grab.presets" env:"GRAB_PRESETS"`
	Watch      bool   `help:"Reapply parameter presets and log levels when the config file changes" short:"w" toml:"grab.watch" env:"GRAB_WATCH"`
	Listen     string `help:"Address of the HTTP API, empty to disable" short:"l" toml:"grab.listen" env:"GRAB_LISTEN"`
	MaxRetries int    `help:"Give up after this many consecutive frame timeouts, 0 retries forever" default:"0" toml:"grab.max_retries" env:"GRAB_MAX_RETRIES"`
}

func (o *Options) loggingConfig() logging.Config {
	return logging.Config{
		Level:  o.LoggingLevel,
		Format: o.LoggingFormat,
		Modules: map[string]string{
			"devices":   o.LoggingDevices,
			"capture":   o.LoggingCapture,
			"spinnaker": o.LoggingSpinnaker,
			"config":    o.LoggingConfig,
			"api":       o.LoggingAPI,
		},
	}
}

// settings selects the camera by serial number when one is configured.
func (o *Options) settings() *machinevision.Settings {
	if o.DeviceSerial != "" {
		return &machinevision.Settings{UseSerialNumber: true, SerialNumber: o.DeviceSerial}
	}
	return &machinevision.Settings{DeviceID: o.DeviceIndex}
}
