// Package models defines the request and response bodies of the HTTP API.
package models

import "time"

// HealthData is the body of GET /api/health.
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
}

// HealthResponse wraps HealthData.
type HealthResponse struct {
	Body HealthData
}

// VersionData is the body of GET /api/version.
type VersionData struct {
	Version   string `json:"version" example:"v0.3.0" doc:"Application version"`
	GitCommit string `json:"git_commit" doc:"Git commit hash"`
	BuildDate string `json:"build_date" doc:"Build timestamp"`
	GoVersion string `json:"go_version" doc:"Go toolchain version"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Operating system and architecture"`
}

// VersionResponse wraps VersionData.
type VersionResponse struct {
	Body VersionData
}

// CameraData describes an enumerated camera.
type CameraData struct {
	Index        int    `json:"index" example:"0" doc:"Position in the enumeration"`
	Manufacturer string `json:"manufacturer" example:"FLIR" doc:"Device vendor name"`
	Model        string `json:"model" example:"Blackfly S BFS-U3-16S2C" doc:"Device model name"`
	Serial       string `json:"serial" example:"19230452" doc:"Device serial number"`
}

// CameraListData is the body of GET /api/cameras.
type CameraListData struct {
	Cameras []CameraData `json:"cameras" doc:"Cameras visible to the SDK"`
	Count   int          `json:"count" example:"1" doc:"Number of cameras"`
}

// CameraListResponse wraps CameraListData.
type CameraListResponse struct {
	Body CameraListData
}

// SpecificationData describes the opened camera.
type SpecificationData struct {
	CaptureMode  string `json:"capture_mode" example:"continuous" doc:"How the device delivers frames"`
	Width        int    `json:"width" example:"1440" doc:"Sensor width in pixels"`
	Height       int    `json:"height" example:"1080" doc:"Sensor height in pixels"`
	Manufacturer string `json:"manufacturer" example:"FLIR"`
	Model        string `json:"model" example:"Blackfly S BFS-U3-16S2C"`
	Serial       string `json:"serial" example:"19230452"`
}

// DeviceData is the body of GET /api/device.
type DeviceData struct {
	Type          string             `json:"type" example:"Spinnaker (FLIR)" doc:"Adapter identifier"`
	State         string             `json:"state" enum:"closed,configured,capturing" doc:"Lifecycle state"`
	SessionID     string             `json:"session_id,omitempty" doc:"Identifier of the current open session"`
	Specification *SpecificationData `json:"specification,omitempty" doc:"Present while a device is open"`
}

// DeviceResponse wraps DeviceData.
type DeviceResponse struct {
	Body DeviceData
}

// ParameterData describes one device parameter.
type ParameterData struct {
	Name  string   `json:"name" example:"ExposureTime"`
	Type  string   `json:"type" enum:"float,bool"`
	Unit  string   `json:"unit,omitempty" example:"us"`
	Value any      `json:"value" doc:"Current value, number or boolean"`
	Min   *float64 `json:"min,omitempty" doc:"Lower bound of numeric parameters"`
	Max   *float64 `json:"max,omitempty" doc:"Upper bound of numeric parameters"`
}

// ParameterListData is the body of GET /api/parameters.
type ParameterListData struct {
	Parameters []ParameterData `json:"parameters"`
	Count      int             `json:"count"`
}

// ParameterListResponse wraps ParameterListData.
type ParameterListResponse struct {
	Body ParameterListData
}

// ParameterResponse wraps a single ParameterData.
type ParameterResponse struct {
	Body ParameterData
}

// SetParameterRequest is the body of PUT /api/parameters/{name}.
type SetParameterRequest struct {
	Name string `path:"name" example:"Gain" doc:"Parameter name"`
	Body struct {
		Value any `json:"value" doc:"New value, number or boolean"`
	}
}

// SnapshotResponse carries the latest frame as PNG.
type SnapshotResponse struct {
	ContentType string    `header:"Content-Type"`
	FrameIndex  string    `header:"X-Frame-Index"`
	CapturedAt  time.Time `header:"Last-Modified"`
	Body        []byte
}
