package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/smazurov/spincam/internal/api/models"
	"github.com/smazurov/spincam/internal/capture"
	"github.com/smazurov/spincam/pkg/machinevision"
)

func (s *Server) registerDeviceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-cameras",
		Method:      http.MethodGet,
		Path:        "/api/cameras",
		Summary:     "List cameras",
		Description: "Enumerate the cameras currently visible to the Spinnaker SDK",
		Tags:        []string{"device"},
	}, func(_ context.Context, _ *struct{}) (*models.CameraListResponse, error) {
		listed := s.device.ListDevices()
		cameras := make([]models.CameraData, 0, len(listed))
		for i, d := range listed {
			c := models.CameraData{Index: i, Manufacturer: d.Manufacturer, Model: d.Model}
			if d.Settings != nil {
				c.Serial = d.Settings.SerialNumber
			}
			cameras = append(cameras, c)
		}
		return &models.CameraListResponse{
			Body: models.CameraListData{Cameras: cameras, Count: len(cameras)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "get-device",
		Method:      http.MethodGet,
		Path:        "/api/device",
		Summary:     "Device state",
		Description: "Lifecycle state and specification of the opened camera",
		Tags:        []string{"device"},
	}, func(_ context.Context, _ *struct{}) (*models.DeviceResponse, error) {
		data := models.DeviceData{
			Type:      s.device.TypeName(),
			State:     s.device.State().String(),
			SessionID: s.device.SessionID(),
		}
		if spec, ok := s.device.Specification(); ok {
			data.Specification = &models.SpecificationData{
				CaptureMode:  string(spec.CaptureMode),
				Width:        spec.Width,
				Height:       spec.Height,
				Manufacturer: spec.Manufacturer,
				Model:        spec.Model,
				Serial:       spec.Serial,
			}
		}
		return &models.DeviceResponse{Body: data}, nil
	})
}

func (s *Server) registerParameterRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-parameters",
		Method:      http.MethodGet,
		Path:        "/api/parameters",
		Summary:     "List parameters",
		Description: "Current values and ranges of all registered device parameters",
		Tags:        []string{"parameters"},
	}, func(_ context.Context, _ *struct{}) (*models.ParameterListResponse, error) {
		params := s.device.Parameters()
		data := make([]models.ParameterData, 0, len(params))
		for _, p := range params {
			data = append(data, s.parameterData(p))
		}
		return &models.ParameterListResponse{
			Body: models.ParameterListData{Parameters: data, Count: len(data)},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-parameter",
		Method:      http.MethodPut,
		Path:        "/api/parameters/{name}",
		Summary:     "Set parameter",
		Description: "Write a parameter value to the device. Numbers for numeric parameters, booleans for switches.",
		Tags:        []string{"parameters"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity},
	}, func(_ context.Context, input *models.SetParameterRequest) (*models.ParameterResponse, error) {
		p, ok := s.device.Parameter(input.Name)
		if !ok {
			return nil, huma.Error404NotFound("no parameter named " + strconv.Quote(input.Name))
		}
		if err := s.device.SetParameter(input.Name, input.Body.Value); err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return &models.ParameterResponse{Body: s.parameterData(p)}, nil
	})
}

// parameterData reads p from the device, falling back to the last known
// values when the device read fails.
func (s *Server) parameterData(p machinevision.Parameter) models.ParameterData {
	data := models.ParameterData{
		Name: p.Name(),
		Type: string(p.Type()),
		Unit: p.Unit(),
	}

	switch fp := p.(type) {
	case *machinevision.FloatParameter:
		value, err := fp.Get()
		minimum, maximum, rangeErr := fp.Range()
		if err != nil || rangeErr != nil {
			s.logger.Debug("Parameter read failed, using cached values", "parameter", p.Name(), "error", errors.Join(err, rangeErr))
			value, minimum, maximum = fp.Cached()
		}
		data.Value, data.Min, data.Max = value, &minimum, &maximum
	case *machinevision.BoolParameter:
		value, err := fp.Get()
		if err != nil {
			s.logger.Debug("Parameter read failed, using cached value", "parameter", p.Name(), "error", err)
			value = fp.Cached()
		}
		data.Value = value
	default:
		data.Value, _ = p.Value()
	}
	return data
}

func (s *Server) registerSnapshotRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-snapshot",
		Method:      http.MethodGet,
		Path:        "/api/snapshot",
		Summary:     "Latest frame",
		Description: "The most recent frame delivered by the capture loop, encoded as PNG",
		Tags:        []string{"capture"},
		Errors:      []int{http.StatusNotFound, http.StatusServiceUnavailable},
	}, func(_ context.Context, _ *struct{}) (*models.SnapshotResponse, error) {
		if s.snapshot == nil {
			return nil, huma.Error404NotFound("snapshots are disabled")
		}
		data, index, at, err := s.snapshot.PNG()
		if errors.Is(err, capture.ErrNoSnapshot) {
			return nil, huma.Error503ServiceUnavailable(err.Error())
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to encode snapshot", err)
		}
		return &models.SnapshotResponse{
			ContentType: "image/png",
			FrameIndex:  strconv.FormatUint(index, 10),
			CapturedAt:  at,
			Body:        data,
		}, nil
	})
}
