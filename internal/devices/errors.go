package devices

import (
	"errors"

	"github.com/smazurov/spincam/pkg/machinevision"
	"github.com/smazurov/spincam/pkg/spinnaker"
)

// deviceError converts err into a *machinevision.Error of the given kind.
// Vendor errors keep the SDK function name and message; errors that already
// crossed the device boundary are returned unchanged.
func deviceError(kind machinevision.Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var mvErr *machinevision.Error
	if errors.As(err, &mvErr) {
		return err
	}
	var spinErr *spinnaker.Error
	if errors.As(err, &spinErr) {
		msg := spinErr.Message
		if msg == "" {
			msg = spinErr.Code.String()
		}
		return machinevision.NewError(kind, spinErr.Func, msg, err)
	}
	return machinevision.NewError(kind, op, err.Error(), err)
}
