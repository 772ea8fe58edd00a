// Package machinevision defines a small, vendor-neutral camera device interface.
//
// Device adapters (for example the Spinnaker adapter in internal/devices)
// implement [Device]. Application code enumerates hardware, opens a device,
// starts capture and pulls frames without depending on vendor APIs.
//
// # Lifecycle
//
//	Closed -> Open -> Configured -> StartCapture -> Capturing
//	Capturing -> StopCapture -> Configured -> Close -> Closed
//
// # Usage
//
//	for _, listed := range dev.ListDevices() {
//	    fmt.Printf("%s, %s\n", listed.Manufacturer, listed.Model)
//	}
//
//	spec, err := dev.Open(dev.DefaultSettings())
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	if !dev.StartCapture() {
//	    return errors.New("capture did not start")
//	}
//	defer func() {
//	    if err := dev.StopCapture(); err != nil {
//	        log.Printf("stop capture: %v", err)
//	    }
//	}()
//
//	frame, err := dev.GetFrame()
//	switch {
//	case errors.Is(err, machinevision.ErrFrameTimeout):
//	    // retry
//	case err != nil:
//	    return err
//	}
//	defer frame.Release()
//
// # Parameters
//
// Open populates an ordered [Parameter] collection. Parameters are either
// numeric with a range ([FloatParameter]) or boolean ([BoolParameter]) and
// read or write the device through a binding owned by each parameter.
//
// # Errors
//
// Every operation that touches hardware reports failures as [*Error] with a
// [Kind]. Use errors.Is against the sentinel values (ErrFrameTimeout,
// ErrIncompleteFrame, ...) to branch on kind.
package machinevision
