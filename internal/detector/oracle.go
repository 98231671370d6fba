package detector

import (
	"fmt"

	"go.uber.org/zap"

	"go-fov-detector/internal/event"
)

// OnWillRender is the render stage's signal that the probe is part of the
// current frame. The first call in a sweep records the candidate angle as
// the detected FOV; calls outside a sweep are ignored.
func (d *Detector) OnWillRender() {
	if d.candidate <= 0 || !d.detecting {
		return
	}

	fov := d.candidate
	d.detectedFOV = fov
	d.log.Info("detected fov", zap.Int("fov", fov))
	d.setText(fmt.Sprintf("%d°", fov))

	d.terminate(Result{FOV: fov, Success: true})

	if fov != d.previousFOV {
		d.previousFOV = fov
		d.events.Dispatch(event.Event{Type: event.FOVChanged, Data: d})
	}
}
