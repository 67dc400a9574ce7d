package projection

import (
	"context"

	"github.com/merchantdata/estate_reporting_backend/utils"
	"github.com/sirupsen/logrus"
)

// ApplyResult reports what the dispatcher did with an event.
type ApplyResult int

const (
	ResultApplied ApplyResult = iota
	ResultSkipped
)

func (r ApplyResult) String() string {
	if r == ResultApplied {
		return "applied"
	}
	return "skipped"
}

// Dispatcher is the single public entry point of the projection core:
// decode the envelope, forward to the projector. It never hides an error
// from its caller; retry, dead-letter and halt decisions belong to the
// subscription infrastructure.
type Dispatcher struct {
	Projector *Projector
	Logger    *logrus.Logger
}

func NewDispatcher(projector *Projector, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{Projector: projector, Logger: logger}
}

// ApplyEvent decodes and applies one event. Unknown type tags are skipped
// without error so a new upstream event type cannot wedge a stream; decode
// failures and projection failures are returned to the caller.
func (d *Dispatcher) ApplyEvent(ctx context.Context, typeTag string, payload []byte) (ApplyResult, error) {
	evt, ok, err := DecodeEvent(typeTag, payload)
	if err != nil {
		return ResultSkipped, err
	}
	if !ok {
		if d.Logger != nil {
			cid, _ := utils.GetCorrelationIdFromContext(ctx)
			d.Logger.WithFields(logrus.Fields{
				"module":         "projection",
				"event_type":     typeTag,
				"correlation_id": cid,
			}).Warn("unrecognised event type; skipping")
		}
		return ResultSkipped, nil
	}

	ctx = utils.SetEstateIdInContext(ctx, evt.Estate())
	if err := d.Projector.Apply(ctx, evt); err != nil {
		if d.Logger != nil {
			estateId, _ := utils.GetEstateIdFromContext(ctx)
			position, _ := utils.GetStreamPositionFromContext(ctx)
			cid, _ := utils.GetCorrelationIdFromContext(ctx)
			d.Logger.WithFields(logrus.Fields{
				"module":          "projection",
				"event_type":      typeTag,
				"estate_id":       estateId,
				"stream_position": position,
				"correlation_id":  cid,
			}).Error("projection failed: " + err.Error())
		}
		return ResultSkipped, err
	}
	return ResultApplied, nil
}
