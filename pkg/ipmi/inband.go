package ipmi

// Layer executes raw IPMI request batches.
type Layer interface {
	// BatchExecRaw runs requests with at most nSim outstanding and returns
	// the responses in request order.
	BatchExecRaw(requests []Request, nSim int) ([]Response, error)
}

// InBand is a Layer over the local device interface.
type InBand struct {
	engine *Engine
}

// NewInBand returns an in-band layer using engine.
func NewInBand(engine *Engine) *InBand {
	return &InBand{engine: engine}
}

// BatchExecRaw implements Layer. The error, if any, is a *Status.
func (l *InBand) BatchExecRaw(requests []Request, nSim int) ([]Response, error) {
	responses := make([]Response, len(requests))
	if err := l.engine.Exec(requests, responses, nSim); err != nil {
		return nil, err
	}
	return responses, nil
}

var _ Layer = (*InBand)(nil)
