package param

// Automator hands parameter targets from a control thread to the render
// thread. The control side writes into the parameter's atomic slot; the
// render side reads the slot and owns the smoothing state, so neither
// side blocks or allocates. One writer and one reader per parameter.
type Automator struct {
	slots []automationSlot
	index []int // parameter ID -> slot, -1 when unknown
}

type automationSlot struct {
	param    *Parameter
	smoother Smoother
}

// NewAutomator smooths every parameter of registry with a linear ramp of
// rampSamples. Parameter IDs index a dense table, so keep them small.
func NewAutomator(registry *Registry, rampSamples int) *Automator {
	return NewAutomatorWith(registry, LinearSmoothing, rampSamples)
}

// NewAutomatorWith is NewAutomator with a chosen smoothing type.
func NewAutomatorWith(registry *Registry, smoothingType SmoothingType, rampSamples int) *Automator {
	params := registry.All()
	a := &Automator{slots: make([]automationSlot, len(params))}

	maxID := uint32(0)
	for _, p := range params {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	a.index = make([]int, int(maxID)+1)
	for i := range a.index {
		a.index[i] = -1
	}

	for i, p := range params {
		a.slots[i].param = p
		a.slots[i].smoother.smoothingType = smoothingType
		a.slots[i].smoother.SetRampSamples(rampSamples)
		a.slots[i].smoother.Reset(p.GetPlainValue())
		a.index[p.ID] = i
	}
	return a
}

func (a *Automator) slot(id uint32) *automationSlot {
	if int(id) >= len(a.index) {
		return nil
	}
	i := a.index[id]
	if i < 0 {
		return nil
	}
	return &a.slots[i]
}

// SetTarget publishes a new plain target for id. Safe to call from the
// control thread at any time; values are clamped to the parameter range
// and unknown IDs are ignored. It never blocks.
func (a *Automator) SetTarget(id uint32, value float64) {
	if s := a.slot(id); s != nil {
		s.param.SetPlainValue(value)
	}
}

// SetNormalizedTarget is SetTarget for a normalized (0-1) value, as
// delivered by host automation.
func (a *Automator) SetNormalizedTarget(id uint32, value float64) {
	if s := a.slot(id); s != nil {
		s.param.SetValue(value)
	}
}

// Target returns the last published plain target for id.
func (a *Automator) Target(id uint32) float64 {
	if s := a.slot(id); s != nil {
		return s.param.GetPlainValue()
	}
	return 0
}

// SampleSmoothed returns the next per-sample value of id, ramping towards
// the most recent target. Render thread only; call once per output sample.
func (a *Automator) SampleSmoothed(id uint32) float64 {
	s := a.slot(id)
	if s == nil {
		return 0
	}
	s.smoother.SetTarget(s.param.GetPlainValue())
	return s.smoother.Next()
}

// Steady reports whether id sits on its latest target with no ramp
// pending, i.e. the next SampleSmoothed calls will return Current(id).
// Render thread only.
func (a *Automator) Steady(id uint32) bool {
	s := a.slot(id)
	if s == nil {
		return true
	}
	return !s.smoother.IsSmoothing() && s.smoother.Current() == s.param.GetPlainValue()
}

// Current returns the smoothed value of id without advancing.
// Render thread only.
func (a *Automator) Current(id uint32) float64 {
	if s := a.slot(id); s != nil {
		return s.smoother.Current()
	}
	return 0
}

// SetRampSamples changes the ramp length of every parameter. Call only
// while rendering is stopped.
func (a *Automator) SetRampSamples(rampSamples int) {
	for i := range a.slots {
		a.slots[i].smoother.SetRampSamples(rampSamples)
	}
}

// Snap jumps every smoother to its current target. Call only while
// rendering is stopped.
func (a *Automator) Snap() {
	for i := range a.slots {
		a.slots[i].smoother.Reset(a.slots[i].param.GetPlainValue())
	}
}
