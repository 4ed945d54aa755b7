package soundstage

// ParameterLookup is the narrow, read-only view of the Parameters registry
// an Effect is allowed to see — just enough to bind effect parameters
// (e.g. a filter cutoff) to the same Parameter machinery instances use,
// without handing effects write access to engine state.
type ParameterLookup interface {
	Value(id ParameterID) (float64, bool)
}

func (p *parameters) Value(id ParameterID) (float64, bool) {
	param, ok := p.get(id)
	if !ok {
		return 0, false
	}
	return param.Value(), true
}

// Effect is the polymorphic capability every mixer effect slot wraps
// (§6). Implementations must be allocation-free; only the effect-slot
// contract is specified here — concrete DSP (filters, reverbs) is out of
// scope for this package (§1 Non-goals).
type Effect interface {
	Process(input Frame, dt float64, params ParameterLookup) Frame
}

// EffectSlot is one stage in a track's processing chain (§3). Within a
// slot, output = input*(1-mix) + effect(input, dt, params)*mix.
type EffectSlot struct {
	id      EffectID
	Enabled bool
	Mix     CachedValue
	effect  Effect
}

func newEffectSlot(id EffectID, effect Effect, mix Value) *EffectSlot {
	return &EffectSlot{id: id, Enabled: true, Mix: NewCachedValue(mix), effect: effect}
}

// ID returns the slot's identifier.
func (s *EffectSlot) ID() EffectID { return s.id }

func (s *EffectSlot) process(input Frame, dt float64, params ParameterLookup) Frame {
	if !s.Enabled {
		return input
	}
	mix := s.Mix.Get()
	wet := s.effect.Process(input, dt, params)
	return input.Scale(1 - mix).Add(wet.Scale(mix))
}
