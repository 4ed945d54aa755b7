package soundstage

// parameters is the audio-thread registry of live Parameter instances,
// fixed capacity, reject-on-full (see the Open Question resolution in
// DESIGN.md: every pool except Instances rejects at capacity).
type parameters struct {
	entries *vecMap[ParameterID, *Parameter]
}

func newParameters(capacity int) *parameters {
	return &parameters{entries: newVecMap[ParameterID, *Parameter](capacity)}
}

func (p *parameters) add(id ParameterID, param *Parameter) bool {
	return p.entries.Insert(id, param)
}

func (p *parameters) get(id ParameterID) (*Parameter, bool) {
	return p.entries.Get(id)
}

func (p *parameters) remove(id ParameterID) bool {
	_, ok := p.entries.Remove(id)
	return ok
}

// update advances every parameter's tween by dt. Called once per tick
// from Backend.Process, step 3.
func (p *parameters) update(dt float64) {
	p.entries.Each(func(_ ParameterID, param *Parameter) {
		param.Update(dt)
	})
}

func (p *parameters) len() int {
	return p.entries.Len()
}
