package sat

// EMA is an exponential moving average. The solver's conflictRate field
// adds a sample of 1 on every conflict; nothing reads its value, and it is
// not printed in the search statistics. It carries no influence over the
// search itself: restart policies and activity-based heuristics are out of
// scope (see SPEC_FULL.md §1).
type EMA struct {
	decay float64
	value float64
	init  bool
}

func NewEMA(decay float64) EMA {
	return EMA{decay: decay}
}

func (ema *EMA) Add(x float64) {
	if !ema.init {
		ema.init = true
		ema.value = x
	} else {
		ema.value = ema.decay*ema.value + x*(1-ema.decay)
	}
}

func (ema *EMA) Val() float64 {
	return ema.value
}
