package store

// CounterState backs a CTU, CTD, or CTUD instance. PrevCU/PrevCD hold the
// previous scan's count inputs for edge detection.
type CounterState struct {
	Kind           string // "CTU", "CTD", or "CTUD"
	CU, CD, R, LD  bool
	PrevCU, PrevCD bool
	PV             int64
	CV             int64
	QU, QD         bool
}

// InitCounter materializes a counter instance on first reference.
func (s *Store) InitCounter(name string, pv int64, kind string) *CounterState {
	if c, ok := s.Counters[name]; ok {
		return c
	}
	c := &CounterState{Kind: kind, PV: pv}
	s.Counters[name] = c
	return c
}

func (s *Store) GetCounter(name string) (*CounterState, bool) {
	c, ok := s.Counters[name]
	return c, ok
}

func (s *Store) ResetCounter(name string) {
	if c, ok := s.Counters[name]; ok {
		c.CV = 0
		c.QU, c.QD = false, true
	}
}

// PulseCountUp applies one CTU call: R forces CV to 0 overriding CU; a
// rising edge of CU otherwise increments CV without an upper bound.
func (s *Store) PulseCountUp(name string, cu, r bool, pv int64) {
	c := s.InitCounter(name, pv, "CTU")
	c.PV = pv
	rising := cu && !c.PrevCU
	switch {
	case r:
		c.CV = 0
	case rising:
		c.CV++
	}
	c.PrevCU = cu
	c.QU = c.CV >= c.PV
	c.QD = c.CV <= 0
}

// PulseCountDown applies one CTD call: LD forces CV to PV; a rising edge of
// CD otherwise decrements CV, saturating at 0.
func (s *Store) PulseCountDown(name string, cd, ld bool, pv int64) {
	c := s.InitCounter(name, pv, "CTD")
	c.PV = pv
	rising := cd && !c.PrevCD
	switch {
	case ld:
		c.CV = pv
	case rising:
		c.CV--
		if c.CV < 0 {
			c.CV = 0
		}
	}
	c.PrevCD = cd
	c.QU = c.CV >= c.PV
	c.QD = c.CV <= 0
}

// PulseCountUpDown applies one CTUD call. R dominates LD, which dominates
// CU/CD, per this core's convention for the vendor-defined priority (see
// the design notes' open question).
func (s *Store) PulseCountUpDown(name string, cu, cd, r, ld bool, pv int64) {
	c := s.InitCounter(name, pv, "CTUD")
	c.PV = pv
	risingCU := cu && !c.PrevCU
	risingCD := cd && !c.PrevCD
	switch {
	case r:
		c.CV = 0
	case ld:
		c.CV = pv
	default:
		if risingCU {
			c.CV++
		}
		if risingCD {
			c.CV--
			if c.CV < 0 {
				c.CV = 0
			}
		}
	}
	c.PrevCU, c.PrevCD = cu, cd
	c.QU = c.CV >= c.PV
	c.QD = c.CV <= 0
}
