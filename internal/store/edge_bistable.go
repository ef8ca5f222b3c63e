package store

// EdgeDetectorState backs an R_TRIG or F_TRIG instance. M holds the
// previous scan's CLK value.
type EdgeDetectorState struct {
	Kind string // "R_TRIG" or "F_TRIG"
	CLK  bool
	Q    bool
	M    bool
}

func (s *Store) InitEdgeDetector(name string, kind string) *EdgeDetectorState {
	if e, ok := s.EdgeDetectors[name]; ok {
		return e
	}
	e := &EdgeDetectorState{Kind: kind}
	s.EdgeDetectors[name] = e
	return e
}

func (s *Store) GetEdgeDetector(name string) (*EdgeDetectorState, bool) {
	e, ok := s.EdgeDetectors[name]
	return e, ok
}

// UpdateRTrig sets Q true for exactly one call following a rising edge of clk.
func (s *Store) UpdateRTrig(name string, clk bool) bool {
	e := s.InitEdgeDetector(name, "R_TRIG")
	e.CLK = clk
	e.Q = clk && !e.M
	e.M = clk
	return e.Q
}

// UpdateFTrig sets Q true for exactly one call following a falling edge of clk.
func (s *Store) UpdateFTrig(name string, clk bool) bool {
	e := s.InitEdgeDetector(name, "F_TRIG")
	e.CLK = clk
	e.Q = !clk && e.M
	e.M = clk
	return e.Q
}

// BistableState backs an SR or RS instance.
type BistableState struct {
	Kind string // "SR" or "RS"
	Q1   bool
}

func (s *Store) InitBistable(name string, kind string) *BistableState {
	if b, ok := s.Bistables[name]; ok {
		return b
	}
	b := &BistableState{Kind: kind}
	s.Bistables[name] = b
	return b
}

func (s *Store) GetBistable(name string) (*BistableState, bool) {
	b, ok := s.Bistables[name]
	return b, ok
}

// UpdateSR applies set-dominant semantics: S1 wins over R.
func (s *Store) UpdateSR(name string, s1, r bool) bool {
	b := s.InitBistable(name, "SR")
	switch {
	case s1:
		b.Q1 = true
	case r:
		b.Q1 = false
	}
	return b.Q1
}

// UpdateRS applies reset-dominant semantics: R1 wins over S.
func (s *Store) UpdateRS(name string, r1, sIn bool) bool {
	b := s.InitBistable(name, "RS")
	switch {
	case r1:
		b.Q1 = false
	case sIn:
		b.Q1 = true
	}
	return b.Q1
}
