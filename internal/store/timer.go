package store

// TimerState backs a TON, TOF, or TP instance. State is one of the
// kind-specific strings documented on each Update method; PrevIN is the
// previous scan's IN value, used to detect the rising/falling edge that
// drives the state machine.
type TimerState struct {
	Kind  string // "TON", "TOF", or "TP"
	IN    bool
	PrevIN bool
	PT    int64 // preset time, ms
	ET    int64 // elapsed time, ms
	Q     bool
	State string
}

// InitTimer materializes a timer instance on first reference, matching the
// store's lazy-instantiation contract; a second call is a no-op so the
// existing running state survives repeated calls within a scan.
func (s *Store) InitTimer(name string, pt int64, kind string) *TimerState {
	if t, ok := s.Timers[name]; ok {
		return t
	}
	t := &TimerState{Kind: kind, PT: pt, State: "idle"}
	s.Timers[name] = t
	return t
}

func (s *Store) GetTimer(name string) (*TimerState, bool) {
	t, ok := s.Timers[name]
	return t, ok
}

func (s *Store) SetTimerPT(name string, pt int64) {
	if t, ok := s.Timers[name]; ok {
		t.PT = pt
	}
}

func (s *Store) SetTimerInput(name string, in bool) {
	if t, ok := s.Timers[name]; ok {
		t.IN = in
	}
}

// UpdateTimer advances one timer by deltaMs, applying the TON/TOF/TP state
// machine described in the component design, then records IN as PrevIN for
// next scan's edge detection. Called once per scan, after statements run,
// for every live timer.
func (s *Store) UpdateTimer(name string, deltaMs int64) {
	t, ok := s.Timers[name]
	if !ok {
		return
	}
	rising := t.IN && !t.PrevIN
	falling := !t.IN && t.PrevIN

	switch t.Kind {
	case "TON":
		if rising {
			if t.PT <= 0 {
				t.State, t.ET, t.Q = "done", 0, true
			} else {
				t.State, t.ET, t.Q = "running", 0, false
			}
		}
		if falling {
			t.State, t.ET, t.Q = "idle", 0, false
		}
		if t.State == "running" {
			t.ET += deltaMs
			if t.ET >= t.PT {
				t.ET = t.PT
				t.State, t.Q = "done", true
			}
		}

	case "TOF":
		if rising {
			t.State, t.ET, t.Q = "on", 0, true
		}
		if falling {
			t.State, t.ET = "counting", 0
		}
		if t.State == "counting" {
			t.ET += deltaMs
			if t.ET >= t.PT {
				t.ET = t.PT
				t.State, t.Q = "off", false
			}
		}

	case "TP":
		if rising && t.State != "pulsing" {
			t.State, t.ET, t.Q = "pulsing", 0, true
		}
		if t.State == "pulsing" {
			t.ET += deltaMs
			if t.ET >= t.PT {
				t.ET = t.PT
				t.State, t.Q = "idle", false
			}
		}
	}

	t.PrevIN = t.IN
}
