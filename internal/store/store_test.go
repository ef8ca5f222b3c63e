package store

import (
	"testing"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

func TestTONRisingEdgeCountsUpToDoneThenHoldsAtPT(t *testing.T) {
	s := New(100)
	s.InitTimer("T1", 300, "TON")
	s.SetTimerInput("T1", true)

	s.UpdateTimer("T1", 100)
	s.UpdateTimer("T1", 100)
	timer, _ := s.GetTimer("T1")
	if timer.Q {
		t.Fatalf("Q should still be false before PT elapses, ET=%d", timer.ET)
	}

	s.UpdateTimer("T1", 100)
	if !timer.Q || timer.ET != 300 {
		t.Errorf("after PT elapses: Q=%v ET=%d, want Q=true ET=300", timer.Q, timer.ET)
	}

	// ET holds at PT, does not overshoot, while IN stays true.
	s.UpdateTimer("T1", 100)
	if timer.ET != 300 {
		t.Errorf("ET should clamp at PT, got %d", timer.ET)
	}

	s.SetTimerInput("T1", false)
	s.UpdateTimer("T1", 100)
	if timer.Q || timer.ET != 0 {
		t.Errorf("falling edge should reset TON to idle: Q=%v ET=%d", timer.Q, timer.ET)
	}
}

func TestTONWithZeroPresetGoesDoneImmediately(t *testing.T) {
	s := New(100)
	s.InitTimer("T1", 0, "TON")
	s.SetTimerInput("T1", true)
	s.UpdateTimer("T1", 100)
	timer, _ := s.GetTimer("T1")
	if !timer.Q {
		t.Error("TON with PT=0 should go Q=true on the very first scan after the rising edge")
	}
}

func TestTOFFallingEdgeHoldsQUntilPTElapses(t *testing.T) {
	s := New(100)
	s.InitTimer("T1", 200, "TOF")
	s.SetTimerInput("T1", true)
	s.UpdateTimer("T1", 100)
	timer, _ := s.GetTimer("T1")
	if !timer.Q {
		t.Fatal("TOF should go Q=true immediately on rising edge")
	}

	s.SetTimerInput("T1", false)
	s.UpdateTimer("T1", 100)
	if !timer.Q {
		t.Error("TOF should keep Q=true while counting down after the falling edge")
	}

	s.UpdateTimer("T1", 100)
	if timer.Q {
		t.Errorf("TOF should drop Q=false once PT elapses, ET=%d", timer.ET)
	}
}

func TestTPIsNotRetriggerableWhilePulsing(t *testing.T) {
	s := New(100)
	s.InitTimer("T1", 1000, "TP")
	s.SetTimerInput("T1", true)
	s.UpdateTimer("T1", 100)
	timer, _ := s.GetTimer("T1")
	if !timer.Q {
		t.Fatal("TP should start pulsing on rising edge")
	}

	// Dropping and re-raising IN mid-pulse must not restart the timer: the
	// elapsed time keeps accumulating from the original edge.
	s.SetTimerInput("T1", false)
	s.UpdateTimer("T1", 100)
	s.SetTimerInput("T1", true)
	s.UpdateTimer("T1", 100)
	if timer.ET != 300 || !timer.Q {
		t.Errorf("TP retrigger mid-pulse should be ignored: ET=%d Q=%v, want ET=300 Q=true", timer.ET, timer.Q)
	}

	s.UpdateTimer("T1", 700)
	if timer.Q {
		t.Error("TP should drop Q=false once its pulse elapses")
	}
	if timer.ET != 1000 {
		t.Errorf("ET should clamp at PT, got %d", timer.ET)
	}
}

func TestCTUNoUpperBound(t *testing.T) {
	s := New(100)
	for i := 0; i < 5; i++ {
		s.PulseCountUp("C1", true, false, 3)
		s.PulseCountUp("C1", false, false, 3)
	}
	c, _ := s.GetCounter("C1")
	if c.CV != 5 {
		t.Errorf("CV = %d, want 5 (CTU has no upper bound)", c.CV)
	}
	if !c.QU {
		t.Error("QU should be true once CV >= PV")
	}
}

func TestCTUResetOverridesCountUp(t *testing.T) {
	s := New(100)
	s.PulseCountUp("C1", true, false, 3)
	s.PulseCountUp("C1", true, true, 3) // CU and R both true in the same call: R wins
	c, _ := s.GetCounter("C1")
	if c.CV != 0 {
		t.Errorf("CV = %d, want 0 (R must override CU)", c.CV)
	}
}

func TestCTDSaturatesAtZero(t *testing.T) {
	s := New(100)
	s.PulseCountDown("C1", false, true, 2) // LD loads PV
	s.PulseCountDown("C1", true, false, 2)
	s.PulseCountDown("C1", false, false, 2)
	s.PulseCountDown("C1", true, false, 2)
	s.PulseCountDown("C1", false, false, 2)
	s.PulseCountDown("C1", true, false, 2) // third decrement, CV already 0
	c, _ := s.GetCounter("C1")
	if c.CV != 0 {
		t.Errorf("CV = %d, want 0 (CTD must saturate, never go negative)", c.CV)
	}
	if !c.QD {
		t.Error("QD should be true once CV <= 0")
	}
}

func TestCTUDResetDominatesLoadDominatesCountInputs(t *testing.T) {
	s := New(100)
	s.PulseCountUpDown("C1", true, false, false, false, 5)
	s.PulseCountUpDown("C1", false, false, false, false, 5)
	s.PulseCountUpDown("C1", true, false, false, false, 5)
	c, _ := s.GetCounter("C1")
	if c.CV != 2 {
		t.Fatalf("CV = %d, want 2 after two CU pulses", c.CV)
	}

	// R and LD both asserted alongside CU/CD: R must win.
	s.PulseCountUpDown("C1", true, true, true, true, 5)
	if c.CV != 0 {
		t.Errorf("CV = %d, want 0 (R must dominate LD and CU/CD)", c.CV)
	}

	// LD alone loads PV, dominating CU/CD.
	s.PulseCountUpDown("C1", true, true, false, true, 5)
	if c.CV != 5 {
		t.Errorf("CV = %d, want 5 (LD must dominate CU/CD)", c.CV)
	}
}

func TestRTrigFiresOnceThenClears(t *testing.T) {
	s := New(100)
	if q := s.UpdateRTrig("E1", true); !q {
		t.Error("first call after rising edge should fire Q=true")
	}
	if q := s.UpdateRTrig("E1", true); q {
		t.Error("second call with CLK still true should not refire")
	}
	s.UpdateRTrig("E1", false)
	if q := s.UpdateRTrig("E1", true); !q {
		t.Error("a fresh rising edge should fire again")
	}
}

func TestFTrigFiresOnFallingEdgeOnly(t *testing.T) {
	s := New(100)
	s.UpdateFTrig("E1", true)
	if q := s.UpdateFTrig("E1", false); !q {
		t.Error("falling edge should fire Q=true")
	}
	if q := s.UpdateFTrig("E1", false); q {
		t.Error("Q should not refire while CLK stays low")
	}
}

func TestSRIsSetDominant(t *testing.T) {
	s := New(100)
	q := s.UpdateSR("B1", true, true) // S1 and R both asserted: S1 wins
	if !q {
		t.Error("SR should be set-dominant: S1=TRUE,R=TRUE must yield Q1=true")
	}
	q = s.UpdateSR("B1", false, true)
	if q {
		t.Error("R alone should reset Q1")
	}
}

func TestRSIsResetDominant(t *testing.T) {
	s := New(100)
	q := s.UpdateRS("B1", true, true) // R1 and S both asserted: R1 wins
	if q {
		t.Error("RS should be reset-dominant: R1=TRUE,S=TRUE must yield Q1=false")
	}
	q = s.UpdateRS("B1", false, true)
	if !q {
		t.Error("S alone should set Q1")
	}
}

func TestArrayFlatIndexRowMajorAndBounds(t *testing.T) {
	meta := types.ArrayMeta{
		Ranges: []ast.ArrayRange{{Start: 1, End: 2}, {Start: 1, End: 3}},
	}
	s := New(100)
	a := s.InitArray("m", meta)
	if len(a.Values) != 6 {
		t.Fatalf("array size = %d, want 6", len(a.Values))
	}
	a.SetElement([]int64{1, 1}, 11)
	a.SetElement([]int64{2, 3}, 23)
	if got := a.GetElement([]int64{1, 1}); got != 11 {
		t.Errorf("m[1,1] = %v, want 11", got)
	}
	if got := a.GetElement([]int64{2, 3}); got != 23 {
		t.Errorf("m[2,3] = %v, want 23", got)
	}

	// Out of range writes are silent no-ops; reads default to 0.
	a.SetElement([]int64{9, 9}, 999)
	if got := a.GetElement([]int64{9, 9}); got != 0 {
		t.Errorf("out-of-range read = %v, want 0", got)
	}
	if got := a.GetElement([]int64{1, 1}); got != 11 {
		t.Errorf("out-of-range write must not disturb m[1,1], got %v", got)
	}

	// Wrong subscript count is also out of range.
	if _, ok := a.FlatIndex([]int64{1}); ok {
		t.Error("a subscript count mismatch must report out-of-range, not panic")
	}
}

func TestStoreUnknownNameDefaultsByType(t *testing.T) {
	s := New(100)
	if s.GetBool("nope") != false {
		t.Error("unknown BOOL name should default to false")
	}
	if s.GetInt("nope") != 0 {
		t.Error("unknown INT name should default to 0")
	}
	if s.GetReal("nope") != 0 {
		t.Error("unknown REAL name should default to 0")
	}
	if s.GetString("nope") != "" {
		t.Error("unknown STRING name should default to empty")
	}
}

func TestStoreClearAllResetsEverything(t *testing.T) {
	s := New(100)
	s.SetBool("x", true)
	s.SetInt("y", 5)
	s.Clock = 1234
	s.ClearAll()
	if s.GetBool("x") != false || s.GetInt("y") != 0 {
		t.Error("ClearAll should wipe all scalar storage")
	}
	if s.Clock != 0 {
		t.Errorf("ClearAll should reset Clock, got %d", s.Clock)
	}
}
