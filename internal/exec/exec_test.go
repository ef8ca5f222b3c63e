package exec_test

import (
	"testing"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/eval"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/exec"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/initializer"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/parser"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/store"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

func run(t *testing.T, src string) (*store.Store, *types.Registry) {
	t.Helper()
	program := parser.Parse(src)
	if len(program.Errors) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, program.Errors)
	}
	reg := types.Build(program)
	st := store.New(100)
	initializer.Initialize(program, st, reg)
	ctx := &eval.Context{Store: st, Registry: reg}
	exec.Execute(program.Statements, ctx)
	return st, reg
}

func TestAssignmentRoutesByDeclaredTag(t *testing.T) {
	st, _ := run(t, `
VAR
  flag : BOOL;
  count : INT;
  ratio : REAL;
  name : STRING;
END_VAR
flag := 1 = 1;
count := 7;
ratio := 2.5;
name := 'hi';
`)
	if !st.GetBool("flag") {
		t.Error("flag should be TRUE")
	}
	if st.GetInt("count") != 7 {
		t.Errorf("count = %d, want 7", st.GetInt("count"))
	}
	if st.GetReal("ratio") != 2.5 {
		t.Errorf("ratio = %v, want 2.5", st.GetReal("ratio"))
	}
	if st.GetString("name") != "hi" {
		t.Errorf("name = %q, want hi", st.GetString("name"))
	}
}

func TestAssignmentToIntTruncatesTowardFloor(t *testing.T) {
	st, _ := run(t, `
VAR
  count : INT;
END_VAR
count := 7.9;
`)
	if st.GetInt("count") != 7 {
		t.Errorf("count = %d, want 7 (floored)", st.GetInt("count"))
	}
}

func TestAssignmentToConstantIsIgnored(t *testing.T) {
	st, _ := run(t, `
VAR CONSTANT
  MaxCount : INT := 10;
END_VAR
MaxCount := 99;
`)
	if st.GetInt("MaxCount") != 10 {
		t.Errorf("MaxCount = %d, want unchanged 10", st.GetInt("MaxCount"))
	}
}

func TestAssignmentToUnknownNameIsDroppedNotPanicked(t *testing.T) {
	st, _ := run(t, `
VAR
  a : INT;
END_VAR
doesNotExist := 5;
a := 1;
`)
	if st.GetInt("a") != 1 {
		t.Error("statements after an unknown-target assignment must still run")
	}
}

func TestAssignmentWritesArrayElement(t *testing.T) {
	st, _ := run(t, `
VAR
  m : ARRAY[1..3] OF INT;
END_VAR
m[2] := 42;
`)
	arr, ok := st.GetArray("m")
	if !ok {
		t.Fatal("array m missing")
	}
	idx, _ := arr.FlatIndex([]int64{2})
	if arr.Values[idx] != 42 {
		t.Errorf("m[2] = %v, want 42", arr.Values[idx])
	}
}

func TestIfElsifElseRunsFirstTruthyBranch(t *testing.T) {
	st, _ := run(t, `
VAR
  x : INT;
  out : INT;
END_VAR
x := 2;
IF x = 1 THEN
  out := 1;
ELSIF x = 2 THEN
  out := 2;
ELSE
  out := 3;
END_IF;
`)
	if st.GetInt("out") != 2 {
		t.Errorf("out = %d, want 2", st.GetInt("out"))
	}
}

func TestIfWithNoMatchingBranchAndNoElseIsNoop(t *testing.T) {
	st, _ := run(t, `
VAR
  out : INT := 9;
END_VAR
IF FALSE THEN
  out := 1;
END_IF;
`)
	if st.GetInt("out") != 9 {
		t.Errorf("out = %d, want unchanged 9", st.GetInt("out"))
	}
}

func TestCaseMatchesRangeLabel(t *testing.T) {
	st, _ := run(t, `
VAR
  v : INT;
  out : INT;
END_VAR
v := 4;
CASE v OF
  1, 2: out := 1;
  3..5: out := 2;
  ELSE out := 0;
END_CASE;
`)
	if st.GetInt("out") != 2 {
		t.Errorf("out = %d, want 2", st.GetInt("out"))
	}
}

func TestCaseFallsBackToElseWhenNoLabelMatches(t *testing.T) {
	st, _ := run(t, `
VAR
  v : INT;
  out : INT;
END_VAR
v := 100;
CASE v OF
  1: out := 1;
  ELSE out := 99;
END_CASE;
`)
	if st.GetInt("out") != 99 {
		t.Errorf("out = %d, want 99", st.GetInt("out"))
	}
}

func TestForLoopAscendingSumsCorrectly(t *testing.T) {
	st, _ := run(t, `
VAR
  i : INT;
  total : INT;
END_VAR
total := 0;
FOR i := 1 TO 5 DO
  total := total + i;
END_FOR;
`)
	if st.GetInt("total") != 15 {
		t.Errorf("total = %d, want 15", st.GetInt("total"))
	}
}

func TestForLoopDescendingWithNegativeStep(t *testing.T) {
	st, _ := run(t, `
VAR
  i : INT;
  total : INT;
END_VAR
total := 0;
FOR i := 5 TO 1 BY -1 DO
  total := total + i;
END_FOR;
`)
	if st.GetInt("total") != 15 {
		t.Errorf("total = %d, want 15", st.GetInt("total"))
	}
}

func TestForLoopZeroStepRunsZeroIterations(t *testing.T) {
	st, _ := run(t, `
VAR
  i : INT;
  total : INT;
END_VAR
total := 0;
FOR i := 1 TO 5 BY 0 DO
  total := total + 1;
END_FOR;
`)
	if st.GetInt("total") != 0 {
		t.Errorf("total = %d, want 0 (zero step never iterates)", st.GetInt("total"))
	}
}

func TestForLoopStepSignContradictingDirectionRunsZeroIterations(t *testing.T) {
	st, _ := run(t, `
VAR
  i : INT;
  total : INT;
END_VAR
total := 0;
FOR i := 1 TO 5 BY -1 DO
  total := total + 1;
END_FOR;
`)
	if st.GetInt("total") != 0 {
		t.Errorf("total = %d, want 0 (descending step can never reach an ascending bound)", st.GetInt("total"))
	}
}

func TestWhileLoopNeverRunsWhenConditionStartsFalse(t *testing.T) {
	st, _ := run(t, `
VAR
  n : INT;
END_VAR
WHILE n > 0 DO
  n := n + 1;
END_WHILE;
`)
	if st.GetInt("n") != 0 {
		t.Errorf("n = %d, want 0", st.GetInt("n"))
	}
}

func TestRepeatLoopRunsAtLeastOnce(t *testing.T) {
	st, _ := run(t, `
VAR
  n : INT;
END_VAR
REPEAT
  n := n + 1;
UNTIL n >= 1
END_REPEAT;
`)
	if st.GetInt("n") != 1 {
		t.Errorf("n = %d, want 1", st.GetInt("n"))
	}
}

func TestFBCallMaterializesTimerOnFirstCall(t *testing.T) {
	st, _ := run(t, `
VAR
  StartInput : BOOL;
  T1 : TON;
END_VAR
StartInput := TRUE;
T1(IN := StartInput, PT := 500);
`)
	timer, ok := st.GetTimer("T1")
	if !ok {
		t.Fatal("T1 should be materialized after its first call")
	}
	if !timer.IN {
		t.Error("T1.IN should be TRUE")
	}
	if timer.PT != 500 {
		t.Errorf("T1.PT = %d, want 500", timer.PT)
	}
}

func TestFBCallOnUnknownInstanceIsNoop(t *testing.T) {
	st, _ := run(t, `
VAR
  a : INT;
END_VAR
GhostTimer(IN := TRUE);
a := 1;
`)
	if st.GetInt("a") != 1 {
		t.Error("a statement after an unknown FB instance call must still run")
	}
	if _, ok := st.GetTimer("GhostTimer"); ok {
		t.Error("an undeclared instance must never materialize storage")
	}
}

func TestFBCallCounterDispatchesToPulseCountUp(t *testing.T) {
	st, _ := run(t, `
VAR
  Counter : CTU;
END_VAR
Counter(CU := TRUE, R := FALSE, PV := 3);
`)
	c, ok := st.GetCounter("Counter")
	if !ok {
		t.Fatal("Counter should be materialized")
	}
	if c.CV != 1 {
		t.Errorf("CV = %d, want 1 after a single rising CU edge", c.CV)
	}
}
