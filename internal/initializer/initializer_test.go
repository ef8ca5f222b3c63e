package initializer_test

import (
	"testing"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/initializer"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/parser"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/store"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

func buildAndInit(t *testing.T, src string) (*store.Store, *types.Registry) {
	t.Helper()
	program := parser.Parse(src)
	if len(program.Errors) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, program.Errors)
	}
	reg := types.Build(program)
	st := store.New(100)
	initializer.Initialize(program, st, reg)
	return st, reg
}

func TestInitializeSeedsExplicitInitialValues(t *testing.T) {
	st, _ := buildAndInit(t, `
VAR
  flag : BOOL := TRUE;
  count : INT := 42;
  ratio : REAL := 3.5;
  name : STRING := 'hello';
END_VAR
`)
	if !st.GetBool("flag") {
		t.Error("flag should initialize to TRUE")
	}
	if st.GetInt("count") != 42 {
		t.Errorf("count = %d, want 42", st.GetInt("count"))
	}
	if st.GetReal("ratio") != 3.5 {
		t.Errorf("ratio = %v, want 3.5", st.GetReal("ratio"))
	}
	if st.GetString("name") != "hello" {
		t.Errorf("name = %q, want hello", st.GetString("name"))
	}
}

func TestInitializeDefaultsWithoutInitialExpr(t *testing.T) {
	st, _ := buildAndInit(t, `
VAR
  flag : BOOL;
  count : INT;
  label : STRING;
END_VAR
`)
	if st.GetBool("flag") != false {
		t.Error("flag should default to FALSE")
	}
	if st.GetInt("count") != 0 {
		t.Error("count should default to 0")
	}
	if st.GetString("label") != "" {
		t.Errorf("label = %q, want empty string, not the zero eval.Value's bool-false rendering", st.GetString("label"))
	}
}

func TestInitializeEvaluatesExpressionsIncludingEnumMembers(t *testing.T) {
	st, _ := buildAndInit(t, `
TYPE Color : (RED, GREEN, BLUE);
END_TYPE

VAR
  c : Color := GREEN;
  doubled : INT := 2 * 21;
END_VAR
`)
	if st.GetInt("c") != 1 {
		t.Errorf("c = %d, want 1 (GREEN's ordinal)", st.GetInt("c"))
	}
	if st.GetInt("doubled") != 42 {
		t.Errorf("doubled = %d, want 42", st.GetInt("doubled"))
	}
}

func TestInitializeSkipsVarExternal(t *testing.T) {
	st, _ := buildAndInit(t, `
VAR_EXTERNAL
  shared : INT := 99;
END_VAR
`)
	if st.GetInt("shared") != 0 {
		t.Errorf("VAR_EXTERNAL must not create its own storage, got %d", st.GetInt("shared"))
	}
}

func TestInitializeAllocatesArrays(t *testing.T) {
	st, _ := buildAndInit(t, `
VAR
  m : ARRAY[1..3] OF INT;
END_VAR
`)
	arr, ok := st.GetArray("m")
	if !ok {
		t.Fatal("array m was not allocated")
	}
	if len(arr.Values) != 3 {
		t.Errorf("array length = %d, want 3", len(arr.Values))
	}
	for i, v := range arr.Values {
		if v != 0 {
			t.Errorf("element %d = %v, want zeroed 0", i, v)
		}
	}
}

func TestInitializeLeavesFunctionBlockInstancesUnmaterialized(t *testing.T) {
	st, _ := buildAndInit(t, `
VAR
  T1 : TON;
END_VAR
`)
	if _, ok := st.GetTimer("T1"); ok {
		t.Error("T1 should not be materialized until first FB call, per lazy-instantiation contract")
	}
}

func TestInitializeStructFieldsGetOwnDefaults(t *testing.T) {
	st, _ := buildAndInit(t, `
TYPE Point : STRUCT
  X : INT;
  Y : INT;
END_STRUCT; END_TYPE

VAR
  p : Point;
END_VAR
`)
	if st.GetInt("p.X") != 0 || st.GetInt("p.Y") != 0 {
		t.Errorf("struct fields should default to 0, got X=%d Y=%d", st.GetInt("p.X"), st.GetInt("p.Y"))
	}
}
