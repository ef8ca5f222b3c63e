package types_test

import (
	"testing"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/parser"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

func buildRegistry(t *testing.T, src string) *types.Registry {
	t.Helper()
	program := parser.Parse(src)
	if len(program.Errors) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, program.Errors)
	}
	return types.Build(program)
}

func TestRegistryCollapsesIntegerWidthsToOneTag(t *testing.T) {
	reg := buildRegistry(t, `
VAR
  a : SINT;
  b : DINT;
  c : USINT;
  d : WORD;
  e : LWORD;
END_VAR
`)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		if reg.Tags[name] != types.TagInt {
			t.Errorf("%s tag = %s, want INT (all integer widths collapse)", name, reg.Tags[name])
		}
	}
}

func TestRegistryFlattensStructFieldsToDotPaths(t *testing.T) {
	reg := buildRegistry(t, `
TYPE Point : STRUCT
  X : INT;
  Y : INT;
END_STRUCT; END_TYPE

VAR
  p : Point;
END_VAR
`)
	if tag, ok := reg.Tags["p.X"]; !ok || tag != types.TagInt {
		t.Errorf("p.X tag = %s (ok=%v), want INT", tag, ok)
	}
	if tag, ok := reg.Tags["p.Y"]; !ok || tag != types.TagInt {
		t.Errorf("p.Y tag = %s (ok=%v), want INT", tag, ok)
	}
	// the struct-typed name itself gets no storage of its own
	if reg.Tags["p"] != types.TagUnknown {
		t.Errorf("p tag = %s, want UNKNOWN (struct instances have no scalar storage)", reg.Tags["p"])
	}
}

func TestRegistryEnumAutoIncrementAndExplicitValues(t *testing.T) {
	reg := buildRegistry(t, `
TYPE Color : (RED, GREEN, BLUE := 10, YELLOW);
END_TYPE

VAR
  c : Color;
END_VAR
`)
	want := map[string]int64{"RED": 0, "GREEN": 1, "BLUE": 10, "YELLOW": 11}
	for name, v := range want {
		if got := reg.EnumMembers[name]; got != v {
			t.Errorf("%s = %d, want %d", name, got, v)
		}
	}
	if reg.Tags["c"] != types.TagEnum {
		t.Errorf("c tag = %s, want ENUM", reg.Tags["c"])
	}
}

func TestRegistryArrayMetadataAndElementTag(t *testing.T) {
	reg := buildRegistry(t, `
VAR
  m : ARRAY[1..2,1..3] OF REAL;
END_VAR
`)
	if reg.Tags["m"] != types.TagArray {
		t.Fatalf("m tag = %s, want ARRAY", reg.Tags["m"])
	}
	meta, ok := reg.ArrayMeta["m"]
	if !ok {
		t.Fatal("no ArrayMeta recorded for m")
	}
	if len(meta.Ranges) != 2 || meta.Ranges[0].Start != 1 || meta.Ranges[0].End != 2 ||
		meta.Ranges[1].Start != 1 || meta.Ranges[1].End != 3 {
		t.Errorf("unexpected ranges: %+v", meta.Ranges)
	}
	if meta.ElementTag != types.TagReal {
		t.Errorf("element tag = %s, want REAL", meta.ElementTag)
	}
}

func TestRegistryFBKindsAndConstants(t *testing.T) {
	reg := buildRegistry(t, `
VAR
  T1 : TON;
  C1 : CTUD;
END_VAR
CONSTANT
  MAX : INT := 100;
END_VAR
`)
	if reg.FBKinds["T1"] != "TON" {
		t.Errorf("T1 FB kind = %s, want TON", reg.FBKinds["T1"])
	}
	if reg.FBKinds["C1"] != "CTUD" {
		t.Errorf("C1 FB kind = %s, want CTUD", reg.FBKinds["C1"])
	}
	if !reg.Constants["MAX"] {
		t.Error("MAX should be recorded as a CONSTANT")
	}
	if reg.Constants["T1"] {
		t.Error("T1 is not a constant")
	}
}

func TestRegistryUnknownTypeNameIsTagUnknownNotAnError(t *testing.T) {
	reg := buildRegistry(t, `
VAR
  x : SomeTypeThatWasNeverDeclared;
END_VAR
`)
	if reg.Tags["x"] != types.TagUnknown {
		t.Errorf("x tag = %s, want UNKNOWN", reg.Tags["x"])
	}
}

func TestRegistryTypeNamesAreCaseInsensitive(t *testing.T) {
	reg := buildRegistry(t, `
VAR
  a : int;
  b : Bool;
END_VAR
`)
	if reg.Tags["a"] != types.TagInt {
		t.Errorf("lowercase 'int' tag = %s, want INT", reg.Tags["a"])
	}
	if reg.Tags["b"] != types.TagBool {
		t.Errorf("mixed-case 'Bool' tag = %s, want BOOL", reg.Tags["b"])
	}
}
