// Package types builds the type and constant registries that route
// assignments and reads to the correct typed storage table, and provides
// IEC 61131-3 TIME/DATE/TOD/DT literal parsing.
package types

import (
	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
)

// Tag is a variable's resolved storage category.
type Tag int

const (
	TagBool Tag = iota
	TagInt
	TagReal
	TagTime
	TagDate
	TagTimeOfDay
	TagDateAndTime
	TagString
	TagTimer
	TagCounter
	TagRTrig
	TagFTrig
	TagBistable
	TagArray
	TagEnum
	TagUnknown
)

func (t Tag) String() string {
	switch t {
	case TagBool:
		return "BOOL"
	case TagInt:
		return "INT"
	case TagReal:
		return "REAL"
	case TagTime:
		return "TIME"
	case TagDate:
		return "DATE"
	case TagTimeOfDay:
		return "TIME_OF_DAY"
	case TagDateAndTime:
		return "DATE_AND_TIME"
	case TagString:
		return "STRING"
	case TagTimer:
		return "TIMER"
	case TagCounter:
		return "COUNTER"
	case TagRTrig:
		return "R_TRIG"
	case TagFTrig:
		return "F_TRIG"
	case TagBistable:
		return "BISTABLE"
	case TagArray:
		return "ARRAY"
	case TagEnum:
		return "ENUM"
	default:
		return "UNKNOWN"
	}
}

// primitiveTags maps every primitive ST type name to its storage tag. The
// many integer widths (SINT..LINT, BYTE..LWORD) collapse onto one signed
// 64-bit table per the design note: a faithful reimplementation need not
// model hardware width, only truncation at assignment.
var primitiveTags = map[string]Tag{
	"BOOL": TagBool,

	"SINT": TagInt, "INT": TagInt, "DINT": TagInt, "LINT": TagInt,
	"USINT": TagInt, "UINT": TagInt, "UDINT": TagInt, "ULINT": TagInt,
	"BYTE": TagInt, "WORD": TagInt, "DWORD": TagInt, "LWORD": TagInt,

	"REAL": TagReal, "LREAL": TagReal,

	"TIME": TagTime,
	"DATE": TagDate,
	"TIME_OF_DAY": TagTimeOfDay, "TOD": TagTimeOfDay,
	"DATE_AND_TIME": TagDateAndTime, "DT": TagDateAndTime,

	"STRING": TagString, "WSTRING": TagString,

	"TON": TagTimer, "TOF": TagTimer, "TP": TagTimer,
	"CTU": TagCounter, "CTD": TagCounter, "CTUD": TagCounter,
	"R_TRIG": TagRTrig, "F_TRIG": TagFTrig,
	"SR": TagBistable, "RS": TagBistable,
}

// fbKindByName names the exact function-block runtime kind for instance
// types whose Tag only records the broader family (TIMER covers three
// distinct kinds, COUNTER three more).
var fbKindByName = map[string]string{
	"TON": "TON", "TOF": "TOF", "TP": "TP",
	"CTU": "CTU", "CTD": "CTD", "CTUD": "CTUD",
	"R_TRIG": "R_TRIG", "F_TRIG": "F_TRIG",
	"SR": "SR", "RS": "RS",
}

// ArrayMeta records a declared array's dimensions and element tag.
type ArrayMeta struct {
	Ranges     []ast.ArrayRange
	ElementTag Tag
}

// Registry is the pure-function result of walking a Program's declarations:
// name → storage tag, the subset that are FB instances (with exact kind),
// the subset that are CONSTANT, array metadata, and flattened enum member
// values.
type Registry struct {
	Tags        map[string]Tag
	FBKinds     map[string]string
	Constants   map[string]bool
	ArrayMeta   map[string]ArrayMeta
	StructTypes map[string]*ast.TypeDefinition
	EnumTypes   map[string]*ast.TypeDefinition
	EnumMembers map[string]int64
}

// Build walks program's declarations and produces its Registry. It never
// fails: an unresolvable type name is recorded as TagUnknown, consistent
// with the PLC error model of "set a flag, continue."
func Build(program *ast.Program) *Registry {
	reg := &Registry{
		Tags:        map[string]Tag{},
		FBKinds:     map[string]string{},
		Constants:   map[string]bool{},
		ArrayMeta:   map[string]ArrayMeta{},
		StructTypes: map[string]*ast.TypeDefinition{},
		EnumTypes:   map[string]*ast.TypeDefinition{},
		EnumMembers: map[string]int64{},
	}

	for _, d := range program.Declarations {
		td, ok := d.(*ast.TypeDefinition)
		if !ok {
			continue
		}
		if td.Kind == ast.TypeStruct {
			reg.StructTypes[td.Name] = td
		} else {
			reg.EnumTypes[td.Name] = td
			for _, e := range td.Enumerators {
				reg.EnumMembers[e.Name] = e.Value
			}
		}
	}

	for _, d := range program.Declarations {
		vb, ok := d.(*ast.VariableBlock)
		if !ok {
			continue
		}
		isConst := vb.Qualifier == ast.QualConstant
		for _, decl := range vb.Declarations {
			for _, name := range decl.Names {
				reg.registerVariable(name, decl.Type, isConst)
			}
		}
	}

	return reg
}

func (reg *Registry) registerVariable(name string, dt *ast.DataType, isConst bool) {
	if dt == nil {
		reg.Tags[name] = TagUnknown
		return
	}

	if dt.ArrayRanges != nil {
		reg.Tags[name] = TagArray
		reg.ArrayMeta[name] = ArrayMeta{Ranges: dt.ArrayRanges, ElementTag: reg.resolveScalarTag(dt.ElementType)}
		if isConst {
			reg.Constants[name] = true
		}
		return
	}

	upper := toUpperASCII(dt.Name)
	if tag, ok := primitiveTags[upper]; ok {
		reg.Tags[name] = tag
		if kind, ok2 := fbKindByName[upper]; ok2 {
			reg.FBKinds[name] = kind
		}
		if isConst {
			reg.Constants[name] = true
		}
		return
	}

	if std, ok := reg.StructTypes[dt.Name]; ok {
		reg.Tags[name] = TagUnknown
		for _, f := range std.Fields {
			reg.registerVariable(name+"."+f.Name, f.Type, isConst)
		}
		return
	}

	if _, ok := reg.EnumTypes[dt.Name]; ok {
		reg.Tags[name] = TagEnum
		if isConst {
			reg.Constants[name] = true
		}
		return
	}

	reg.Tags[name] = TagUnknown
}

func (reg *Registry) resolveScalarTag(dt *ast.DataType) Tag {
	if dt == nil {
		return TagUnknown
	}
	if tag, ok := primitiveTags[toUpperASCII(dt.Name)]; ok {
		return tag
	}
	if _, ok := reg.EnumTypes[dt.Name]; ok {
		return TagEnum
	}
	return TagUnknown
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
