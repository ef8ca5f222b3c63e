package ast

import (
	"strings"

	"github.com/cdilga/ladder-logic-editor-sub000/internal/lexer"
)

// Qualifier is the kind of a variable block.
type Qualifier int

const (
	QualVar Qualifier = iota
	QualVarInput
	QualVarOutput
	QualVarInOut
	QualVarGlobal
	QualVarExternal
	QualConstant
)

func (q Qualifier) String() string {
	switch q {
	case QualVarInput:
		return "VAR_INPUT"
	case QualVarOutput:
		return "VAR_OUTPUT"
	case QualVarInOut:
		return "VAR_IN_OUT"
	case QualVarGlobal:
		return "VAR_GLOBAL"
	case QualVarExternal:
		return "VAR_EXTERNAL"
	case QualConstant:
		return "CONSTANT"
	default:
		return "VAR"
	}
}

// ArrayRange is one dimension's declared bounds, e.g. the "1..10" in
// ARRAY[1..10] OF INT.
type ArrayRange struct {
	Start int64
	End   int64
}

// DataType is a variable's declared type: a primitive name ("INT", "BOOL",
// "TON", ...), a reference to a user TYPE, or an array of either.
type DataType struct {
	Token       lexer.Token
	Name        string       // primitive or user-type name
	ArrayRanges []ArrayRange // non-nil only for ARRAY types
	ElementType *DataType    // element type when ArrayRanges is set
}

func (d *DataType) String() string {
	if d.ArrayRanges != nil {
		dims := make([]string, len(d.ArrayRanges))
		for i, r := range d.ArrayRanges {
			dims[i] = itoa(r.Start) + ".." + itoa(r.End)
		}
		elem := ""
		if d.ElementType != nil {
			elem = d.ElementType.String()
		}
		return "ARRAY[" + strings.Join(dims, ",") + "] OF " + elem
	}
	return d.Name
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var b []byte
	for v > 0 {
		b = append([]byte{byte('0' + v%10)}, b...)
		v /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// VariableDecl declares one or more names sharing a type, with an optional
// AT-address and an optional initial-value expression.
type VariableDecl struct {
	Token       lexer.Token
	Names       []string
	Type        *DataType
	AtAddress   string // opaque; "" if absent
	InitialExpr Expression
}

func (vd *VariableDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VariableDecl) Pos() lexer.Position  { return vd.Token.Pos }
func (vd *VariableDecl) String() string {
	s := strings.Join(vd.Names, ", ") + " : " + vd.Type.String()
	if vd.AtAddress != "" {
		s += " AT " + vd.AtAddress
	}
	if vd.InitialExpr != nil {
		s += " := " + vd.InitialExpr.String()
	}
	return s + ";"
}

// VariableBlock is one VAR...END_VAR (or VAR_INPUT, CONSTANT, ...) block.
type VariableBlock struct {
	Token        lexer.Token
	Qualifier    Qualifier
	Declarations []*VariableDecl
}

func (vb *VariableBlock) declarationNode()       {}
func (vb *VariableBlock) TokenLiteral() string   { return vb.Token.Literal }
func (vb *VariableBlock) Pos() lexer.Position    { return vb.Token.Pos }
func (vb *VariableBlock) String() string {
	var b strings.Builder
	b.WriteString(vb.Qualifier.String())
	b.WriteString("\n")
	for _, d := range vb.Declarations {
		b.WriteString("  ")
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	b.WriteString("END_VAR")
	return b.String()
}

// TypeKind is the kind of a user TYPE declaration.
type TypeKind int

const (
	TypeStruct TypeKind = iota
	TypeEnum
)

// StructField is one field of a STRUCT type definition.
type StructField struct {
	Name string
	Type *DataType
}

// Enumerator is one member of an enumerated TYPE. Value holds the member's
// effective ordinal: explicit if ExplicitValue is true, otherwise the
// previous member's value plus one (auto-increment), matching IEC 61131-3's
// enum semantics (A, B := 10, C ⇒ A=0, B=10, C=11).
type Enumerator struct {
	Name          string
	Value         int64
	ExplicitValue bool
}

// TypeDefinition is a TYPE name : STRUCT ... END_STRUCT; END_TYPE or a
// TYPE name : (A, B := 10, C); END_TYPE declaration.
type TypeDefinition struct {
	Token       lexer.Token
	Name        string
	Kind        TypeKind
	Fields      []StructField // TypeStruct
	Enumerators []Enumerator  // TypeEnum
}

func (td *TypeDefinition) declarationNode()     {}
func (td *TypeDefinition) TokenLiteral() string { return td.Token.Literal }
func (td *TypeDefinition) Pos() lexer.Position  { return td.Token.Pos }
func (td *TypeDefinition) String() string {
	if td.Kind == TypeEnum {
		names := make([]string, len(td.Enumerators))
		for i, e := range td.Enumerators {
			names[i] = e.Name
		}
		return "TYPE " + td.Name + " : (" + strings.Join(names, ", ") + "); END_TYPE"
	}
	var b strings.Builder
	b.WriteString("TYPE ")
	b.WriteString(td.Name)
	b.WriteString(" : STRUCT\n")
	for _, f := range td.Fields {
		b.WriteString("  " + f.Name + " : " + f.Type.String() + ";\n")
	}
	b.WriteString("END_STRUCT; END_TYPE")
	return b.String()
}
