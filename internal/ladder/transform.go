package ladder

import (
	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
	cerrors "github.com/cdilga/ladder-logic-editor-sub000/internal/errors"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/lexer"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/parser"
	"github.com/cdilga/ladder-logic-editor-sub000/internal/types"
)

// fbHandles names the input/output handles a box node exposes for one
// function-block kind, and which of each set is the "primary" handle used
// to wire the rail-facing contact / the rung-facing output when no more
// specific field is named.
type fbHandles struct {
	inputs, outputs       []string
	primaryIn, primaryOut string
}

var handlesByKind = map[string]fbHandles{
	"TON":    {inputs: []string{"IN", "PT"}, outputs: []string{"Q", "ET"}, primaryIn: "IN", primaryOut: "Q"},
	"TOF":    {inputs: []string{"IN", "PT"}, outputs: []string{"Q", "ET"}, primaryIn: "IN", primaryOut: "Q"},
	"TP":     {inputs: []string{"IN", "PT"}, outputs: []string{"Q", "ET"}, primaryIn: "IN", primaryOut: "Q"},
	"CTU":    {inputs: []string{"CU", "R", "PV"}, outputs: []string{"QU", "CV"}, primaryIn: "CU", primaryOut: "QU"},
	"CTD":    {inputs: []string{"CD", "LD", "PV"}, outputs: []string{"QD", "CV"}, primaryIn: "CD", primaryOut: "QD"},
	"CTUD":   {inputs: []string{"CU", "CD", "R", "LD", "PV"}, outputs: []string{"QU", "QD", "CV"}, primaryIn: "CU", primaryOut: "QU"},
	"R_TRIG": {inputs: []string{"CLK"}, outputs: []string{"Q"}, primaryIn: "CLK", primaryOut: "Q"},
	"F_TRIG": {inputs: []string{"CLK"}, outputs: []string{"Q"}, primaryIn: "CLK", primaryOut: "Q"},
	"SR":     {inputs: []string{"S1", "R"}, outputs: []string{"Q1"}, primaryIn: "S1", primaryOut: "Q1"},
	"RS":     {inputs: []string{"R1", "S"}, outputs: []string{"Q1"}, primaryIn: "R1", primaryOut: "Q1"},
}

// fbOutputField reports whether fieldName names one of kind's output
// handles, so the layout pass can recognize `Timer1.Q` as a read of an
// already-rendered box rather than an ordinary struct field.
func fbOutputField(kind, fieldName string) bool {
	for _, f := range handlesByKind[kind].outputs {
		if f == fieldName {
			return true
		}
	}
	return false
}

// transformer holds the mutable layout state threaded through one
// Transform() call: the node/edge accumulators, diagnostics, and the
// registry and FB-instance box lookup needed to recognize `Timer1.Q`
// access paths.
type transformer struct {
	reg     *types.Registry
	result  *Result
	gen     idGen
	row     int
	fbBoxes map[string]string // instance name -> box node ID
}

// Transform parses text and lays out every top-level assignment whose RHS
// is a boolean expression into a rung between a left and right power rail,
// per the component design. A syntactic parse error, a non-boolean
// assignment, or any statement kind the ladder view doesn't model becomes
// a warning and an "unsupported" node, never a hard failure.
func Transform(text string) *Result {
	program := parser.Parse(text)
	reg := types.Build(program)

	t := &transformer{
		reg:    reg,
		fbBoxes: map[string]string{},
		result: &Result{
			Success:       true,
			Intermediates: &Intermediates{AST: program.String()},
		},
	}

	for _, pe := range program.Errors {
		t.result.Errors = append(t.result.Errors, cerrors.Diagnostic{
			Message: pe.Message, Pos: pe.Pos, Severity: cerrors.SeverityError,
		})
	}

	for _, stmt := range program.Statements {
		t.transformStatement(stmt)
	}

	// A total parse failure — errors reported and nothing usable came out of
	// it — is the only case this transform treats as a hard failure; an
	// unsupported construct mid-program still renders everything else.
	if len(program.Errors) > 0 && len(program.Declarations) == 0 && len(program.Statements) == 0 {
		t.result.Success = false
	}

	return t.result
}

func (t *transformer) transformStatement(stmt ast.Statement) {
	row := t.row
	t.row++

	switch s := stmt.(type) {
	case *ast.FunctionBlockCall:
		t.transformFBCall(s, row)
	case *ast.Assignment:
		t.transformAssignment(s, row)
	default:
		t.warn(stmt.Pos(), "statement kind not representable in ladder view")
		t.addUnsupportedNode(row, stmt.TokenLiteral())
	}
}

func (t *transformer) warn(pos lexer.Position, msg string) {
	t.result.Warnings = append(t.result.Warnings, cerrors.Diagnostic{
		Message: msg, Pos: pos, Severity: cerrors.SeverityWarning,
	})
}

func (t *transformer) addUnsupportedNode(row int, label string) {
	id := nodeID(KindUnsupported, row, 0, 0)
	t.result.Nodes = append(t.result.Nodes, LadderNode{ID: id, Kind: KindUnsupported, Row: row, Label: label})
}

// transformFBCall renders a function-block invocation as a box between the
// left rail and a contact wired to its primary input, remembering the box
// by instance name so a later assignment reading Instance.Q can wire an
// edge straight from this box's output handle instead of drawing a
// redundant contact.
func (t *transformer) transformFBCall(call *ast.FunctionBlockCall, row int) {
	kind, ok := t.reg.FBKinds[call.Instance]
	if !ok {
		t.warn(call.Pos(), "unknown function-block instance: "+call.Instance)
		t.addUnsupportedNode(row, call.Instance)
		return
	}
	spec := handlesByKind[kind]
	boxID := fbNodeID(call.Instance)
	t.fbBoxes[call.Instance] = boxID

	railID := nodeID(KindRailLeft, row, 0, 0)
	t.result.Nodes = append(t.result.Nodes, LadderNode{ID: railID, Kind: KindRailLeft, Row: row, Col: 0})

	col := 1
	var prev string
	prev = railID
	for _, arg := range call.Args {
		if arg.Name != spec.primaryIn {
			continue
		}
		v, ok := arg.Value.(*ast.Variable)
		if !ok || len(v.Path) != 1 {
			continue
		}
		contactID := nodeID(KindContactNO, row, col, 0)
		t.result.Nodes = append(t.result.Nodes, LadderNode{ID: contactID, Kind: KindContactNO, Row: row, Col: col, Label: v.Path[0]})
		t.addEdge(prev, "", contactID, "")
		prev = contactID
		col++
	}

	boxCol := col
	t.result.Nodes = append(t.result.Nodes, LadderNode{
		ID: boxID, Kind: KindFunctionBox, Row: row, Col: boxCol,
		Label: call.Instance + " : " + kind, Inputs: spec.inputs, Outputs: spec.outputs,
	})
	t.addEdge(prev, "", boxID, spec.primaryIn)
}

// transformAssignment renders `lhs := rhs;` as one rung when both sides
// are boolean; any other assignment is an unsupported block, matching the
// spec's "rung count tracks source statement count" requirement.
func (t *transformer) transformAssignment(a *ast.Assignment, row int) {
	if len(a.Left.Path) != 1 || len(a.Left.Indices) != 0 {
		t.warn(a.Pos(), "only a plain boolean variable can be a coil")
		t.addUnsupportedNode(row, a.String())
		return
	}
	if tag, ok := t.reg.Tags[a.Left.Path[0]]; ok && tag != types.TagBool {
		t.warn(a.Pos(), "non-boolean assignment is not representable as a rung")
		t.addUnsupportedNode(row, a.String())
		return
	}

	leftRailID := nodeID(KindRailLeft, row, 0, 0)
	t.result.Nodes = append(t.result.Nodes, LadderNode{ID: leftRailID, Kind: KindRailLeft, Row: row, Col: 0})

	seg := t.layout(a.Value, row, 1, 0)
	for _, e := range seg.entries {
		t.addEdge(leftRailID, "", e.id, e.handle)
	}

	coilCol := seg.nextCol
	coilID := nodeID(KindCoil, row, coilCol, 0)
	t.result.Nodes = append(t.result.Nodes, LadderNode{ID: coilID, Kind: KindCoil, Row: row, Col: coilCol, Label: a.Left.Path[0]})
	for _, x := range seg.exits {
		t.addEdge(x.id, x.handle, coilID, "")
	}

	railCol := coilCol + 1
	rightRailID := nodeID(KindRailRight, row, railCol, 0)
	t.result.Nodes = append(t.result.Nodes, LadderNode{ID: rightRailID, Kind: KindRailRight, Row: row, Col: railCol})
	t.addEdge(coilID, "", rightRailID, "")
}

func (t *transformer) addEdge(source, sourceHandle, target, targetHandle string) {
	t.result.Edges = append(t.result.Edges, LadderEdge{
		ID: t.gen.edgeID(source, target), Source: source, SourceHandle: sourceHandle,
		Target: target, TargetHandle: targetHandle,
	})
}
