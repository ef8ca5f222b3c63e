package ladder

import (
	"github.com/cdilga/ladder-logic-editor-sub000/internal/ast"
)

// endpoint is one edge attachment point produced by laying out a
// sub-expression: a node ID plus the optional named handle (set only when
// the node is a function-block box).
type endpoint struct {
	id     string
	handle string
}

// segment is the result of laying out one boolean sub-expression: the
// entry points that the preceding stage must wire into, the exit points
// that the following stage wires from, and the next free column.
type segment struct {
	entries []endpoint
	exits   []endpoint
	nextCol int
}

// layout recursively lays out expr starting at column col on row, AND
// becoming series placement and OR becoming parallel placement with
// branch-join nodes, exactly as the component design specifies. Anything
// that isn't a contact, a NOT, an AND, an OR, or a parenthesized version of
// one of those becomes a single "unsupported" leaf so the rest of the rung
// still lays out.
func (t *transformer) layout(expr ast.Expression, row, col, lane int) segment {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return t.layout(e.Inner, row, col, lane)

	case *ast.UnaryExpr:
		if e.Operator == ast.OpNot {
			if v, ok := e.Operand.(*ast.Variable); ok {
				return t.contactLeaf(v, row, col, lane, true)
			}
		}
		return t.unsupportedLeaf(expr, row, col, lane)

	case *ast.Variable:
		return t.contactLeaf(e, row, col, lane, false)

	case *ast.BinaryExpr:
		switch e.Operator {
		case ast.OpAnd:
			return t.layoutSeries(e.Left, e.Right, row, col, lane)
		case ast.OpOr:
			return t.layoutParallel(e.Left, e.Right, row, col, lane)
		}
		return t.unsupportedLeaf(expr, row, col, lane)

	default:
		return t.unsupportedLeaf(expr, row, col, lane)
	}
}

// layoutSeries wires left's exits into right's entries and advances the
// column past both, modeling an AND as contacts placed one after another
// along the rung.
func (t *transformer) layoutSeries(left, right ast.Expression, row, col, lane int) segment {
	l := t.layout(left, row, col, lane)
	r := t.layout(right, row, l.nextCol, lane)
	for _, lx := range l.exits {
		for _, re := range r.entries {
			t.addEdge(lx.id, lx.handle, re.id, re.handle)
		}
	}
	return segment{entries: l.entries, exits: r.exits, nextCol: r.nextCol}
}

// layoutParallel renders an OR as two branches stacked on separate lanes
// between a join node before and a join node after, exactly the "parallel
// placement with branch join nodes" the component design calls for.
func (t *transformer) layoutParallel(left, right ast.Expression, row, col, lane int) segment {
	beforeID := nodeID(KindJunction, row, col, lane)
	t.result.Nodes = append(t.result.Nodes, LadderNode{ID: beforeID, Kind: KindJunction, Row: row, Col: col, Lane: lane})

	l := t.layout(left, row, col+1, lane)
	r := t.layout(right, row, col+1, lane+1)
	nextCol := l.nextCol
	if r.nextCol > nextCol {
		nextCol = r.nextCol
	}

	for _, e := range l.entries {
		t.addEdge(beforeID, "", e.id, e.handle)
	}
	for _, e := range r.entries {
		t.addEdge(beforeID, "", e.id, e.handle)
	}

	afterID := nodeID(KindJunction, row, nextCol, lane)
	t.result.Nodes = append(t.result.Nodes, LadderNode{ID: afterID, Kind: KindJunction, Row: row, Col: nextCol, Lane: lane})
	for _, x := range l.exits {
		t.addEdge(x.id, x.handle, afterID, "")
	}
	for _, x := range r.exits {
		t.addEdge(x.id, x.handle, afterID, "")
	}

	return segment{entries: []endpoint{{id: beforeID}}, exits: []endpoint{{id: afterID}}, nextCol: nextCol + 1}
}

// contactLeaf renders a plain boolean variable as a contact — or, if the
// variable's access path names a field already produced by a
// function-block box earlier in the program (e.g. `T1.Q`), wires straight
// to that box's output handle instead of drawing a redundant contact.
func (t *transformer) contactLeaf(v *ast.Variable, row, col, lane int, negate bool) segment {
	if len(v.Path) == 2 {
		if boxID, ok := t.fbBoxes[v.Path[0]]; ok {
			if kind := t.reg.FBKinds[v.Path[0]]; fbOutputField(kind, v.Path[1]) {
				ep := endpoint{id: boxID, handle: v.Path[1]}
				return segment{entries: []endpoint{ep}, exits: []endpoint{ep}, nextCol: col}
			}
		}
	}

	kind := KindContactNO
	if negate {
		kind = KindContactNC
	}
	label := v.Path[0]
	for _, p := range v.Path[1:] {
		label += "." + p
	}
	id := nodeID(kind, row, col, lane)
	t.result.Nodes = append(t.result.Nodes, LadderNode{ID: id, Kind: kind, Row: row, Col: col, Lane: lane, Label: label})
	ep := endpoint{id: id}
	return segment{entries: []endpoint{ep}, exits: []endpoint{ep}, nextCol: col + 1}
}

// unsupportedLeaf renders a sub-expression the ladder view can't model
// (comparison, arithmetic, a function call, ...) as a single block node
// carrying a warning, rather than dropping it and silently shortening the
// rung.
func (t *transformer) unsupportedLeaf(expr ast.Expression, row, col, lane int) segment {
	t.warn(expr.Pos(), "expression not representable as a ladder contact: "+expr.String())
	id := nodeID(KindUnsupported, row, col, lane)
	t.result.Nodes = append(t.result.Nodes, LadderNode{ID: id, Kind: KindUnsupported, Row: row, Col: col, Lane: lane, Label: expr.String()})
	ep := endpoint{id: id}
	return segment{entries: []endpoint{ep}, exits: []endpoint{ep}, nextCol: col + 1}
}
