package stroke

import "github.com/gogpu/glyph"

// Item is an element of a knot script.
type Item interface {
	isItem()
}

// Action is a deferred setup callback. Leading actions configure the
// context before any knot is placed; a knot's action runs right after that
// knot is placed.
type Action func(*Context)

func (Action) isItem() {}

// chain combines actions into one, skipping nils.
func chain(actions []Action) Action {
	var live []Action
	for _, a := range actions {
		if a != nil {
			live = append(live, a)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(c *Context) {
		for _, a := range live {
			a(c)
		}
	}
}

// Control is a concrete knot.
type Control struct {
	Type   glyph.PointType
	X, Y   float64
	Action Action
}

func (Control) isItem() {}

func (k Control) knot() glyph.Knot {
	return glyph.Knot{Type: k.Type, X: k.X, Y: k.Y}
}

// KnotFunc constructs a knot of a fixed type.
type KnotFunc func(x, y float64, actions ...Action) Control

func knotOf(t glyph.PointType) KnotFunc {
	return func(x, y float64, actions ...Action) Control {
		return Control{Type: t, X: x, Y: y, Action: chain(actions)}
	}
}

var (
	// G4 places a curvature-continuous knot.
	G4 = knotOf(glyph.G4)
	// G2 places a tangent-continuous knot.
	G2 = knotOf(glyph.G2)
	// Corner places a knot without continuity constraints.
	Corner = knotOf(glyph.Corner)
	// Flat places a knot that starts a straight edge.
	Flat = knotOf(glyph.Left)
	// Curl places a knot that ends a straight edge.
	Curl = knotOf(glyph.Right)
)

// Marker terminates a script.
type Marker struct {
	Closed bool
}

func (Marker) isItem() {}

// Close ends a closed path.
func Close() Marker { return Marker{Closed: true} }

// End ends an open path.
func End() Marker { return Marker{} }

// Group is a nested list of items. Groups are flattened in place.
type Group []Item

func (Group) isItem() {}

// Adhesion offsets, along the direction of travel, for the two knots a
// directional emitter places.
var adhesions = [3][2]float64{
	{0, 0.01},       // start
	{-0.005, 0.005}, // mid
	{-0.01, 0},      // end
}

// KnotPair emits two knots a tiny distance apart along a direction, so the
// spline passes the point heading that way.
type KnotPair struct {
	first, second KnotFunc
	dir           glyph.Vec2
}

func (p KnotPair) emit(a int, x, y float64, actions []Action) Group {
	l, r := adhesions[a][0], adhesions[a][1]
	return Group{
		p.first(x+p.dir.X*l, y+p.dir.Y*l, actions...),
		p.second(x+p.dir.X*r, y+p.dir.Y*r, actions...),
	}
}

// Start places the pair so that (x, y) is where the direction begins.
func (p KnotPair) Start(x, y float64, actions ...Action) Group { return p.emit(0, x, y, actions) }

// Mid centers the pair on (x, y).
func (p KnotPair) Mid(x, y float64, actions ...Action) Group { return p.emit(1, x, y, actions) }

// End places the pair so that (x, y) is where the direction ends.
func (p KnotPair) End(x, y float64, actions ...Action) Group { return p.emit(2, x, y, actions) }

// Directional holds knot pairs for the four cardinal directions.
type Directional struct {
	Up, Down, Left, Right KnotPair
}

func directional(first, second KnotFunc) Directional {
	pair := func(dx, dy float64) KnotPair {
		return KnotPair{first: first, second: second, dir: glyph.V2(dx, dy)}
	}
	return Directional{
		Up:    pair(0, 1),
		Down:  pair(0, -1),
		Left:  pair(-1, 0),
		Right: pair(1, 0),
	}
}

// Directional knot tables.
var (
	SmoothG4 = directional(G4, G4)
	SmoothG2 = directional(G2, G2)
	Corners  = directional(Corner, Corner)
	Straight = directional(Flat, Curl)
)
