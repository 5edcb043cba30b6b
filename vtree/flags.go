package vtree

// ShapeFlag classifies a Node's content kind and its role (§3).
type ShapeFlag uint16

const (
	ShapeElement ShapeFlag = 1 << iota
	ShapeFunctional
	ShapeStateful
	ShapeTextChildren
	ShapeArrayChildren
	ShapeSlotChildren
	ShapeTeleport
	ShapeSuspense
	ShapeShouldKeepAlive
	ShapeKeptAlive
)

func (f ShapeFlag) Has(bit ShapeFlag) bool { return f&bit != 0 }

// PatchFlag advertises what changed since a Node's previous sibling-in-time
// (§3); the compiler (out of scope here) would normally emit these, but
// they can equally be set by hand when constructing a Node directly.
type PatchFlag int32

const (
	PatchText PatchFlag = 1 << iota
	PatchClass
	PatchStyle
	PatchProps
	PatchFullProps
	PatchStableFragment
	PatchKeyedFragment
	PatchUnkeyedFragment
	PatchNeedHydration
	PatchBail
	PatchDevRootFragment
)

func (f PatchFlag) Has(bit PatchFlag) bool { return f&bit != 0 }
