package component

// Category separates palette templates from grid-resident instances.
type Category uint8

const (
	CategoryTemplate Category = iota + 1
	CategoryPlaced
)

func (c Category) String() string {
	switch c {
	case CategoryTemplate:
		return "template"
	case CategoryPlaced:
		return "placed"
	default:
		return "unknown"
	}
}

var CategoryComponent = NewComponent[Category]()
