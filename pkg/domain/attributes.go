package domain

import "fmt"

// Attribute names an extended accessible attribute that can be queried on
// its own.
type Attribute string

// Extended attributes, in report order.
const (
	AttrDescription Attribute = "description"
	AttrPosition    Attribute = "position"
	AttrSize        Attribute = "size"
	AttrAttributes  Attribute = "attributes"
	AttrActions     Attribute = "actions"
	AttrText        Attribute = "text"
	AttrValue       Attribute = "value"
	AttrStates      Attribute = "states"
	AttrRelations   Attribute = "relations"
)

// AttrAll requests every extended attribute.
const AttrAll Attribute = "all"

// ExtendedAttributes lists the extended attributes in report order.
var ExtendedAttributes = []Attribute{
	AttrDescription,
	AttrPosition,
	AttrSize,
	AttrAttributes,
	AttrActions,
	AttrText,
	AttrValue,
	AttrStates,
	AttrRelations,
}

// ParseAttribute validates an attribute name, accepting "all".
func ParseAttribute(name string) (Attribute, error) {
	a := Attribute(name)
	if a == AttrAll {
		return a, nil
	}
	for _, known := range ExtendedAttributes {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: unknown attribute %q", ErrUsage, name)
}

// Query selects which extended attributes a device populates on fetched
// nodes. Basic attributes are always populated.
type Query struct {
	All        bool
	Attributes []Attribute
}

// QueryFor builds the query for a single attribute name or "all".
func QueryFor(a Attribute) Query {
	if a == AttrAll {
		return Query{All: true}
	}
	return Query{Attributes: []Attribute{a}}
}

// Includes reports whether the attribute should be populated.
func (q Query) Includes(a Attribute) bool {
	if q.All {
		return true
	}
	for _, x := range q.Attributes {
		if x == a {
			return true
		}
	}
	return false
}
