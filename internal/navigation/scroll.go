package navigation

import "strings"

// Position is a document scroll offset.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ScrollKind says which scroll rule applied to a navigation.
type ScrollKind string

const (
	ScrollRestore ScrollKind = "restore"
	ScrollAnchor  ScrollKind = "anchor"
	ScrollTop     ScrollKind = "top"
)

// ScrollBehavior mirrors the browser's scroll behaviour option.
type ScrollBehavior string

const (
	BehaviorAuto   ScrollBehavior = "auto"
	BehaviorSmooth ScrollBehavior = "smooth"
)

// ScrollTarget is where the document should scroll after a navigation.
// Position is set for ScrollRestore and ScrollTop, Anchor for ScrollAnchor.
type ScrollTarget struct {
	Kind     ScrollKind     `json:"kind"`
	Position Position       `json:"position"`
	Anchor   string         `json:"anchor,omitempty"`
	Behavior ScrollBehavior `json:"behavior"`
}

// ScrollFor picks the scroll target for a navigation. A saved position wins
// and is restored exactly; otherwise a hash scrolls smoothly to the element
// with that id; otherwise the document scrolls smoothly to the top.
func ScrollFor(saved *Position, hash string) ScrollTarget {
	if saved != nil {
		return ScrollTarget{Kind: ScrollRestore, Position: *saved, Behavior: BehaviorAuto}
	}
	if id := anchorID(hash); id != "" {
		return ScrollTarget{Kind: ScrollAnchor, Anchor: id, Behavior: BehaviorSmooth}
	}
	return ScrollTarget{Kind: ScrollTop, Behavior: BehaviorSmooth}
}

func anchorID(hash string) string {
	return strings.TrimPrefix(strings.TrimSpace(hash), "#")
}
