package tree

import "fmt"

// Connector classifies a row's position among its siblings.
type Connector int

const (
	// OnlyChild marks a node without siblings.
	OnlyChild Connector = iota
	// FirstChild marks the first of several siblings.
	FirstChild
	// Sibling marks a sibling that is neither first nor last.
	Sibling
	// LastChild marks the last of several siblings.
	LastChild
)

var connectorNames = [...]string{
	OnlyChild:  "only",
	FirstChild: "first",
	Sibling:    "sibling",
	LastChild:  "last",
}

// String returns a short lowercase name ("only", "first", "sibling", "last").
func (c Connector) String() string {
	if c < 0 || int(c) >= len(connectorNames) {
		return fmt.Sprintf("Connector(%d)", int(c))
	}
	return connectorNames[c]
}

// Glyph returns the box-drawing character drawn in front of the row.
func (c Connector) Glyph() string {
	if c.HasNext() {
		return "├"
	}
	return "└"
}

// HasNext reports whether further siblings follow this row at its depth.
func (c Connector) HasNext() bool {
	return c == FirstChild || c == Sibling
}

// promote applies the one-shot correction made when a later sibling appears.
// Already-promoted kinds come back unchanged.
func (c Connector) promote() Connector {
	switch c {
	case OnlyChild:
		return FirstChild
	case LastChild:
		return Sibling
	default:
		return c
	}
}

// ParseConnector is the inverse of [Connector.String].
func ParseConnector(s string) (Connector, error) {
	for i, name := range connectorNames {
		if name == s {
			return Connector(i), nil
		}
	}
	return 0, fmt.Errorf("unknown connector %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Connector) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Connector) UnmarshalText(b []byte) error {
	v, err := ParseConnector(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
