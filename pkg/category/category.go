// Package category defines the fixed set of todo lists.
package category

import (
	"fmt"
	"strings"
)

// ID identifies one of the fixed todo lists.
type ID string

const (
	// Work holds work todos.
	Work ID = "work"
	// Home holds household todos.
	Home ID = "home"
	// MaybeLater parks things that might happen some day.
	MaybeLater ID = "maybe-later"
	// Ideas collects loose ideas.
	Ideas ID = "ideas"
	// Errands holds groceries and small errands.
	Errands ID = "errands"
	// Shopping holds things to buy.
	Shopping ID = "shopping"
	// Culture holds books, films and shows.
	Culture ID = "culture"
)

// Config carries the display attributes of a category.
type Config struct {
	Label string
	Color string
}

var configs = map[ID]Config{
	Work:       {Label: "To Do (Work)", Color: "#3b82f6"},
	Home:       {Label: "To Do (Home)", Color: "#0ea5e9"},
	MaybeLater: {Label: "Maybe / Later", Color: "#f59e0b"},
	Ideas:      {Label: "Ideas", Color: "#8b5cf6"},
	Errands:    {Label: "Errands", Color: "#22c55e"},
	Shopping:   {Label: "Shopping", Color: "#ec4899"},
	Culture:    {Label: "Culture", Color: "#6366f1"},
}

// All returns the categories in display order.
func All() []ID {
	return []ID{
		Work,
		Home,
		MaybeLater,
		Ideas,
		Errands,
		Shopping,
		Culture,
	}
}

// Parse converts a string to an ID or returns an error for unknown values.
func Parse(raw string) (ID, error) {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	if id.Valid() {
		return id, nil
	}
	return "", fmt.Errorf("category: unknown category %q", raw)
}

// Valid reports whether id is one of the fixed categories.
func (id ID) Valid() bool {
	_, ok := configs[id]
	return ok
}

// Label returns the display label, or the raw id for unknown values.
func (id ID) Label() string {
	if c, ok := configs[id]; ok {
		return c.Label
	}
	return string(id)
}

// Color returns the hex display color.
func (id ID) Color() string {
	return configs[id].Color
}

func (id ID) String() string {
	return string(id)
}
