package domain

import "strings"

// Item is a single entry on the board
type Item struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Stack is a group of items occupying one board slot. A lone item is a
// stack of one.
type Stack struct {
	Items []Item `toml:"items"`
}

// NewStack returns a stack holding the given items
func NewStack(items ...Item) Stack {
	return Stack{Items: append([]Item(nil), items...)}
}

// IsSingle reports whether the stack holds exactly one item
func (s Stack) IsSingle() bool {
	return len(s.Items) == 1
}

// Len returns the number of items in the stack
func (s Stack) Len() int {
	return len(s.Items)
}

// Title is the name of the top item, or "" for an empty stack
func (s Stack) Title() string {
	if len(s.Items) == 0 {
		return ""
	}
	return s.Items[0].Name
}

// Names joins the item names with sep
func (s Stack) Names(sep string) string {
	names := make([]string, len(s.Items))
	for i, it := range s.Items {
		names[i] = it.Name
	}
	return strings.Join(names, sep)
}

// Clone returns a deep copy of the stack
func (s Stack) Clone() Stack {
	return NewStack(s.Items...)
}
