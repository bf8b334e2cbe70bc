package ahocorasick

import "github.com/corey/argsel/internal/ports"

// enclosing is a call context that only knows its enclosing declarations.
type enclosing []string

func (e enclosing) IsAssignable(_, _ ports.TypeRef) bool { return true }
func (e enclosing) EnclosingNames() []string             { return e }
func (e enclosing) SiblingArguments() [][]string         { return nil }
func (e enclosing) ArgumentComments(int) []ports.Comment { return nil }
