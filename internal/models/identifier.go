package models

import (
	"strconv"
	"strings"
)

// IdentifierKind is the addressing scheme a public page request uses
type IdentifierKind string

const (
	IdentifierID   IdentifierKind = "id"
	IdentifierSlug IdentifierKind = "slug"
	IdentifierNone IdentifierKind = "none"
)

// PageIdentifier is the result of resolving a public request path to an
// event address. Exactly one of ID or Slug is meaningful depending on Kind.
type PageIdentifier struct {
	Kind IdentifierKind
	ID   int
	Slug string
}

// ResolvePageIdentifier determines which event a public path addresses.
// The legacy routes /casamento/{id} and /evento/{id} carry a numeric id;
// any other non-empty trailing segment is treated as a slug, to be matched
// against both the slug and slug_premium columns by the caller.
func ResolvePageIdentifier(path string) PageIdentifier {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return PageIdentifier{Kind: IdentifierNone}
	}

	parts := strings.Split(trimmed, "/")
	last := parts[0]
	if len(parts) > 1 {
		last = parts[len(parts)-1]
	}

	if parts[0] == "casamento" || parts[0] == "evento" {
		if id, err := strconv.Atoi(last); err == nil {
			return PageIdentifier{Kind: IdentifierID, ID: id}
		}
	}

	if last == "" {
		return PageIdentifier{Kind: IdentifierNone}
	}
	return PageIdentifier{Kind: IdentifierSlug, Slug: last}
}
