package models

import "testing"

func TestResolvePageIdentifier(t *testing.T) {
	tests := []struct {
		name string
		path string
		want PageIdentifier
	}{
		{
			name: "legacy casamento id route",
			path: "/casamento/42",
			want: PageIdentifier{Kind: IdentifierID, ID: 42},
		},
		{
			name: "legacy evento id route",
			path: "/evento/7",
			want: PageIdentifier{Kind: IdentifierID, ID: 7},
		},
		{
			name: "plain slug",
			path: "/joao-maria",
			want: PageIdentifier{Kind: IdentifierSlug, Slug: "joao-maria"},
		},
		{
			name: "premium slug is still just a slug here",
			path: "/joao-maria-vip",
			want: PageIdentifier{Kind: IdentifierSlug, Slug: "joao-maria-vip"},
		},
		{
			name: "casamento with non-numeric tail falls back to slug",
			path: "/casamento/abc",
			want: PageIdentifier{Kind: IdentifierSlug, Slug: "abc"},
		},
		{
			name: "numeric-looking bare segment is a slug",
			path: "/123",
			want: PageIdentifier{Kind: IdentifierSlug, Slug: "123"},
		},
		{
			name: "root path has no identifier",
			path: "/",
			want: PageIdentifier{Kind: IdentifierNone},
		},
		{
			name: "empty path has no identifier",
			path: "",
			want: PageIdentifier{Kind: IdentifierNone},
		},
		{
			name: "trailing slash is tolerated",
			path: "/joao-maria/",
			want: PageIdentifier{Kind: IdentifierSlug, Slug: "joao-maria"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePageIdentifier(tt.path)
			if got != tt.want {
				t.Errorf("ResolvePageIdentifier(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}
