package crawl_test

import (
	"testing"

	"github.com/fwojciec/docassist"
	"github.com/fwojciec/docassist/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNormalizer(t *testing.T, policy docassist.ExternalLinkPolicy) *crawl.LinkNormalizer {
	t.Helper()
	profile := docassist.DefaultSiteProfile()
	profile.ExternalLinks = policy
	n, err := crawl.NewLinkNormalizer("https://ex.com/a", profile)
	require.NoError(t, err)
	return n
}

func TestNewLinkNormalizer(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links against the seed origin", func(t *testing.T) {
		t.Parallel()

		n := newNormalizer(t, docassist.ExternalRewrite)

		got, ok := n.Normalize(docassist.LinkRef{Href: "guide", Text: "Guide"})
		require.True(t, ok)
		assert.Equal(t, "https://ex.com/guide", got)
	})

	t.Run("rejects invalid seed", func(t *testing.T) {
		t.Parallel()

		for _, seed := range []string{"", "ex.com/a", "ftp://ex.com", "://bad"} {
			_, err := crawl.NewLinkNormalizer(seed, docassist.DefaultSiteProfile())
			assert.Equal(t, docassist.EINVALID, docassist.ErrorCode(err), seed)
		}
	})

	t.Run("rejects invalid profile", func(t *testing.T) {
		t.Parallel()

		profile := docassist.DefaultSiteProfile()
		profile.ExternalLinks = "sometimes"

		_, err := crawl.NewLinkNormalizer("https://ex.com", profile)

		assert.Equal(t, docassist.EINVALID, docassist.ErrorCode(err))
	})
}

func TestLinkNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy docassist.ExternalLinkPolicy
		link   docassist.LinkRef
		want   string
		ok     bool
	}{
		{
			name: "same host is returned unchanged",
			link: docassist.LinkRef{Href: "https://ex.com/b", Text: "B"},
			want: "https://ex.com/b", ok: true,
		},
		{
			name: "same host match ignores case",
			link: docassist.LinkRef{Href: "https://EX.com/b", Text: "B"},
			want: "https://EX.com/b", ok: true,
		},
		{
			name: "empty text is rejected",
			link: docassist.LinkRef{Href: "https://ex.com/b", Text: ""},
		},
		{
			name: "whitespace text is rejected",
			link: docassist.LinkRef{Href: "https://ex.com/b", Text: " \n\t"},
		},
		{
			name: "empty href is rejected",
			link: docassist.LinkRef{Href: "", Text: "B"},
		},
		{
			name: "cookie link is rejected",
			link: docassist.LinkRef{Href: "https://ex.com/cookie-policy", Text: "Cookies"},
		},
		{
			name: "cookie marker matches case-insensitively",
			link: docassist.LinkRef{Href: "https://ex.com/Cookie", Text: "Cookies"},
		},
		{
			name: "mailto is rejected",
			link: docassist.LinkRef{Href: "mailto:help@ex.com", Text: "Mail"},
		},
		{
			name: "javascript is rejected",
			link: docassist.LinkRef{Href: "javascript:void(0)", Text: "Menu"},
		},
		{
			name:   "external host is rewritten onto the seed origin",
			policy: docassist.ExternalRewrite,
			link:   docassist.LinkRef{Href: "https://other.com/x", Text: "X"},
			want:   "https://ex.com/x", ok: true,
		},
		{
			name:   "rewrite keeps query and fragment",
			policy: docassist.ExternalRewrite,
			link:   docassist.LinkRef{Href: "https://other.com/x?y=1#z", Text: "X"},
			want:   "https://ex.com/x?y=1#z", ok: true,
		},
		{
			name:   "root-relative path is joined to the origin",
			policy: docassist.ExternalRewrite,
			link:   docassist.LinkRef{Href: "/docs/intro", Text: "Intro"},
			want:   "https://ex.com/docs/intro", ok: true,
		},
		{
			name:   "path without leading slash gets one",
			policy: docassist.ExternalRewrite,
			link:   docassist.LinkRef{Href: "docs/intro", Text: "Intro"},
			want:   "https://ex.com/docs/intro", ok: true,
		},
		{
			name:   "drop rejects external hosts",
			policy: docassist.ExternalDrop,
			link:   docassist.LinkRef{Href: "https://other.com/x", Text: "X"},
		},
		{
			name:   "drop still resolves relative links",
			policy: docassist.ExternalDrop,
			link:   docassist.LinkRef{Href: "/x", Text: "X"},
			want:   "https://ex.com/x", ok: true,
		},
		{
			name:   "keep returns external links verbatim",
			policy: docassist.ExternalKeep,
			link:   docassist.LinkRef{Href: "https://other.com/x", Text: "X"},
			want:   "https://other.com/x", ok: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			policy := tt.policy
			if policy == "" {
				policy = docassist.ExternalRewrite
			}
			n := newNormalizer(t, policy)

			got, ok := n.Normalize(tt.link)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
