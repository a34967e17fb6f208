package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDigestEmailEscapes(t *testing.T) {
	out := RenderDigestEmail("Digest <today>", []DigestSection{
		{Title: "Urgent", Lines: []string{"case <script>"}},
		{Title: "Caseless", Empty: "none"},
	})

	assert.Contains(t, out, "<title>Digest &lt;today&gt;</title>")
	assert.Contains(t, out, "<li>case &lt;script&gt;</li>")
	assert.Contains(t, out, `<p class="empty">none</p>`)
	assert.NotContains(t, out, "<script>")
}

func TestRenderDigestText(t *testing.T) {
	out := RenderDigestText("Digest", []DigestSection{
		{Title: "Urgent", Lines: []string{"a", "b"}},
		{Title: "Caseless", Empty: "none"},
	})

	assert.Equal(t, "Digest\n\nUrgent\n  - a\n  - b\n\nCaseless\n  none\n", out)
}
