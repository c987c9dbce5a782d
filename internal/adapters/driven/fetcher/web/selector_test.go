package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    selector
		wantErr bool
	}{
		{in: "Article", want: selector{tag: "article"}},
		{in: ".post-content", want: selector{class: "post-content"}},
		{in: "#comments", want: selector{id: "comments"}},
		{in: "[role=main]", want: selector{attr: "role", value: "main"}},
		{in: `[role="main"]`, want: selector{attr: "role", value: "main"}},
		{in: "[class*=shortcode]", want: selector{attr: "class", value: "shortcode", contains: true}},
		{in: "[hidden]", want: selector{attr: "hidden"}},
		{in: "", wantErr: true},
		{in: "div p", wantErr: true},
		{in: "a:hover", wantErr: true},
		{in: "[=x]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSelector(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindFirst_DocumentOrder(t *testing.T) {
	doc := parseDoc(t, `<body><div class="a b" id="x">one</div><section role="main">two</section><p class="big-shortcode-x">three</p></body>`)

	assert.Equal(t, "one", textContent(findFirst(doc, mustSelector(".b"))))
	assert.Equal(t, "one", textContent(findFirst(doc, mustSelector("#x"))))
	assert.Equal(t, "two", textContent(findFirst(doc, mustSelector("[role=main]"))))
	assert.Equal(t, "three", textContent(findFirst(doc, mustSelector("[class*=shortcode]"))))
	assert.Nil(t, findFirst(doc, mustSelector("article")))
}

func TestRemoveMatching(t *testing.T) {
	doc := parseDoc(t, `<body><p>keep</p><script>x()</script><div><span class="sidebar">drop</span>also keep</div></body>`)

	removeMatching(doc, []selector{mustSelector("script"), mustSelector(".sidebar")})

	assert.Equal(t, "keepalso keep", textContent(findFirst(doc, mustSelector("body"))))
}

func TestMetaContent(t *testing.T) {
	doc := parseDoc(t, `<head><meta charset="utf-8"><meta name="keywords" content="k"><meta name="description" content="d"></head>`)

	assert.Equal(t, "d", metaContent(doc, "name", "description"))
	assert.Empty(t, metaContent(doc, "property", "og:description"))
}

func TestToMarkdown(t *testing.T) {
	doc := parseDoc(t, `<body>
<h3>Heading</h3>


<p>Some   <em>emphasis</em> and <code>code</code>.</p>
<pre>line 1
line 2</pre>
<ol><li>first</li><li>second</li></ol>
</body>`)

	got := toMarkdown(findFirst(doc, mustSelector("body")))

	assert.Equal(t, "### Heading\n\nSome *emphasis* and `code` .\n\n```\nline 1\nline 2\n```\n\n- first\n- second", got)
}
