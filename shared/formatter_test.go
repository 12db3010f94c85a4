package shared

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestEllipticalTruncate(t *testing.T) {
	assert.Equal(t, "…", TruncateWithEllipsis("1 2 3", 0))
	assert.Equal(t, "1…", TruncateWithEllipsis("1 2 3", 1))
	assert.Equal(t, "1…", TruncateWithEllipsis("1 2 3", 2))
	assert.Equal(t, "1 2…", TruncateWithEllipsis("1 2 3", 3))
	assert.Equal(t, "1 2 3", TruncateWithEllipsis("1 2 3", 5))
}

func TestFileNameFromUrl(t *testing.T) {
	assert.Equal(t, "pic.jpg", FileNameFromUrl("https://cdn.site.com/img/pic.jpg"))
	assert.Equal(t, "pic.jpg", FileNameFromUrl("pic.jpg"))
	assert.Equal(t, "", FileNameFromUrl("https://cdn.site.com/img/"))
	assert.Equal(t, "unknown", FileNameFromUrl(""))
}

func TestStripCData(t *testing.T) {
	assert.Equal(t, "<p>hi</p>", StripCData("<![CDATA[<p>hi</p>]]>"))
	assert.Equal(t, "<p>hi</p>", StripCData("<p>hi</p>"))
}

func TestGetHostName(t *testing.T) {
	host, err := GetHostName("http://feed.com/rss?x=1")
	assert.Nil(t, err)
	assert.Equal(t, "feed.com", host)
}
