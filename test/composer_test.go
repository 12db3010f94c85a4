package test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"ssb_courier/logic"
	"ssb_courier/pub"
	"ssb_courier/test/mocks"
)

const testTemplate = "# {title}\n\n{description}\n\nLink: [{link}]({link})\n\n{channels}\n"

func setupComposerTest(t *testing.T) (*gomock.Controller, logic.IComposer) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockILogger(ctrl)
	setupDummyLogger(mockLogger)
	return ctrl, logic.NewComposer(mockLogger)
}

func TestComposer_Render(t *testing.T) {
	ctrl, comp := setupComposerTest(t)
	defer ctrl.Finish()

	res := comp.Render("{title} | {description} | {link} | {externalLink} | {channels}",
		"Hello", "Body", "https://a.com/1", "https://b.com/2", "news tech")
	assert.Equal(t, "Hello | Body | https://a.com/1 | https://b.com/2 | news tech", res)

	// Unknown placeholders stay as-is
	res = comp.Render("{title} {nope}", "X", "", "", "", "")
	assert.Equal(t, "X {nope}", res)
}

func TestComposer_ExtractExternalLink(t *testing.T) {
	ctrl, comp := setupComposerTest(t)
	defer ctrl.Finish()

	feedLink := "https://example.com/feed.xml"

	markdown := "Intro [same host](https://example.com/page) here.\n\n" +
		"See [more](http://other.com/x) and [later](https://third.org/y)."
	assert.Equal(t, "http://other.com/x", comp.ExtractExternalLink(markdown, feedLink))

	// Only same-host and relative links: fall back to the feed link
	markdown = "See [a](https://example.com/a) and [b](/relative/path)."
	assert.Equal(t, feedLink, comp.ExtractExternalLink(markdown, feedLink))

	assert.Equal(t, feedLink, comp.ExtractExternalLink("no links at all", feedLink))
}

func TestComposer_EstimateEncodedSize(t *testing.T) {
	ctrl, comp := setupComposerTest(t)
	defer ctrl.Finish()

	text := "Hello, world"
	plain := comp.EstimateEncodedSize(text, nil)
	// The envelope adds a substantial fixed overhead to the raw text
	assert.Greater(t, plain, len(text)+200)

	withMention := comp.EstimateEncodedSize(text, []*pub.Mention{
		{Link: "&abcdef.sha256", Name: "img.png", Size: 1234, Type: "image/png"},
	})
	assert.Greater(t, withMention, plain)
}

func TestComposer_PrepareAndFinishBody(t *testing.T) {
	ctrl, comp := setupComposerTest(t)
	defer ctrl.Finish()

	htm := `<p>Hello <em>world</em> and <strong>more</strong></p>` +
		`<p><img src="http://pics.example.com/a.png">` +
		`<img src="http://pics.example.com/b.png">` +
		`<img src="http://pics.example.com/a.png"></p>` +
		`<style>p { color: red; }</style>`

	pb, err := comp.PrepareBody(htm, false)
	assert.NoError(t, err)
	// Duplicate image URL collected only once
	assert.Equal(t, []string{"http://pics.example.com/a.png", "http://pics.example.com/b.png"}, pb.ImageUrls)

	resolved := []*logic.ResolvedImage{
		{Url: "http://pics.example.com/a.png", Hash: "&aaa111.sha256", Size: 1000, ContentType: "image/png"},
	}
	markdown, mentions, err := comp.FinishBody(pb, resolved)
	assert.NoError(t, err)
	assert.Contains(t, markdown, "&aaa111.sha256")
	assert.NotContains(t, markdown, "b.png")
	assert.Contains(t, markdown, "*world*")
	assert.Contains(t, markdown, "**more**")
	assert.NotContains(t, markdown, "color: red")
	assert.Equal(t, 1, len(mentions))
	assert.Equal(t, "&aaa111.sha256", mentions[0].Link)
	assert.Equal(t, "a.png", mentions[0].Name)
	assert.Equal(t, int64(1000), mentions[0].Size)
}

func TestComposer_PrepareBody_StripImages(t *testing.T) {
	ctrl, comp := setupComposerTest(t)
	defer ctrl.Finish()

	htm := `<p>Text</p><img src="http://pics.example.com/a.png">`
	pb, err := comp.PrepareBody(htm, true)
	assert.NoError(t, err)
	assert.Empty(t, pb.ImageUrls)

	markdown, mentions, err := comp.FinishBody(pb, nil)
	assert.NoError(t, err)
	assert.NotContains(t, markdown, "a.png")
	assert.Empty(t, mentions)
	assert.Contains(t, markdown, "Text")
}

func TestComposer_Split_SinglePartWhenFits(t *testing.T) {
	ctrl, comp := setupComposerTest(t)
	defer ctrl.Finish()

	parts, err := comp.Split("Short body", testTemplate, "My Title",
		"https://example.com/1", "https://example.com/1", "", nil, 8000)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(parts))
	assert.Equal(t, "My Title", parts[0].Title)
	assert.Equal(t, "Short body", parts[0].Body)
}

func TestComposer_Split_LongBody(t *testing.T) {
	ctrl, comp := setupComposerTest(t)
	defer ctrl.Finish()

	var paras []string
	for i := 0; i < 4; i++ {
		paras = append(paras, fmt.Sprintf("%02d %s", i, strings.Repeat("x", 600)))
	}
	body := strings.Join(paras, "\n\n")
	budget := 1300

	parts, err := comp.Split(body, testTemplate, "My Title",
		"https://example.com/1", "https://example.com/1", "", nil, budget)
	assert.NoError(t, err)
	assert.Greater(t, len(parts), 1)

	// Highest part number first, "(1)" last
	assert.Equal(t, fmt.Sprintf("My Title (%d)", len(parts)), parts[0].Title)
	assert.Equal(t, "My Title (1)", parts[len(parts)-1].Title)

	// Every rendered part fits the budget
	for _, part := range parts {
		rendered := comp.Render(testTemplate, part.Title, part.Body,
			"https://example.com/1", "https://example.com/1", "")
		assert.Less(t, comp.EstimateEncodedSize(rendered, part.Mentions), budget)
	}

	// Splits happen only at paragraph boundaries; nothing lost, nothing reordered
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i].Body)
	}
	assert.Equal(t, body+"\n\n", sb.String())
}

func TestComposer_Split_ParagraphTooLong(t *testing.T) {
	ctrl, comp := setupComposerTest(t)
	defer ctrl.Finish()

	body := strings.Repeat("y", 5000)
	_, err := comp.Split(body, testTemplate, "My Title",
		"https://example.com/1", "https://example.com/1", "", nil, 1300)
	assert.ErrorIs(t, err, logic.ErrParagraphTooLong)
}

func TestComposer_Split_MentionFiltering(t *testing.T) {
	ctrl, comp := setupComposerTest(t)
	defer ctrl.Finish()

	para1 := "First image here ![a](&blob1.sha256) " + strings.Repeat("x", 1200)
	para2 := "Second image here ![b](&blob2.sha256) " + strings.Repeat("y", 1200)
	body := para1 + "\n\n" + para2
	mentions := []*pub.Mention{
		{Link: "&blob1.sha256", Name: "a.png", Size: 10, Type: "image/png"},
		{Link: "&blob2.sha256", Name: "b.png", Size: 20, Type: "image/png"},
		{Link: "news"},
	}

	parts, err := comp.Split(body, testTemplate, "My Title",
		"https://example.com/1", "https://example.com/1", "news", mentions, 2100)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(parts))

	// Publish order is reversed: parts[0] holds para2
	assert.Contains(t, parts[0].Body, "&blob2.sha256")
	linksOf := func(ms []*pub.Mention) []string {
		var res []string
		for _, m := range ms {
			res = append(res, m.Link)
		}
		return res
	}
	assert.ElementsMatch(t, []string{"&blob2.sha256", "news"}, linksOf(parts[0].Mentions))
	assert.ElementsMatch(t, []string{"&blob1.sha256", "news"}, linksOf(parts[1].Mentions))
}
