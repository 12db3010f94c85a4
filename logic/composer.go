package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"ssb_courier/pub"
	"ssb_courier/shared"
)

// ErrParagraphTooLong means a single paragraph alone exceeds the message
// size budget; there is no truncation path, the entry will be retried.
var ErrParagraphTooLong = errors.New("a single paragraph exceeds the message size budget")

// Worst-case fixed-width fields of the sbot message envelope; the size
// estimate must be an upper bound on what the log will actually store.
const (
	probePreviousLen  = 52
	probeAuthorLen    = 53
	probeSequence     = 9999999999
	probeTimestamp    = 9999999999999
	// Upper bound holds for part counts up to 99; a body fanning out into
	// 100+ parts would overshoot the probe by one byte per extra digit.
	partNumberProbe   = " (99)"
	markdownParaBreak = "\n\n"
)

type IComposer interface {
	PrepareBody(htmlDesc string, stripImages bool) (*PreparedBody, error)
	FinishBody(pb *PreparedBody, resolved []*ResolvedImage) (markdown string, mentions []*pub.Mention, err error)
	Render(template, title, body, link, externalLink, channels string) string
	EstimateEncodedSize(text string, mentions []*pub.Mention) int
	ExtractExternalLink(markdown, feedLink string) string
	Split(body, template, title, link, externalLink, channels string,
		mentions []*pub.Mention, budgetBytes int) ([]*MessagePart, error)
}

// PreparedBody is an item description parsed for image handling, before the
// image URLs have been resolved to blob hashes.
type PreparedBody struct {
	doc       *goquery.Document
	ImageUrls []string
}

// ResolvedImage is one successfully uploaded image.
type ResolvedImage struct {
	Url         string
	Hash        string
	Size        int64
	ContentType string
}

// MessagePart is one publishable message of a composed entry. Parts come
// back in publish order: highest part number first, the unnumbered or
// first part last.
type MessagePart struct {
	Title    string
	Body     string
	Mentions []*pub.Mention
}

type composer struct {
	logger    shared.ILogger
	converter *md.Converter
	reMdLink  *regexp.Regexp
}

func NewComposer(logger shared.ILogger) IComposer {

	conv := md.NewConverter("", true, nil)
	conv.AddRules(
		md.Rule{
			Filter: []string{"em", "i"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				if strings.TrimSpace(content) == "" {
					return md.String("")
				}
				return md.String(" " + opt.EmDelimiter + content + opt.EmDelimiter + " ")
			},
		},
		md.Rule{
			Filter: []string{"strong", "b"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				if strings.TrimSpace(content) == "" {
					return md.String("")
				}
				return md.String(" " + opt.StrongDelimiter + content + opt.StrongDelimiter + " ")
			},
		},
		md.Rule{
			Filter: []string{"style"},
			Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
				return md.String("")
			},
		},
	)

	return &composer{
		logger:    logger,
		converter: conv,
		reMdLink:  regexp.MustCompile(`\[[^\[\]]*\]\(([^)]+)\)`),
	}
}

func StripHtml(htm string) string {
	p := bluemonday.StrictPolicy()
	plain := p.Sanitize(htm)
	plain = html.UnescapeString(plain)
	plain = strings.TrimSpace(plain)
	return plain
}

func (c *composer) PrepareBody(htmlDesc string, stripImages bool) (*PreparedBody, error) {

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(shared.StripCData(htmlDesc)))
	if err != nil {
		return nil, err
	}

	res := PreparedBody{doc: doc}
	if stripImages {
		doc.Find("img").Remove()
		return &res, nil
	}

	seen := map[string]struct{}{}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		if _, dup := seen[src]; dup {
			return
		}
		seen[src] = struct{}{}
		res.ImageUrls = append(res.ImageUrls, src)
	})
	return &res, nil
}

// FinishBody rewrites resolved image references to their blob hashes, drops
// image tags whose download failed, and converts the document to markdown.
func (c *composer) FinishBody(pb *PreparedBody, resolved []*ResolvedImage) (string, []*pub.Mention, error) {

	byUrl := make(map[string]*ResolvedImage, len(resolved))
	for _, img := range resolved {
		byUrl[img.Url] = img
	}

	pb.doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if img, ok := byUrl[src]; ok {
			s.SetAttr("src", img.Hash)
		} else {
			s.Remove()
		}
	})

	var mentions []*pub.Mention
	for _, img := range resolved {
		mentions = append(mentions, &pub.Mention{
			Link: img.Hash,
			Name: shared.FileNameFromUrl(img.Url),
			Size: img.Size,
			Type: img.ContentType,
		})
	}

	bodyHtml, err := pb.doc.Find("body").Html()
	if err != nil {
		return "", nil, err
	}
	markdown, err := c.converter.ConvertString(bodyHtml)
	if err != nil {
		return "", nil, err
	}
	return markdown, mentions, nil
}

// Render substitutes the five known placeholders; unknown placeholders are
// left in the output as literal text.
func (c *composer) Render(template, title, body, link, externalLink, channels string) string {
	r := strings.NewReplacer(
		"{title}", title,
		"{description}", body,
		"{link}", link,
		"{externalLink}", externalLink,
		"{channels}", channels,
	)
	return r.Replace(template)
}

type sizeProbe struct {
	Previous  string          `json:"previous"`
	Sequence  int64           `json:"sequence"`
	Author    string          `json:"author"`
	Timestamp int64           `json:"timestamp"`
	Hash      string          `json:"hash"`
	Content   pub.PostMessage `json:"content"`
}

// EstimateEncodedSize computes the on-wire size of the full signed envelope
// the sbot stores for this text: worst-case previous hash, sequence, author
// and timestamp, serialized the way the log encodes messages (2-space
// indented JSON). A text that passes the budget check here always fits.
func (c *composer) EstimateEncodedSize(text string, mentions []*pub.Mention) int {
	if mentions == nil {
		mentions = []*pub.Mention{}
	}
	probe := sizeProbe{
		Previous:  strings.Repeat("*", probePreviousLen),
		Sequence:  probeSequence,
		Author:    strings.Repeat("*", probeAuthorLen),
		Timestamp: probeTimestamp,
		Hash:      "sha256",
		Content: pub.PostMessage{
			Type:     "post",
			Text:     text,
			Mentions: mentions,
		},
	}
	buf, err := json.MarshalIndent(&probe, "", "  ")
	if err != nil {
		// Marshaling a string-only struct cannot fail; be loud if it does.
		c.logger.Errorf("Failed to estimate message size: %v", err)
		return len(text)
	}
	return len(buf)
}

// ExtractExternalLink walks the markdown links in order and returns the
// first absolute http(s) URL pointing away from the feed's own host. Falls
// back to feedLink when nothing qualifies.
func (c *composer) ExtractExternalLink(markdown, feedLink string) string {

	feedHost, err := shared.GetHostName(feedLink)
	if err != nil || feedHost == "" {
		return feedLink
	}
	for _, m := range c.reMdLink.FindAllStringSubmatch(markdown, -1) {
		candidate := strings.TrimSpace(m[1])
		parsed, err := url.Parse(candidate)
		if err != nil {
			continue
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			continue
		}
		host := parsed.Hostname()
		if host == "" || host == feedHost {
			continue
		}
		return candidate
	}
	return feedLink
}

// FilterMentions keeps channel tags plus the blob mentions whose hash
// literal appears in the text.
func FilterMentions(text string, mentions []*pub.Mention) []*pub.Mention {
	var res []*pub.Mention
	for _, mention := range mentions {
		if mention.Type == "" {
			// Not a blob mention
			res = append(res, mention)
			continue
		}
		if strings.Contains(text, mention.Link) {
			res = append(res, mention)
		}
	}
	return res
}

// Split breaks the body into parts that each fit the byte budget. Splitting
// happens only at blank-line boundaries; parts are titled "{title} (n)"
// counting down, and returned in publish order (highest number first).
func (c *composer) Split(body, template, title, link, externalLink, channels string,
	mentions []*pub.Mention, budgetBytes int) ([]*MessagePart, error) {

	full := c.Render(template, title, body, link, externalLink, channels)
	if c.EstimateEncodedSize(full, mentions) <= budgetBytes {
		return []*MessagePart{{Title: title, Body: body, Mentions: mentions}}, nil
	}

	// The size check uses a worst-case parted title so the real title with
	// any part number can never push a part over budget.
	probeTitle := title + partNumberProbe
	fits := func(candidate string) bool {
		rendered := c.Render(template, probeTitle, candidate, link, externalLink, channels)
		return c.EstimateEncodedSize(rendered, FilterMentions(candidate, mentions)) < budgetBytes
	}

	var bodies []string
	cur := ""
	for _, p := range strings.Split(body, markdownParaBreak) {
		candidate := cur + p + markdownParaBreak
		if fits(candidate) {
			cur = candidate
			continue
		}
		if cur == "" {
			return nil, ErrParagraphTooLong
		}
		bodies = append(bodies, cur)
		cur = p + markdownParaBreak
		if !fits(cur) {
			return nil, ErrParagraphTooLong
		}
	}
	bodies = append(bodies, cur)

	parts := make([]*MessagePart, 0, len(bodies))
	for i := len(bodies) - 1; i >= 0; i-- {
		partBody := bodies[i]
		parts = append(parts, &MessagePart{
			Title:    fmt.Sprintf("%s (%d)", title, i+1),
			Body:     partBody,
			Mentions: FilterMentions(partBody, mentions),
		})
	}
	return parts, nil
}
