package shared

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

func GetHostName(urlStr string) (string, error) {
	var parsedUrl *url.URL
	var urlError error
	parsedUrl, urlError = url.Parse(urlStr)
	if urlError != nil {
		return "", fmt.Errorf("Failed to parse URL '%s': %v", urlStr, urlError)
	}
	return parsedUrl.Hostname(), nil
}

// FileNameFromUrl returns the last path segment of an image URL, used as the
// display name of a blob mention.
func FileNameFromUrl(urlStr string) string {
	if urlStr == "" {
		return "unknown"
	}
	parts := strings.Split(urlStr, "/")
	return parts[len(parts)-1]
}

func TruncateWithEllipsis(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	// https://stackoverflow.com/a/73939904/7479498
	lastSpaceIx := maxLen
	len := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			lastSpaceIx = i
		}
		len++
		if len > maxLen {
			return text[:lastSpaceIx] + "…"
		}
	}
	// If here, string is shorter or equal to maxLen
	return text
}

// StripCData removes the CDATA wrapper some feeds put around item
// descriptions.
func StripCData(htm string) string {
	htm = strings.Replace(htm, "<![CDATA[", "", 1)
	htm = strings.Replace(htm, "]]>", "", 1)
	return htm
}
