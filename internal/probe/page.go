package probe

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const (
	metaTextCap    = 5000
	yearTextCap    = 8000
	yearContentCap = 20000
)

// pageMeta holds the parts of a page the analyzer reasons about
type pageMeta struct {
	title string
	meta  string // joined meta content attributes, capped
}

// parsePage extracts the title text and meta content attributes
func parsePage(body []byte) (pageMeta, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, err
	}

	var title strings.Builder
	var metaParts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.TextNode {
						title.WriteString(c.Data)
					}
				}
			case "meta":
				for _, attr := range n.Attr {
					if attr.Key == "content" && attr.Val != "" {
						metaParts = append(metaParts, attr.Val)
					}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return pageMeta{
		title: strings.TrimSpace(title.String()),
		meta:  capString(strings.Join(metaParts, " "), metaTextCap),
	}, nil
}

var yearPattern = regexp.MustCompile(`20[0-3][0-9]`)

// extractYear returns the smallest plausible publication year (2000 to
// 2035) found in the text, or 0 when there is none
func extractYear(text string) int {
	best := 0
	for _, m := range yearPattern.FindAllString(text, -1) {
		y, err := strconv.Atoi(m)
		if err != nil || y < 2000 || y > 2035 {
			continue
		}
		if best == 0 || y < best {
			best = y
		}
	}
	return best
}

func capString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
