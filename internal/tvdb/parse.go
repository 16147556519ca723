package tvdb

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"shunt/internal/catalog"
)

var (
	codePattern = regexp.MustCompile(`S(\d{1,4})E(\d{1,3})`)
	// Specials pages render codes loosely, sometimes as "S 0 E 7" or
	// only as an "Episode 7" label.
	specialsCodePattern     = regexp.MustCompile(`(?i)S\s*0+\s*E\s*(\d{1,3})`)
	specialsFallbackPattern = regexp.MustCompile(`(?i)\bEpisode\s+(\d{1,3})\b`)
	airDatePattern          = regexp.MustCompile(`([A-Za-z]+ \d{1,2}, \d{4})`)
)

// extractEpisodes walks the parsed page and builds one episode per
// unique episode-detail link. The surrounding list item supplies the
// SE code and air date; the link text is the title.
func (c *Client) extractEpisodes(root *html.Node, specialsPage bool) []catalog.Episode {
	linkPrefix := "/series/" + c.cfg.SeriesSlug + "/episodes/"

	var episodes []catalog.Episode
	seen := make(map[string]struct{})

	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href := attrValue(n, "href")
		if href == "" || !strings.Contains(href, linkPrefix) {
			return
		}
		url := href
		if !strings.HasPrefix(url, "http") {
			url = c.cfg.BaseURL + href
		}
		if _, dup := seen[url]; dup {
			return
		}
		seen[url] = struct{}{}

		scope := n
		if li := closestAncestor(n, "li"); li != nil {
			scope = li
		} else if n.Parent != nil {
			scope = n.Parent
		}
		textBlock := nodeText(scope)

		seasonRaw, epInSeason, ok := parseEpisodeCode(textBlock, specialsPage)
		if !ok {
			return
		}

		airDate := ""
		if m := airDatePattern.FindStringSubmatch(textBlock); m != nil {
			airDate = parseDateEN(m[1])
		}

		episodes = append(episodes, catalog.Episode{
			Code:       catalog.FormatCode(seasonRaw, epInSeason),
			SeasonRaw:  seasonRaw,
			EpInSeason: epInSeason,
			Title:      nodeText(n),
			AirDateISO: airDate,
		})
	})
	return episodes
}

func parseEpisodeCode(textBlock string, specialsPage bool) (seasonRaw, epInSeason int, ok bool) {
	if !specialsPage {
		m := codePattern.FindStringSubmatch(textBlock)
		if m == nil {
			return 0, 0, false
		}
		seasonRaw, _ = strconv.Atoi(m[1])
		epInSeason, _ = strconv.Atoi(m[2])
		return seasonRaw, epInSeason, true
	}
	if m := specialsCodePattern.FindStringSubmatch(textBlock); m != nil {
		epInSeason, _ = strconv.Atoi(m[1])
		return 0, epInSeason, true
	}
	if m := specialsFallbackPattern.FindStringSubmatch(textBlock); m != nil {
		epInSeason, _ = strconv.Atoi(m[1])
		return 0, epInSeason, true
	}
	return 0, 0, false
}

// parseDateEN converts an English date like "April 7, 1991" to
// "1991-04-07". Unparseable input yields "".
func parseDateEN(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"January 2, 2006", "Jan 2, 2006"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	return ""
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func closestAncestor(n *html.Node, tag string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return p
		}
	}
	return nil
}

// nodeText flattens every text node under n, collapsing whitespace.
func nodeText(n *html.Node) string {
	var parts []string
	walk(n, func(node *html.Node) {
		if node.Type == html.TextNode {
			parts = append(parts, node.Data)
		}
	})
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
