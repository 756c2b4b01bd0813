package feed

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/Zainab2603/AI-Newschatbot/internal/logger"
	"github.com/Zainab2603/AI-Newschatbot/internal/metrics"
)

// Parser converts raw feed bodies into bounded article lists. The primary
// strategy decodes RSS items with encoding/xml; when that fails for any
// reason the tolerant gofeed parser takes over. Items missing title or link
// are skipped and never count toward the cap.
type Parser struct {
	fallback *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{fallback: gofeed.NewParser()}
}

// Parse returns at most maxItems articles, *ParseError if both strategies
// failed, or ErrEmptyFeed if parsing worked but nothing usable remained.
func (p *Parser) Parse(body string, maxItems int) ([]Article, error) {
	if maxItems < 1 {
		maxItems = 1
	}

	articles, err := parseXML(body, maxItems)
	if err != nil {
		metrics.Global.IncrementParseFallbacks()
		logger.Debug("xml strategy failed, trying tolerant parser", "error", err)

		articles, err = p.parseTolerant(body, maxItems)
		if err != nil {
			return nil, &ParseError{Err: err}
		}
	}

	if len(articles) == 0 {
		metrics.Global.IncrementEmptyFeeds()
		return nil, ErrEmptyFeed
	}
	return articles, nil
}

type xmlItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description"`
	Children    []xmlAny `xml:",any"`
}

type xmlAny struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// parseXML walks the document item by item and stops decoding as soon as
// the cap is reached, so maxItems bounds parse work, not just output size.
func parseXML(body string, maxItems int) ([]Article, error) {
	dec := xml.NewDecoder(strings.NewReader(body))
	var articles []Article

	for len(articles) < maxItems {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "item" {
			continue
		}

		var it xmlItem
		if err := dec.DecodeElement(&it, &se); err != nil {
			return nil, err
		}
		if a, ok := it.toArticle(); ok {
			articles = append(articles, a)
		}
	}
	return articles, nil
}

func (it xmlItem) toArticle() (Article, bool) {
	title := strings.TrimSpace(it.Title)
	link := strings.TrimSpace(it.Link)
	if title == "" || link == "" {
		return Article{}, false
	}

	// Google News puts the publisher in a namespaced source element; take
	// the first child whose tag mentions "source".
	source := ""
	for _, child := range it.Children {
		if strings.Contains(strings.ToLower(child.XMLName.Local), "source") {
			source = strings.TrimSpace(child.Text)
			break
		}
	}

	return Article{
		Title:     title,
		Link:      link,
		Published: strings.TrimSpace(it.PubDate),
		Source:    source,
		Summary:   cleanSummary(it.Description),
	}, true
}

func (p *Parser) parseTolerant(body string, maxItems int) ([]Article, error) {
	f, err := p.fallback.ParseString(body)
	if err != nil {
		return nil, err
	}

	articles := make([]Article, 0, maxItems)
	for _, item := range f.Items {
		if len(articles) >= maxItems {
			break
		}
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		articles = append(articles, Article{
			Title:     title,
			Link:      link,
			Published: strings.TrimSpace(item.Published),
			Source:    tolerantSource(item),
			Summary:   cleanSummary(item.Description),
		})
	}
	return articles, nil
}

func tolerantSource(item *gofeed.Item) string {
	for key, value := range item.Custom {
		if strings.Contains(strings.ToLower(key), "source") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// cleanSummary flattens the HTML markup feed descriptions usually carry
// into plain text.
func cleanSummary(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
