package probe

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageInfo is what can be learnt about an application from a body snippet.
type PageInfo struct {
	MarkerFound bool
	IsJSON      bool
	HasStatus   bool
	Status      string
	HasName     bool
	Name        string
	Title       string
}

func InspectPage(body string, marker string) PageInfo {
	info := PageInfo{
		MarkerFound: marker != "" && strings.Contains(body, marker),
		Title:       pageTitle(body),
	}

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return info
	}
	info.IsJSON = true

	obj, ok := doc.(map[string]any)
	if !ok {
		return info
	}
	if v, ok := obj["status"]; ok {
		info.HasStatus = true
		info.Status = jsonText(v)
	}
	if v, ok := obj["name"]; ok {
		info.HasName = true
		info.Name = jsonText(v)
	}

	return info
}

func jsonText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func pageTitle(body string) string {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return ""
	}

	var walk func(n *html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode && n.DataAtom == atom.Title {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				return strings.TrimSpace(n.FirstChild.Data)
			}
			return ""
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if t := walk(c); t != "" {
				return t
			}
		}
		return ""
	}

	return walk(doc)
}
