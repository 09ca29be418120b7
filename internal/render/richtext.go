// Package render turns canonical portfolio documents into HTML: a
// rich-content normalizer for the free-form detail fields and a page
// renderer for the public profile.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
)

// RichToHTML converts a rich-content field to sanitized HTML. The field
// arrives in one of three encodings: a block node tree (decoded JSON
// array), markdown text, or a plain string. Every leaf text value is
// escaped before any markup wrapper is applied.
func RichToHTML(value interface{}, rw AssetURLRewriter) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []interface{}:
		return renderBlocks(v, rw)
	case string:
		if strings.TrimSpace(v) == "" {
			return ""
		}
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(v), &buf); err != nil {
			return fmt.Sprintf("<p>%s</p>\n", html.EscapeString(v))
		}
		return buf.String()
	default:
		return ""
	}
}

func renderBlocks(blocks []interface{}, rw AssetURLRewriter) string {
	var result strings.Builder
	for _, item := range blocks {
		if node, ok := item.(map[string]interface{}); ok {
			result.WriteString(renderNode(node, rw))
		}
	}
	return result.String()
}

func renderNode(node map[string]interface{}, rw AssetURLRewriter) string {
	nodeType, _ := node["type"].(string)

	switch nodeType {
	case "paragraph":
		return fmt.Sprintf("<p>%s</p>\n", renderChildren(node, rw))
	case "heading":
		level := 1
		if lvl, ok := node["level"].(float64); ok && lvl >= 1 && lvl <= 6 {
			level = int(lvl)
		}
		return fmt.Sprintf("<h%d>%s</h%d>\n", level, renderChildren(node, rw), level)
	case "list":
		tag := "ul"
		if format, _ := node["format"].(string); format == "ordered" {
			tag = "ol"
		}
		return fmt.Sprintf("<%s>\n%s</%s>\n", tag, renderChildren(node, rw), tag)
	case "list-item":
		return fmt.Sprintf("<li>%s</li>\n", renderChildren(node, rw))
	case "quote":
		return fmt.Sprintf("<blockquote>%s</blockquote>\n", renderChildren(node, rw))
	case "code":
		if language, _ := node["language"].(string); language != "" {
			return fmt.Sprintf("<pre><code class=\"language-%s\">%s</code></pre>\n", html.EscapeString(language), plainText(node))
		}
		return fmt.Sprintf("<pre><code>%s</code></pre>\n", plainText(node))
	case "image":
		url, alt := imageAttrs(node)
		if url == "" {
			return ""
		}
		return fmt.Sprintf("<img src=\"%s\" alt=\"%s\">\n", html.EscapeString(rw.Rewrite(url)), html.EscapeString(alt))
	case "link":
		url, _ := node["url"].(string)
		return fmt.Sprintf("<a href=\"%s\" target=\"_blank\" rel=\"noopener noreferrer\">%s</a>", html.EscapeString(rw.Rewrite(url)), renderChildren(node, rw))
	case "text":
		return renderText(node)
	default:
		return renderChildren(node, rw)
	}
}

func renderChildren(node map[string]interface{}, rw AssetURLRewriter) string {
	children, ok := node["children"].([]interface{})
	if !ok {
		return ""
	}
	return renderBlocks(children, rw)
}

// plainText collects the raw text of a subtree without markup, escaped.
// Code blocks use this so their contents stay literal.
func plainText(node map[string]interface{}) string {
	if text, ok := node["text"].(string); ok {
		return html.EscapeString(text)
	}
	children, ok := node["children"].([]interface{})
	if !ok {
		return ""
	}
	var result strings.Builder
	for _, item := range children {
		if child, ok := item.(map[string]interface{}); ok {
			result.WriteString(plainText(child))
		}
	}
	return result.String()
}

func imageAttrs(node map[string]interface{}) (url, alt string) {
	image, ok := node["image"].(map[string]interface{})
	if !ok {
		return "", ""
	}
	url, _ = image["url"].(string)
	alt, _ = image["alternativeText"].(string)
	return url, alt
}

// renderText escapes a text run and applies its modifier flags. Each
// modifier wraps the previous result, innermost first: bold, italic,
// underline, strikethrough, code.
func renderText(node map[string]interface{}) string {
	text, _ := node["text"].(string)
	if text == "" {
		return ""
	}
	htmlText := html.EscapeString(text)

	if flag, _ := node["bold"].(bool); flag {
		htmlText = "<strong>" + htmlText + "</strong>"
	}
	if flag, _ := node["italic"].(bool); flag {
		htmlText = "<em>" + htmlText + "</em>"
	}
	if flag, _ := node["underline"].(bool); flag {
		htmlText = "<u>" + htmlText + "</u>"
	}
	if flag, _ := node["strikethrough"].(bool); flag {
		htmlText = "<s>" + htmlText + "</s>"
	}
	if flag, _ := node["code"].(bool); flag {
		htmlText = "<code>" + htmlText + "</code>"
	}
	return htmlText
}
