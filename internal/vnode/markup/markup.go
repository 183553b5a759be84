// Package markup is the inline markup front-end for text VNodes. It is
// adapted from the teacher's basement/basement.go and basement/parser.go
// inline-style parser: headers, bold/italic/underline/strikethrough
// spans, horizontal rules, block quotes, lists, and "#color(...)" spans
// are parsed into a small AST and then lowered into styled *vnode.VNode
// trees instead of the teacher's raw ANSI-escape string splicing.
//
// spec.md §1 excludes "design-system token tables" from the core's hard
// engineering, but a markup-to-VNode front end is a parser feeding the
// core, not catalog data, so it stays in scope per SPEC_FULL.md §4.
package markup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/vnode"
)

// NodeType discriminates a markup AST node, generalizing basement.NodeType.
type NodeType int

const (
	NodeRoot NodeType = iota
	NodeText
	NodeStyle
	NodeHole
	NodeBlock
	NodeHeader
	NodeList
	NodeListItem
	NodeCodeBlock
	NodeHR
	NodeQuote
)

// Node is one markup AST node.
type Node struct {
	Type     NodeType
	Content  string
	Lang     string
	Style    geom.TextStyle
	Children []*Node
	HoleID   int
}

func newNode(t NodeType) *Node { return &Node{Type: t} }

func (n *Node) addChild(c *Node) { n.Children = append(n.Children, c) }

var (
	headerBlockRe = regexp.MustCompile(`^(\#{1,6})[ \t]+(.+)`)
	hrBlockRe     = regexp.MustCompile(`^(\*{3,}|-{3,}|_{3,})$`)
	listBlockRe   = regexp.MustCompile(`^([ \t]*)([*+-]|\d+\.)[ \t]+(.+)`)
	quoteBlockRe  = regexp.MustCompile(`^>[ \t]*(.+)`)
	codeFenceRe   = regexp.MustCompile("^```(.*)")

	inlineTokenRe = regexp.MustCompile(`(%v)|(\*\*.+?\*\*)|(\*.+?\*)|(__.+?__)|(~~.+?~~)|(!?#[a-zA-Z0-9]{3,8}\(.+?\))`)
)

// namedColors mirrors basement/style.go's GetColorCode table, but resolves
// to geom.Color (indexed ANSI 0-15) rather than a raw escape string, since
// color depth resolution now happens in internal/framebuffer.
var namedColors = map[string]geom.Color{
	"black":   geom.Indexed(0),
	"red":     geom.Indexed(1),
	"green":   geom.Indexed(2),
	"yellow":  geom.Indexed(3),
	"blue":    geom.Indexed(4),
	"magenta": geom.Indexed(5),
	"cyan":    geom.Indexed(6),
	"white":   geom.Indexed(7),
	"grey":    geom.Indexed(8),
	"gray":    geom.Indexed(8),
}

// ColorByName resolves a markup color name to a geom.Color, or the zero
// Color (default) if unknown.
func ColorByName(name string) geom.Color { return namedColors[name] }

// Parse parses markup-formatted input into an AST, assigning sequential
// HoleIDs to %v placeholders in document order, matching the teacher's
// tui/render.go assignHoles pass.
func Parse(input string) *Node {
	root := parseAST(input)
	holeCount := 0
	assignHoles(root, &holeCount)
	return root
}

func assignHoles(n *Node, count *int) {
	if n.Type == NodeHole {
		n.HoleID = *count
		*count++
	}
	for _, c := range n.Children {
		assignHoles(c, count)
	}
}

func parseAST(input string) *Node {
	root := newNode(NodeRoot)
	lines := strings.Split(input, "\n")

	var currentList *Node
	var inCodeBlock bool
	var codeBlockLang string
	var codeBlockContent strings.Builder

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if matches := codeFenceRe.FindStringSubmatch(trimmed); matches != nil {
			if inCodeBlock {
				node := newNode(NodeCodeBlock)
				node.Content = codeBlockContent.String()
				node.Lang = codeBlockLang
				root.addChild(node)
				codeBlockContent.Reset()
				inCodeBlock = false
				codeBlockLang = ""
			} else {
				inCodeBlock = true
				codeBlockLang = strings.TrimSpace(matches[1])
			}
			continue
		}
		if inCodeBlock {
			codeBlockContent.WriteString(line + "\n")
			continue
		}

		if matches := listBlockRe.FindStringSubmatch(line); matches != nil {
			if currentList == nil {
				currentList = newNode(NodeList)
				root.addChild(currentList)
			}
			item := newNode(NodeListItem)
			item.Children = parseInline(matches[3])
			currentList.addChild(item)
			continue
		}
		if trimmed != "" {
			currentList = nil
		}

		if matches := headerBlockRe.FindStringSubmatch(line); matches != nil {
			level := len(matches[1])
			content := matches[2]

			style := geom.TextStyle{Attrs: geom.AttrBold}
			if level == 1 {
				style.Attrs |= geom.AttrInverse
			} else if level == 2 {
				style.Attrs |= geom.AttrUnderline
			}

			node := newNode(NodeHeader)
			node.Style = style
			node.Children = parseInline(content)
			root.addChild(node)
			continue
		}

		if hrBlockRe.MatchString(trimmed) {
			root.addChild(newNode(NodeHR))
			continue
		}

		if matches := quoteBlockRe.FindStringSubmatch(line); matches != nil {
			node := newNode(NodeQuote)
			node.Children = parseInline(matches[1])
			root.addChild(node)
			continue
		}

		if trimmed == "" {
			root.addChild(newNode(NodeText))
			continue
		}

		node := newNode(NodeBlock)
		node.Children = parseInline(line)
		root.addChild(node)
	}

	return root
}

func parseInline(text string) []*Node {
	var nodes []*Node
	lastIndex := 0
	matches := inlineTokenRe.FindAllStringIndex(text, -1)

	for _, match := range matches {
		start, end := match[0], match[1]
		if start > lastIndex {
			nodes = append(nodes, &Node{Type: NodeText, Content: text[lastIndex:start]})
		}

		token := text[start:end]
		switch {
		case token == "%v":
			nodes = append(nodes, &Node{Type: NodeHole, HoleID: -1})
		case strings.HasPrefix(token, "**"):
			nodes = append(nodes, styledSpan(geom.TextStyle{Attrs: geom.AttrBold}, token[2:len(token)-2]))
		case strings.HasPrefix(token, "__"):
			nodes = append(nodes, styledSpan(geom.TextStyle{Attrs: geom.AttrUnderline}, token[2:len(token)-2]))
		case strings.HasPrefix(token, "~~"):
			nodes = append(nodes, styledSpan(geom.TextStyle{Attrs: geom.AttrStrikethrough}, token[2:len(token)-2]))
		case strings.HasPrefix(token, "*"):
			nodes = append(nodes, styledSpan(geom.TextStyle{Attrs: geom.AttrItalic}, token[1:len(token)-1]))
		case strings.Contains(token, "#"):
			isBg := strings.HasPrefix(token, "!")
			startParen := strings.Index(token, "(")
			endParen := strings.LastIndex(token, ")")
			if startParen > -1 && endParen > startParen {
				colorName := token[1:startParen]
				if isBg {
					colorName = token[2:startParen]
				}
				content := token[startParen+1 : endParen]
				st := geom.TextStyle{}
				if isBg {
					st.Bg = ColorByName(colorName)
				} else {
					st.Fg = ColorByName(colorName)
				}
				nodes = append(nodes, styledSpan(st, content))
			} else {
				nodes = append(nodes, &Node{Type: NodeText, Content: token})
			}
		}
		lastIndex = end
	}

	if lastIndex < len(text) {
		nodes = append(nodes, &Node{Type: NodeText, Content: text[lastIndex:]})
	}
	return nodes
}

func styledSpan(st geom.TextStyle, content string) *Node {
	n := newNode(NodeStyle)
	n.Style = st
	n.Children = parseInline(content)
	return n
}

// ToVNode lowers a parsed AST plus interpolation args into a single
// *vnode.VNode column, one row per visual line, matching the shape the
// teacher's tui/render.go renderNode produced by direct screen writes.
func ToVNode(root *Node, args []interface{}) *vnode.VNode {
	var rows []*vnode.VNode
	for _, child := range root.Children {
		rows = append(rows, lowerBlock(child, args)...)
	}
	return vnode.Col(rows...)
}

func lowerBlock(n *Node, args []interface{}) []*vnode.VNode {
	switch n.Type {
	case NodeText:
		if n.Content == "" {
			return []*vnode.VNode{vnode.Text("")}
		}
		return []*vnode.VNode{lowerInlineRow(n.Children, args)}
	case NodeHeader, NodeBlock:
		row := lowerInlineRow(n.Children, args)
		row.Style = n.Style.Merge(row.Style)
		return []*vnode.VNode{row}
	case NodeHR:
		return []*vnode.VNode{vnode.Divider()}
	case NodeQuote:
		bar := vnode.Text("│ ")
		inline := lowerInlineRow(n.Children, args)
		return []*vnode.VNode{vnode.Row(bar, inline)}
	case NodeList:
		var rows []*vnode.VNode
		for _, item := range n.Children {
			bullet := vnode.Text("• ")
			rows = append(rows, vnode.Row(bullet, lowerInlineRow(item.Children, args)))
		}
		return rows
	case NodeCodeBlock:
		code := vnode.Text(strings.TrimRight(n.Content, "\n")).WithStyle(geom.TextStyle{Attrs: geom.AttrDim})
		code.Text.Lang = n.Lang
		return []*vnode.VNode{code}
	default:
		return nil
	}
}

func lowerInlineRow(children []*Node, args []interface{}) *vnode.VNode {
	var parts []*vnode.VNode
	for _, c := range children {
		parts = append(parts, lowerInline(c, geom.TextStyle{}, args)...)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return vnode.Row(parts...)
}

func lowerInline(n *Node, inherited geom.TextStyle, args []interface{}) []*vnode.VNode {
	switch n.Type {
	case NodeText:
		return []*vnode.VNode{vnode.Text(n.Content).WithStyle(inherited)}
	case NodeStyle:
		merged := inherited.Merge(n.Style)
		var out []*vnode.VNode
		for _, c := range n.Children {
			out = append(out, lowerInline(c, merged, args)...)
		}
		return out
	case NodeHole:
		if n.HoleID >= 0 && n.HoleID < len(args) {
			return []*vnode.VNode{vnode.Text(formatArg(args[n.HoleID])).WithStyle(inherited)}
		}
		return nil
	default:
		return nil
	}
}

func formatArg(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
