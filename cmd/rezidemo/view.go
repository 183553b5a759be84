package main

import (
	"github.com/rezi-tui/rezi/internal/vnode"
	"github.com/rezi-tui/rezi/internal/vnode/markup"
)

// demoView is the stock view rendered by `rezidemo run`/`record`/
// `replay`. The body comes from markup.Parse+ToVNode, the same
// inline-markup-to-VNode path the teacher's tui.Template exposed, so the
// demo exercises that front end instead of hand-built vnode.Text nodes.
func demoView() *vnode.VNode {
	body := markup.ToVNode(markup.Parse(demoTemplate), nil)
	return vnode.Box(body, vnode.BorderRounded, 1)
}

const demoTemplate = `
**rezi demo**
---
press q to quit
`
