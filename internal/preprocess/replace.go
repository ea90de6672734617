package preprocess

import (
	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-docpipe/internal/markdown"
)

// Replacement is a deferred instruction to splice Nodes into Parent's child
// list at Index, removing exactly one original child. Requests address nodes
// by (parent, index) pairs so a prior read-only traversal can never hand out
// references invalidated by earlier splices.
type Replacement struct {
	Parent ast.Node
	Index  int
	Nodes  []ast.Node
}

// Apply executes queued replacements in reverse collection order, which
// corresponds to descending document position. When two directives share a
// parent the later sibling is replaced first, so the earlier request's index
// stays valid. Requests whose index no longer resolves are skipped.
func Apply(replacements []Replacement) {
	for i := len(replacements) - 1; i >= 0; i-- {
		r := replacements[i]
		target := childAt(r.Parent, r.Index)
		if target == nil {
			continue
		}
		for _, node := range r.Nodes {
			r.Parent.InsertBefore(r.Parent, target, node)
		}
		r.Parent.RemoveChild(r.Parent, target)
	}
}

func childAt(parent ast.Node, index int) ast.Node {
	if parent == nil || index < 0 {
		return nil
	}
	child := parent.FirstChild()
	for i := 0; child != nil && i < index; i++ {
		child = child.NextSibling()
	}
	return child
}

func childIndex(parent ast.Node, child ast.Node) int {
	index := 0
	for sibling := parent.FirstChild(); sibling != nil; sibling = sibling.NextSibling() {
		if sibling == child {
			return index
		}
		index++
	}
	return -1
}

// directiveRef captures one matched directive during a read-only traversal.
type directiveRef struct {
	node   *markdown.Directive
	parent ast.Node
	index  int
}

// collectDirectives walks the tree in document order and returns every leaf
// directive with the given name, addressed by parent and sibling index. The
// traversal never mutates the tree; callers queue replacements and apply them
// afterwards.
func collectDirectives(root ast.Node, name string) []directiveRef {
	var refs []directiveRef
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		directive, ok := n.(*markdown.Directive)
		if !ok || directive.Name != name {
			return ast.WalkContinue, nil
		}
		parent := directive.Parent()
		if parent == nil {
			return ast.WalkContinue, nil
		}
		refs = append(refs, directiveRef{
			node:   directive,
			parent: parent,
			index:  childIndex(parent, directive),
		})
		return ast.WalkSkipChildren, nil
	})
	return refs
}
