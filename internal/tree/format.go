package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// String renders the tree without colors:
//
//	<TensorTree>
//	├── a --> tensor([1, 2])
//	└── b --> <TensorTree>
//	    └── x --> 1.5
func (n *Node) String() string {
	var sb strings.Builder
	_ = n.Format(&sb, termenv.Ascii)
	return sb.String()
}

// Format writes the tree printout to w, styling keys for the given terminal
// color profile. termenv.Ascii disables styling.
func (n *Node) Format(w io.Writer, profile termenv.Profile) error {
	p := printer{w: w, profile: profile}
	p.header(n)
	p.children(n, "")
	return p.err
}

type printer struct {
	w       io.Writer
	profile termenv.Profile
	err     error
}

func (p *printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) header(n *Node) {
	p.write(p.profile.String("<" + n.container.String() + ">").Faint().String())
	p.write("\n")
}

func (p *printer) children(n *Node, indent string) {
	for i, kv := range n.entries() {
		k := kv.Key
		branch, next := "├── ", "│   "
		if i == n.Len()-1 {
			branch, next = "└── ", "    "
		}
		key := p.profile.String(k).Foreground(p.profile.Color("4")).Bold().String()
		p.write(indent + branch + key + " --> ")

		if child, ok := kv.Value.(*Node); ok {
			p.header(child)
			p.children(child, indent+next)
			continue
		}
		// Continuation lines of multi-line leaves line up under the key.
		leaf := fmt.Sprint(kv.Value)
		p.write(strings.ReplaceAll(leaf, "\n", "\n"+indent+next) + "\n")
	}
}
