package compactidx

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// WriteSidecarKDL renders descriptors as a human-editable KDL document,
// one `interval` node per descriptor, for operators to inspect or
// hand-edit with copy-index-style tooling (SPEC_FULL §B: kdl-go's role
// here mirrors the teacher's own hand-tunable `.lci.kdl` format).
func WriteSidecarKDL(descriptors []IntervalDescriptor) string {
	var sb strings.Builder
	sb.WriteString("// compact-index interval directory\n")
	for _, d := range descriptors {
		sb.WriteString(fmt.Sprintf(
			"interval %d %d %q %q\n",
			d.IntervalStart, d.IntervalEnd, d.FirstTerm, d.LastTerm,
		))
	}
	return sb.String()
}

// ReadSidecarKDL parses a document produced by WriteSidecarKDL (or
// hand-edited, as long as each `interval` node keeps its four
// positional arguments: start, end, first term, last term), following
// the same kdl.Parse + document.Node argument-walk the teacher's config
// loader uses for its own inline-argument KDL nodes.
func ReadSidecarKDL(content string) ([]IntervalDescriptor, error) {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("compactidx: parse sidecar: %w", err)
	}

	var out []IntervalDescriptor
	for _, n := range doc.Nodes {
		if sidecarNodeName(n) != "interval" || len(n.Arguments) < 4 {
			continue
		}
		out = append(out, IntervalDescriptor{
			IntervalStart: sidecarIntArg(n, 0),
			IntervalEnd:   sidecarIntArg(n, 1),
			FirstTerm:     sidecarStringArg(n, 2),
			LastTerm:      sidecarStringArg(n, 3),
		})
	}
	return out, nil
}

func sidecarNodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func sidecarIntArg(n *document.Node, i int) int64 {
	switch v := n.Arguments[i].Value.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func sidecarStringArg(n *document.Node, i int) string {
	if s, ok := n.Arguments[i].Value.(string); ok {
		return s
	}
	return ""
}
