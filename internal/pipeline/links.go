package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// linkAttrs lists the attribute resolved for each element.
var linkAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// ResolveLinks rewrites relative image sources and link targets in a preview
// fragment to file:// URLs rooted at baseDir, so a preview shown from a
// scratch location still finds images next to the source file.
// An empty baseDir returns the fragment unchanged.
//
// URLs with a scheme or host, in-page anchors and absolute paths are kept.
// Targets that resolve outside baseDir are kept as written.
func ResolveLinks(fragment, baseDir string) (string, error) {
	if baseDir == "" || fragment == "" {
		return fragment, nil
	}

	root, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		resolveNode(n, root)
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func resolveNode(n *html.Node, root string) {
	if n.Type == html.ElementNode {
		if key, ok := linkAttrs[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key == key {
					n.Attr[i].Val = resolveRef(n.Attr[i].Val, root)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		resolveNode(c, root)
	}
}

// resolveRef returns the file URL for a relative reference, or ref itself.
// The query and fragment of ref are carried over.
func resolveRef(ref, root string) string {
	if ref == "" || strings.HasPrefix(ref, "#") {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return ref
	}
	if filepath.IsAbs(u.Path) || strings.HasPrefix(u.Path, "/") {
		return ref
	}

	target := filepath.Join(root, filepath.FromSlash(u.Path))
	if !within(root, target) {
		return ref
	}

	resolved := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(target),
		RawQuery: u.RawQuery,
		Fragment: u.Fragment,
	}
	if !strings.HasPrefix(resolved.Path, "/") {
		// Windows drive paths need a leading slash: file:///C:/...
		resolved.Path = "/" + resolved.Path
	}
	return resolved.String()
}

// within reports whether target is root or below it.
func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
