package svgstyle

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Restyle rewrites the style attribute of every SVG path element styled as a
// black outline, replacing the file at svgPath in place. It returns the
// number of rewritten elements; zero matches is not an error.
func Restyle(svgPath string, s Stroke) (int, error) {
	src, err := os.ReadFile(svgPath)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", svgPath)
	}

	var buf bytes.Buffer
	n, err := restyle(&buf, bytes.NewReader(src), s)
	if err != nil {
		return 0, errors.Wrapf(err, "restyle %s", svgPath)
	}

	if err := replaceFile(svgPath, buf.Bytes()); err != nil {
		return 0, err
	}
	return n, nil
}

func restyle(w io.Writer, r io.Reader, s Stroke) (int, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	out := bufio.NewWriter(w)
	var scopes nsScopes
	styled := 0

	for {
		tok, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			scopes.push(t.Attr)
			if t.Name.Local == "path" && scopes.resolve(t.Name.Space) == svgNS {
				if restyleAttrs(t.Attr, s) {
					styled++
				}
			}
			writeStart(out, t)
		case xml.EndElement:
			scopes.pop()
			out.WriteString("</")
			out.WriteString(qname(t.Name))
			out.WriteByte('>')
		case xml.CharData:
			textEscaper.WriteString(out, string(t))
		case xml.Comment:
			out.WriteString("<!--")
			out.Write(t)
			out.WriteString("-->")
		case xml.ProcInst:
			out.WriteString("<?")
			out.WriteString(t.Target)
			out.WriteByte(' ')
			out.Write(t.Inst)
			out.WriteString("?>")
		case xml.Directive:
			out.WriteString("<!")
			out.Write(t)
			out.WriteByte('>')
		}
	}

	return styled, out.Flush()
}

// restyleAttrs replaces the style attribute in place when it matches the
// black outline signature exactly. Near matches are left alone.
func restyleAttrs(attrs []xml.Attr, s Stroke) bool {
	for i, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == "style" && a.Value == BlackOutline {
			attrs[i].Value = s.style()
			return true
		}
	}
	return false
}

func writeStart(out *bufio.Writer, t xml.StartElement) {
	out.WriteByte('<')
	out.WriteString(qname(t.Name))
	for _, a := range t.Attr {
		out.WriteByte(' ')
		out.WriteString(qname(a.Name))
		out.WriteString(`="`)
		attrEscaper.WriteString(out, a.Value)
		out.WriteByte('"')
	}
	out.WriteByte('>')
}

// qname restores the prefixed form of a raw token name. RawToken leaves the
// prefix, not the namespace URL, in Name.Space.
func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// nsScopes tracks xmlns declarations down the element stack so prefixed
// path elements still resolve to the SVG namespace.
type nsScopes []map[string]string

func (ns *nsScopes) push(attrs []xml.Attr) {
	var frame map[string]string
	for _, a := range attrs {
		var prefix string
		switch {
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			prefix = "" // default namespace
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		default:
			continue
		}
		if frame == nil {
			frame = make(map[string]string)
		}
		frame[prefix] = a.Value
	}
	*ns = append(*ns, frame)
}

func (ns *nsScopes) pop() {
	if len(*ns) > 0 {
		*ns = (*ns)[:len(*ns)-1]
	}
}

func (ns nsScopes) resolve(prefix string) string {
	for i := len(ns) - 1; i >= 0; i-- {
		if uri, ok := ns[i][prefix]; ok {
			return uri
		}
	}
	return ""
}

// replaceFile swaps in the rewritten document through a rename so a failed
// write cannot leave a truncated SVG behind.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "stage %s", path)
	}
	if fi, err := os.Stat(path); err == nil {
		_ = tmp.Chmod(fi.Mode())
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}
