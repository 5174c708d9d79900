package writer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/wudi/ridereport/document"
)

type impl struct{}

func (w *impl) Write(ctx context.Context, doc *document.Document, out io.Writer, cfg Config) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if doc == nil || len(doc.Pages) == 0 {
		return fmt.Errorf("document has no pages")
	}

	// Fixed low object numbers, then per-page resources in page order so the
	// output is stable for identical documents.
	const (
		catalogNum = 1
		pagesNum   = 2
		fontNum    = 3
	)
	next := 4
	infoNum := 0
	if doc.Info != nil {
		infoNum = next
		next++
	}

	type pageRefs struct {
		imageNums map[string]int
		content   int
		page      int
	}
	refs := make([]pageRefs, len(doc.Pages))
	for i, p := range doc.Pages {
		r := pageRefs{imageNums: make(map[string]int)}
		for _, name := range sortedNames(p.XObjects) {
			r.imageNums[name] = next
			next++
		}
		r.content = next
		next++
		r.page = next
		next++
		refs[i] = r
	}
	maxNum := next - 1

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")
	offsets := make(map[int]int64, maxNum)

	emit := func(num int, body []byte) {
		offsets[num] = int64(buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n", num)
		buf.Write(body)
		buf.WriteString("\nendobj\n")
	}

	// Catalog and page tree.
	emit(catalogNum, []byte(fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesNum)))
	var kids bytes.Buffer
	for i := range doc.Pages {
		if i > 0 {
			kids.WriteByte(' ')
		}
		fmt.Fprintf(&kids, "%d 0 R", refs[i].page)
	}
	emit(pagesNum, []byte(fmt.Sprintf("<< /Type /Pages /Count %d /Kids [%s] >>", len(doc.Pages), kids.String())))
	emit(fontNum, []byte("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>"))

	if doc.Info != nil {
		var info bytes.Buffer
		info.WriteString("<<")
		if doc.Info.Title != "" {
			fmt.Fprintf(&info, " /Title (%s)", escapeString([]byte(doc.Info.Title)))
		}
		if doc.Info.Producer != "" {
			fmt.Fprintf(&info, " /Producer (%s)", escapeString([]byte(doc.Info.Producer)))
		}
		if !cfg.Deterministic {
			fmt.Fprintf(&info, " /CreationDate (D:%s)", time.Now().UTC().Format("20060102150405Z"))
		}
		info.WriteString(" >>")
		emit(infoNum, info.Bytes())
	}

	for i, p := range doc.Pages {
		r := refs[i]
		for _, name := range sortedNames(p.XObjects) {
			img := p.XObjects[name]
			var obj bytes.Buffer
			fmt.Fprintf(&obj, "<< /Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /DCTDecode /Length %d >>\nstream\n", img.Width, img.Height, len(img.Data))
			obj.Write(img.Data)
			obj.WriteString("\nendstream")
			emit(r.imageNums[name], obj.Bytes())
		}

		content := serializeOps(p.Contents)
		var stream bytes.Buffer
		fmt.Fprintf(&stream, "<< /Length %d >>\nstream\n", len(content))
		stream.Write(content)
		stream.WriteString("\nendstream")
		emit(r.content, stream.Bytes())

		var page bytes.Buffer
		fmt.Fprintf(&page, "<< /Type /Page /Parent %d 0 R /MediaBox [%s %s %s %s]",
			pagesNum,
			formatNumber(p.MediaBox.LLX), formatNumber(p.MediaBox.LLY),
			formatNumber(p.MediaBox.URX), formatNumber(p.MediaBox.URY))
		fmt.Fprintf(&page, " /Resources << /Font << /F1 %d 0 R >>", fontNum)
		if len(p.XObjects) > 0 {
			page.WriteString(" /XObject <<")
			for _, name := range sortedNames(p.XObjects) {
				fmt.Fprintf(&page, " /%s %d 0 R", name, r.imageNums[name])
			}
			page.WriteString(" >>")
		}
		fmt.Fprintf(&page, " >> /Contents %d 0 R >>", r.content)
		emit(r.page, page.Bytes())
	}

	// XRef and trailer.
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", maxNum+1)
	buf.WriteString("0000000000 65535 f \n")
	for n := 1; n <= maxNum; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R", maxNum+1, catalogNum)
	if infoNum != 0 {
		fmt.Fprintf(&buf, " /Info %d 0 R", infoNum)
	}
	fmt.Fprintf(&buf, " >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	_, err := out.Write(buf.Bytes())
	return err
}

func serializeOps(ops []document.Operation) []byte {
	var buf bytes.Buffer
	for _, op := range ops {
		for _, operand := range op.Operands {
			writeOperand(&buf, operand)
			buf.WriteByte(' ')
		}
		buf.WriteString(op.Operator)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func writeOperand(buf *bytes.Buffer, operand document.Operand) {
	switch o := operand.(type) {
	case document.NumberOperand:
		buf.WriteString(formatNumber(o.Value))
	case document.NameOperand:
		buf.WriteByte('/')
		buf.WriteString(o.Value)
	case document.StringOperand:
		buf.WriteByte('(')
		buf.WriteString(escapeString(o.Value))
		buf.WriteByte(')')
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeString(s []byte) string {
	var buf bytes.Buffer
	for _, c := range s {
		switch c {
		case '\\', '(', ')':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

func sortedNames(m map[string]*document.Image) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
