package services

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sirine707/ensuite-study-buddy/internal/models"
)

type testPage struct {
	text  string
	image bool
}

// buildPDF writes a minimal PDF with one Helvetica text run per page and,
// when requested, an image XObject in the page resources.
func buildPDF(pages ...testPage) []byte {
	var objects []string
	add := func(body string) int {
		objects = append(objects, body)
		return len(objects)
	}

	catalog := add("") // filled once the page tree exists
	pagesObj := add("")
	font := add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	image := add("<< /Type /XObject /Subtype /Image /Width 1 /Height 1 /ColorSpace /DeviceGray /BitsPerComponent 8 /Length 1 >>\nstream\n\x00\nendstream")

	var kids []string
	for _, p := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", p.text)
		contents := add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))

		resources := fmt.Sprintf("/Font << /F1 %d 0 R >>", font)
		if p.image {
			resources += fmt.Sprintf(" /XObject << /Im1 %d 0 R >>", image)
		}
		page := add(fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << %s >> /Contents %d 0 R >>",
			pagesObj, resources, contents))
		kids = append(kids, fmt.Sprintf("%d 0 R", page))
	}

	objects[catalog-1] = fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesObj)
	objects[pagesObj-1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", joinRefs(kids), len(kids))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, catalog, xref)

	return buf.Bytes()
}

func joinRefs(refs []string) string {
	var b bytes.Buffer
	for i, r := range refs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r)
	}
	return b.String()
}

func pageTexts(t *testing.T, data []byte) []string {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var out []string
	for i := 1; i <= r.NumPage(); i++ {
		text, err := r.Page(i).GetPlainText(nil)
		require.NoError(t, err)
		out = append(out, text)
	}
	return out
}

func TestExtractText_TXTRoundTrip(t *testing.T) {
	svc := NewFileExtractService(zap.NewNop())
	s := "Héllo, wörld!\nLine two\t with tabs  \n\n"

	got, err := svc.ExtractText([]byte(s), "txt")

	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestExtractText_InvalidUTF8(t *testing.T) {
	svc := NewFileExtractService(zap.NewNop())

	_, err := svc.ExtractText([]byte{0xff, 0xfe, 0x41}, "txt")

	assert.Equal(t, models.CodeDecodingError, models.CodeOf(err))
}

func TestExtractText_ExtensionHandling(t *testing.T) {
	svc := NewFileExtractService(zap.NewNop())

	tests := []struct {
		ext      string
		wantCode models.ErrorCode
	}{
		{"TXT", ""},
		{".txt", ""},
		{"docx", models.CodeUnsupportedFormat},
		{"", models.CodeUnsupportedFormat},
		{"md", models.CodeUnsupportedFormat},
	}

	for _, tc := range tests {
		t.Run(tc.ext, func(t *testing.T) {
			_, err := svc.ExtractText([]byte("hello"), tc.ext)
			if tc.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.wantCode, models.CodeOf(err))
		})
	}
}

func TestExtractText_PDFConcatenatesPagesInOrder(t *testing.T) {
	svc := NewFileExtractService(zap.NewNop())
	data := buildPDF(testPage{text: "Hello page one"}, testPage{text: "Hello page two"}, testPage{text: "Third"})

	got, err := svc.ExtractText(data, "pdf")
	require.NoError(t, err)

	texts := pageTexts(t, data)
	require.Len(t, texts, 3)
	assert.Equal(t, texts[0]+texts[1]+texts[2], got)
	assert.Contains(t, texts[0], "Hello page one")
	assert.Less(t, bytes.Index([]byte(got), []byte("page one")), bytes.Index([]byte(got), []byte("page two")))
}

func TestExtractText_PDFWithImageIsRejected(t *testing.T) {
	svc := NewFileExtractService(zap.NewNop())

	for _, imagePage := range []int{0, 1, 2} {
		t.Run(fmt.Sprintf("image on page %d", imagePage+1), func(t *testing.T) {
			pages := []testPage{{text: "one"}, {text: "two"}, {text: "three"}}
			pages[imagePage].image = true

			got, err := svc.ExtractText(buildPDF(pages...), "pdf")

			assert.Empty(t, got)
			assert.Equal(t, models.CodeUnextractableContent, models.CodeOf(err))
			assert.Contains(t, err.Error(), fmt.Sprintf("page %d", imagePage+1))
		})
	}
}

func TestExtractText_CorruptPDF(t *testing.T) {
	svc := NewFileExtractService(zap.NewNop())

	_, err := svc.ExtractText([]byte("%PDF-1.4\nthis is not really a pdf"), "pdf")

	assert.Equal(t, models.CodeDecodingError, models.CodeOf(err))
}
