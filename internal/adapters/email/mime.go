package email

import (
	"bytes"
	"encoding/base64"
	"mime"
	"mime/multipart"
	"net/textproto"

	"guestregistry/internal/domain"
)

// buildMIMEMessage assembles a multipart/mixed message with an inner
// multipart/alternative body (text + html) followed by base64-encoded
// attachments, suitable for SES SendRawEmail.
func buildMIMEMessage(from, to, subject, html, text string, attachments []domain.Attachment) ([]byte, error) {
	var buf bytes.Buffer
	mixed := multipart.NewWriter(&buf)

	writeHeader(&buf, "From", from)
	writeHeader(&buf, "To", to)
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("UTF-8", subject))
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", `multipart/mixed; boundary="`+mixed.Boundary()+`"`)
	buf.WriteString("\r\n")

	// Body: text and html alternatives.
	altBuf := &bytes.Buffer{}
	alt := multipart.NewWriter(altBuf)
	if text != "" {
		part, err := alt.CreatePart(textproto.MIMEHeader{
			"Content-Type": {`text/plain; charset="UTF-8"`},
		})
		if err != nil {
			return nil, err
		}
		part.Write([]byte(text))
	}
	if html != "" {
		part, err := alt.CreatePart(textproto.MIMEHeader{
			"Content-Type": {`text/html; charset="UTF-8"`},
		})
		if err != nil {
			return nil, err
		}
		part.Write([]byte(html))
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}

	bodyPart, err := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`multipart/alternative; boundary="` + alt.Boundary() + `"`},
	})
	if err != nil {
		return nil, err
	}
	bodyPart.Write(altBuf.Bytes())

	for _, att := range attachments {
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		part, err := mixed.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {contentType + `; name="` + att.Filename + `"`},
			"Content-Disposition":       {`attachment; filename="` + att.Filename + `"`},
			"Content-Transfer-Encoding": {"base64"},
		})
		if err != nil {
			return nil, err
		}
		enc := base64.StdEncoding.EncodeToString(att.Content)
		// RFC 2045 line length limit.
		for len(enc) > 76 {
			part.Write([]byte(enc[:76] + "\r\n"))
			enc = enc[76:]
		}
		part.Write([]byte(enc))
	}

	if err := mixed.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}
