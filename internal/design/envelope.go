// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package design

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// contentWidth is the outer content width in pixels; 600 renders safely in
// every major client.
const contentWidth = 600

// documentParts holds everything the envelope assembles.
type documentParts struct {
	Subject   string
	Preheader string
	Header    string
	Body      string
	Footer    string
	Palette   types.Palette
	Font      string
}

// renderFooter fills the fixed compliance footer.
func renderFooter(brand types.Brand, pal types.Palette) string {
	domain := brand.Domain
	if domain == "" {
		domain = "example.com"
	}
	return fillTokens(footerTemplate, map[string]string{
		"BRAND":       brand.Name,
		"PRIMARY":     pal.Primary,
		"TEXT":        pal.Text,
		"YEAR":        fmt.Sprintf("%d", time.Now().Year()),
		"UNSUBSCRIBE": "https://" + domain + "/unsubscribe",
		"PREFERENCES": "https://" + domain + "/preferences",
	})
}

// assemble builds the complete document: sentinel comments, responsive head
// with MSO conditionals, 600px centered container, header + body + footer.
// The single style block carries only reset and media-query rules; all
// content styling is inline.
func assemble(p documentParts) string {
	font := p.Font
	if font == "" {
		font = "Helvetica, Arial, sans-serif"
	}

	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(fmt.Sprintf("<!-- SUBJECT: %s -->\n", p.Subject))
	b.WriteString(fmt.Sprintf("<!-- PREHEADER: %s -->\n", p.Preheader))
	b.WriteString(`<html lang="en" xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office">` + "\n")

	b.WriteString("<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	b.WriteString(`<meta http-equiv="X-UA-Compatible" content="IE=edge">` + "\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", p.Subject))
	b.WriteString(`<!--[if mso]>
<noscript><xml><o:OfficeDocumentSettings><o:PixelsPerInch>96</o:PixelsPerInch></o:OfficeDocumentSettings></xml></noscript>
<![endif]-->
`)
	b.WriteString(`<style>
body, table, td { margin: 0; padding: 0; border-collapse: collapse; }
img { border: 0; display: block; }
@media only screen and (max-width: 480px) {
  .container { width: 100% !important; }
  .stack { display: block !important; width: 100% !important; }
}
</style>
`)
	b.WriteString("</head>\n")

	b.WriteString(fmt.Sprintf(`<body style="margin:0;padding:0;background-color:#e9e9e9;font-family:%s;">`+"\n", font))

	// Hidden preheader text for inbox preview.
	b.WriteString(fmt.Sprintf(`<div style="display:none;max-height:0;overflow:hidden;mso-hide:all;">%s</div>`+"\n", p.Preheader))

	b.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0"><tr><td align="center" style="padding:16px 0;">` + "\n")
	b.WriteString(fmt.Sprintf(`<table role="presentation" class="container" width="%d" cellpadding="0" cellspacing="0" border="0" style="width:%dpx;max-width:%dpx;background-color:%s;">`+"\n",
		contentWidth, contentWidth, contentWidth, p.Palette.Background))

	b.WriteString("<tr><td>\n" + p.Header + "\n</td></tr>\n")
	b.WriteString(fmt.Sprintf(`<tr><td style="padding:24px;color:%s;">`+"\n", p.Palette.Text))
	b.WriteString(p.Body)
	b.WriteString("\n</td></tr>\n")
	b.WriteString("<tr><td>\n" + p.Footer + "\n</td></tr>\n")

	b.WriteString("</table>\n</td></tr></table>\n")
	b.WriteString("</body>\n</html>")

	return b.String()
}
