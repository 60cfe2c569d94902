// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package design

// headerCatalog holds the fixed header fragments the renderer chooses from.
// Each fragment is table-based markup known to render in the major desktop
// and mobile clients, with MSO conditionals where Outlook needs them.
// Tokens: {{BRAND}}, {{SUBJECT}}, {{DATE}}, {{PRIMARY}}, {{SECONDARY}},
// {{ACCENT}}, {{TEXT}}.
var headerCatalog = []string{
	// Solid banner.
	`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0" style="background-color:{{PRIMARY}};">
<tr><td align="center" style="padding:32px 24px;">
<h1 style="margin:0;color:#ffffff;font-size:28px;line-height:1.2;">{{BRAND}}</h1>
<p style="margin:8px 0 0;color:#ffffff;font-size:14px;opacity:0.85;">{{DATE}}</p>
</td></tr>
<tr><td align="center" style="background-color:{{SECONDARY}};padding:12px 24px;">
<p style="margin:0;color:#ffffff;font-size:16px;font-weight:bold;">{{SUBJECT}}</p>
</td></tr>
</table>`,

	// Split masthead with accent rule.
	`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0">
<tr><td style="padding:24px;background-color:{{PRIMARY}};">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0">
<tr>
<td align="left" style="color:#ffffff;font-size:22px;font-weight:bold;">{{BRAND}}</td>
<td align="right" style="color:#ffffff;font-size:13px;">{{DATE}}</td>
</tr>
</table>
</td></tr>
<tr><td style="height:4px;background-color:{{ACCENT}};font-size:0;line-height:0;">&nbsp;</td></tr>
<tr><td align="center" style="padding:20px 24px;background-color:#ffffff;">
<h2 style="margin:0;color:{{TEXT}};font-size:20px;line-height:1.3;">{{SUBJECT}}</h2>
</td></tr>
</table>`,

	// Minimal wordmark with Outlook-conditional spacer.
	`<!--[if mso]><table role="presentation" width="600" cellpadding="0" cellspacing="0" border="0"><tr><td><![endif]-->
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0">
<tr><td align="center" style="padding:28px 24px 8px;">
<p style="margin:0;color:{{PRIMARY}};font-size:24px;font-weight:bold;letter-spacing:2px;text-transform:uppercase;">{{BRAND}}</p>
</td></tr>
<tr><td align="center" style="padding:0 24px 20px;">
<p style="margin:0;color:{{TEXT}};font-size:15px;">{{SUBJECT}} &middot; {{DATE}}</p>
</td></tr>
<tr><td style="height:2px;background-color:{{PRIMARY}};font-size:0;line-height:0;">&nbsp;</td></tr>
</table>
<!--[if mso]></td></tr></table><![endif]-->`,
}

// footerTemplate is the fixed compliance footer appended to every issue.
var footerTemplate = `<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0" style="background-color:#f4f4f4;">
<tr><td align="center" style="padding:24px;">
<p style="margin:0 0 8px;color:{{TEXT}};font-size:12px;">You are receiving this email because you subscribed to {{BRAND}}.</p>
<p style="margin:0 0 8px;font-size:12px;"><a href="{{UNSUBSCRIBE}}" style="color:{{PRIMARY}};">Unsubscribe</a> &middot; <a href="{{PREFERENCES}}" style="color:{{PRIMARY}};">Update preferences</a></p>
<p style="margin:0;color:#9ca3af;font-size:11px;">&copy; {{YEAR}} {{BRAND}}. All rights reserved.</p>
</td></tr>
</table>`
