// Package share builds referral invitation texts and the deep links that hand them to
// messaging and social apps.
package share

import (
	"net/url"
	"strings"
)

// Channel identifies a share target
type Channel string

const (
	WhatsApp Channel = "whatsapp"
	Telegram Channel = "telegram"
	Facebook Channel = "facebook"
	Twitter  Channel = "twitter"
	SMS      Channel = "sms"
	Email    Channel = "email"
)

// Link is a ready-to-open share URL
type Link struct {
	Channel Channel `json:"channel"`
	Name    string  `json:"name"`
	URL     string  `json:"url"`
}

// Invite is what gets shared: the message body, an email subject and the link friends follow
type Invite struct {
	Message string `json:"message"`
	Subject string `json:"subject"`
	URL     string `json:"url"`
}

// componentUnescaper undoes url.QueryEscape where encodeURIComponent leaves characters as they are
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s for use as one query value, escaping the same characters
// as encodeURIComponent. Spaces become %20, never "+", so mail and SMS clients show them correctly.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Links returns the share links for every channel, in display order
func Links(inv Invite) []Link {
	msg := EncodeComponent(inv.Message)
	return []Link{
		{Channel: WhatsApp, Name: "WhatsApp", URL: "https://wa.me/?text=" + msg},
		{Channel: Telegram, Name: "Telegram", URL: "https://t.me/share/url?url=" + EncodeComponent(inv.URL) + "&text=" + msg},
		{Channel: Facebook, Name: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + EncodeComponent(inv.URL) + "&quote=" + msg},
		{Channel: Twitter, Name: "Twitter", URL: "https://twitter.com/intent/tweet?text=" + msg},
		{Channel: SMS, Name: "SMS", URL: "sms:?body=" + msg},
		{Channel: Email, Name: "Email", URL: "mailto:?subject=" + EncodeComponent(inv.Subject) + "&body=" + msg},
	}
}

// LinkFor returns the link for one channel
func LinkFor(inv Invite, ch Channel) (Link, bool) {
	for _, l := range Links(inv) {
		if l.Channel == ch {
			return l, true
		}
	}
	return Link{}, false
}

// RegisterLink is the portal's sign-up page
func RegisterLink(base string) string {
	return strings.TrimRight(base, "/") + "/register"
}

// ReferralLink is the sign-up page with the code pre-filled
func ReferralLink(base, code string) string {
	return RegisterLink(base) + "?ref=" + EncodeComponent(orCode(code))
}
