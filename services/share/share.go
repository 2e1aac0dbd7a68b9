package share

import (
	"fmt"
	"net/url"
	"strings"

	"doitto/models"
)

// Link is an outbound share target for one social platform.
type Link struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// NativeShare is the payload handed to a platform share sheet.
type NativeShare struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Bundle is everything a client needs to share a helper profile.
type Bundle struct {
	HelperID string      `json:"helperId"`
	URL      string      `json:"url"`
	Title    string      `json:"title"`
	Text     string      `json:"text"`
	Links    []Link      `json:"links"`
	Native   NativeShare `json:"native"`
	CopyText string      `json:"copyText"`
}

// ProfileURL is the public page of a helper.
func ProfileURL(baseURL, helperID string) string {
	return strings.TrimRight(baseURL, "/") + "/helper/" + helperID
}

func Build(h models.Helper, baseURL, siteName string) Bundle {
	profileURL := ProfileURL(baseURL, h.ID)
	title := fmt.Sprintf("%s - %s", h.Name, h.Title)
	text := fmt.Sprintf("Check out %s, a %s available on %s!", h.Name, h.Title, siteName)

	u, t := escape(profileURL), escape(text)
	return Bundle{
		HelperID: h.ID,
		URL:      profileURL,
		Title:    title,
		Text:     text,
		Links: []Link{
			{Platform: "facebook", URL: "https://www.facebook.com/sharer/sharer.php?u=" + u},
			{Platform: "twitter", URL: "https://twitter.com/intent/tweet?text=" + t + "&url=" + u},
			{Platform: "linkedin", URL: "https://www.linkedin.com/sharing/share-offsite/?url=" + u},
			{Platform: "whatsapp", URL: "https://wa.me/?text=" + escape(text+" "+profileURL)},
		},
		Native:   NativeShare{Title: title, Text: text, URL: profileURL},
		CopyText: fallbackBlock(profileURL),
	}
}

// LinkFor returns the share link for platform, or "" when it is not supported.
func (b Bundle) LinkFor(platform string) string {
	for _, l := range b.Links {
		if strings.EqualFold(l.Platform, platform) {
			return l.URL
		}
	}
	return ""
}

// escape matches JavaScript's encodeURIComponent.
var unreserved = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

func escape(s string) string {
	return unreserved.Replace(url.QueryEscape(s))
}
