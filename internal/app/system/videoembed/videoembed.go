// Package videoembed turns a video page URL into something the Media page
// can show: an iframe embed URL for YouTube and Vimeo, or a direct file
// URL for a <video> tag.
package videoembed

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind is how a video is rendered.
type Kind string

const (
	KindIframe Kind = "iframe"
	KindFile   Kind = "file"
	KindLink   Kind = "link"
)

// Embed is a resolved video.
type Embed struct {
	Kind Kind
	URL  string
}

var (
	youtubeID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	vimeoID   = regexp.MustCompile(`^[0-9]+$`)
)

var fileExt = []string{".mp4", ".webm", ".ogg", ".ogv", ".mov"}

// Resolve classifies raw. Unparseable input comes back as KindLink with
// the trimmed original.
func Resolve(raw string) Embed {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return Embed{Kind: KindLink, URL: raw}
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	switch host {
	case "youtube.com", "youtube-nocookie.com":
		if id := youtubeFromPath(u); id != "" {
			return Embed{Kind: KindIframe, URL: "https://www.youtube.com/embed/" + id}
		}
	case "youtu.be":
		if id := firstSegment(u.Path); youtubeID.MatchString(id) {
			return Embed{Kind: KindIframe, URL: "https://www.youtube.com/embed/" + id}
		}
	case "vimeo.com", "player.vimeo.com":
		for _, seg := range strings.Split(strings.Trim(u.Path, "/"), "/") {
			if vimeoID.MatchString(seg) {
				return Embed{Kind: KindIframe, URL: "https://player.vimeo.com/video/" + seg}
			}
		}
	}

	lower := strings.ToLower(u.Path)
	for _, ext := range fileExt {
		if strings.HasSuffix(lower, ext) {
			return Embed{Kind: KindFile, URL: raw}
		}
	}
	return Embed{Kind: KindLink, URL: raw}
}

func youtubeFromPath(u *url.URL) string {
	if u.Path == "/watch" {
		if id := u.Query().Get("v"); youtubeID.MatchString(id) {
			return id
		}
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 2 && (parts[0] == "embed" || parts[0] == "shorts" || parts[0] == "live") {
		if youtubeID.MatchString(parts[1]) {
			return parts[1]
		}
	}
	return ""
}

func firstSegment(p string) string {
	p = strings.Trim(p, "/")
	if i := strings.Index(p, "/"); i >= 0 {
		return p[:i]
	}
	return p
}
