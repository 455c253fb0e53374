package urlnorm

import (
	"net/url"
	"strings"
)

type platformRule struct {
	platform     Platform
	match        func(host string) bool
	canonicalize func(u *url.URL)
}

// Rules are tried in order and the first match wins; anything unmatched is
// generic. Supporting a new platform means appending one entry here.
var platformRules = []platformRule{
	{
		platform:     PlatformYouTube,
		match:        isYouTubeHost,
		canonicalize: canonicalizeYouTube,
	},
}

func matchPlatform(host string) (platformRule, bool) {
	for _, rule := range platformRules {
		if rule.match(host) {
			return rule, true
		}
	}
	return platformRule{}, false
}

var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

func isYouTubeHost(host string) bool {
	return youtubeHosts[host]
}

// canonicalizeYouTube folds every alias form of a video link to
// https://www.youtube.com/watch?v=<id>. Only the identity-bearing v
// parameter survives; tracking params (si, feature, t, utm_*, ...) are
// dropped because the query is rebuilt from scratch. YouTube URLs that do
// not carry a video id (channel pages, bare playlists) only get their host
// folded to the canonical www form.
func canonicalizeYouTube(u *url.URL) {
	id := youtubeVideoID(u)
	if id == "" {
		if u.Hostname() != "youtu.be" {
			u.Host = "www.youtube.com"
		}
		return
	}

	u.Scheme = "https"
	u.Host = "www.youtube.com"
	u.Path = "/watch"
	u.RawPath = ""
	u.RawQuery = url.Values{"v": []string{id}}.Encode()
}

func youtubeVideoID(u *url.URL) string {
	if u.Hostname() == "youtu.be" {
		return firstPathSegment(u.Path)
	}

	if u.Path == "/watch" {
		return u.Query().Get("v")
	}

	for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
		if strings.HasPrefix(u.Path, prefix) {
			return firstPathSegment(strings.TrimPrefix(u.Path, prefix))
		}
	}
	return ""
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
