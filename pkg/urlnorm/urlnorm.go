// Package urlnorm validates media URLs, folds them to a canonical form and
// detects their source platform. It is pure: no I/O, no state, same input
// always gives the same output. The canonical string produced by Normalize
// is what the rest of the service uses as the uniqueness key for a link.
package urlnorm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Platform identifies the service a URL belongs to.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformGeneric Platform = "generic"
)

const MaxURLLength = 2048

// Validate reports whether raw is an acceptable media URL. A nil return
// means valid; otherwise the error carries a human-readable reason that is
// safe to pass through to API callers.
func Validate(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("url is required")
	}
	if len(raw) > MaxURLLength {
		return fmt.Errorf("url too long (max %d characters)", MaxURLLength)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return errors.New("invalid url format")
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		return errors.New("url must include scheme (http or https)")
	}
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("url scheme %q is not allowed (only http and https)", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return errors.New("url must include host")
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" {
			return fmt.Errorf("url host %q is malformed", host)
		}
	}
	return nil
}

// Normalize folds raw to its canonical form. The rules run in a fixed order
// so the function is idempotent: Normalize(Normalize(u)) == Normalize(u).
// Calling it on a URL that does not pass Validate is a programming error and
// returns a non-nil error.
func Normalize(raw string) (string, error) {
	if err := Validate(raw); err != nil {
		return "", fmt.Errorf("normalize called on invalid url: %w", err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("normalize called on unparsable url: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if rule, ok := matchPlatform(u.Hostname()); ok {
		rule.canonicalize(u)
	}

	stripDefaultPort(u)

	u.Fragment = ""
	u.RawFragment = ""

	if u.Path == "/" {
		u.Path = ""
		u.RawPath = ""
	}

	// url.Values.Encode sorts keys, which keeps re-serialization deterministic.
	// ForceQuery is cleared so a bare trailing "?" does not survive either.
	if q := u.Query(); len(q) == 0 {
		u.RawQuery = ""
		u.ForceQuery = false
	} else {
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// Detect returns the platform a URL belongs to. Unknown or unparsable hosts
// fall back to PlatformGeneric.
func Detect(raw string) Platform {
	u, err := url.Parse(raw)
	if err != nil {
		return PlatformGeneric
	}
	if rule, ok := matchPlatform(strings.ToLower(u.Hostname())); ok {
		return rule.platform
	}
	return PlatformGeneric
}

func stripDefaultPort(u *url.URL) {
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		u.Host = u.Hostname()
	}
}
