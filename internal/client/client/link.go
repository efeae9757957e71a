package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/swish/internal/common"
	"github.com/google/uuid"
)

// ParseShareLink checks that link has the form https://{domain}/d/{uuid},
// with the UUID in canonical lowercase 8-4-4-4-12 form and nothing after
// it, and returns the UUID.
func ParseShareLink(link, domain string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidLink, err)
	}
	if u.Scheme != "https" || u.Host != domain || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return "", fmt.Errorf("%w: %s", common.ErrInvalidLink, link)
	}

	id, ok := strings.CutPrefix(u.Path, "/d/")
	if !ok || !isCanonicalUUID(id) {
		return "", fmt.Errorf("%w: %s", common.ErrInvalidLink, link)
	}
	return id, nil
}

// IsShareLink reports whether link is a valid share link for domain.
func IsShareLink(link, domain string) bool {
	_, err := ParseShareLink(link, domain)
	return err == nil
}

// BuildShareLink returns the public URL of a link UUID.
func BuildShareLink(domain, linkUUID string) string {
	return fmt.Sprintf("https://%s/d/%s", domain, linkUUID)
}

// LinkID returns the last path segment of a share URL, which is all the
// links endpoint needs. It does not validate the domain.
func LinkID(link string) string {
	trimmed := strings.TrimRight(link, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

func isCanonicalUUID(s string) bool {
	if len(s) != 36 || strings.ToLower(s) != s {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
