package utils

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// AcceptsHTML cho biết client là browser (Accept chứa text/html).
// Browser được redirect, API client nhận JSON.
func AcceptsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html")
}

// LoginRedirectURL ghép loginURL với ?next=<path hiện tại>
func LoginRedirectURL(loginURL, next string) string {
	u, err := url.Parse(loginURL)
	if err != nil {
		return loginURL
	}
	q := u.Query()
	q.Set("next", next)
	u.RawQuery = q.Encode()
	return u.String()
}

// SafeNext chỉ chấp nhận path nội bộ ("/..."), tránh open redirect
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
