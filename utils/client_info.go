// ════════════════════════════════════════════════════════════
// Path: utils/client_info.go
// Who is browsing: real IP and a coarse user agent breakdown
// ════════════════════════════════════════════════════════════

package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientInfo is what the access log records about a caller.
type ClientInfo struct {
	IP      string
	Device  string
	Browser string
	OS      string
}

// DescribeClient reads the caller's address and user agent from the request.
func DescribeClient(c *gin.Context) ClientInfo {
	ua := c.GetHeader("User-Agent")
	return ClientInfo{
		IP:      ClientIP(c),
		Device:  DeviceType(ua),
		Browser: BrowserName(ua),
		OS:      OSName(ua),
	}
}

// DeviceType buckets a user agent into mobile, tablet or desktop.
func DeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return "tablet"
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "android"):
		return "mobile"
	default:
		return "desktop"
	}
}

func BrowserName(userAgent string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "edg"):
		return "Edge"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "safari"):
		return "Safari"
	default:
		return "Other"
	}
}

func OSName(userAgent string) string {
	ua := strings.ToLower(userAgent)

	// iOS and Android agents also mention "mac os" and "linux"
	switch {
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "mac os"):
		return "macOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	default:
		return "Other"
	}
}

// ClientIP prefers proxy headers when they hold a valid address.
func ClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}

	return c.ClientIP()
}
