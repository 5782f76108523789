package middleware

import (
	"net"
	"net/http"
	"os"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

var (
	limiters      = make(map[string]*rate.Limiter)
	limitersMutex sync.Mutex

	whitelistedIPs = loadWhitelist()
)

// loadWhitelist merges the local dashboard poller with RATE_LIMIT_WHITELIST,
// a comma-separated list of IPs.
func loadWhitelist() map[string]bool {
	ips := map[string]bool{
		"127.0.0.1": true, // local dashboard poller
	}
	for _, ip := range strings.Split(os.Getenv("RATE_LIMIT_WHITELIST"), ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			ips[ip] = true
		}
	}
	return ips
}

func getLimiter(ip string) *rate.Limiter {
	limitersMutex.Lock()
	defer limitersMutex.Unlock()

	if limiter, exists := limiters[ip]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(2, 10) // 2 requests/sec, burst up to 10
	limiters[ip] = limiter
	return limiter
}

func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, _ := net.SplitHostPort(r.RemoteAddr)
		if whitelistedIPs[ip] {
			next.ServeHTTP(w, r)
			return
		}

		limiter := getLimiter(ip)
		if !limiter.Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
