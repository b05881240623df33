package server

import (
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"time"
)

type rateBucket struct {
	ticker  *time.Ticker
	tickets chan struct{}
}

// rateLimit lets one request per period through for every bucket of client
// hosts, and rejects clients with too many requests waiting. A request whose
// context ends while waiting gets unavailable.
type rateLimit struct {
	buckets         []rateBucket
	tooManyRequests http.Handler
	unavailable     http.Handler
}

func newRateLimit(buckets int, period time.Duration, maxConcurrent int, tooManyRequests, unavailable http.Handler) *rateLimit {
	b := make([]rateBucket, buckets)
	for i := 0; i < buckets; i++ {
		b[i] = rateBucket{
			ticker:  time.NewTicker(period),
			tickets: make(chan struct{}, maxConcurrent),
		}
	}

	return &rateLimit{
		buckets:         b,
		tooManyRequests: tooManyRequests,
		unavailable:     unavailable,
	}
}

func (l *rateLimit) bucket(r *http.Request) *rateBucket {
	var bucket int
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		h := fnv.New64()
		io.WriteString(h, host)
		bucket = int(h.Sum64() % uint64(len(l.buckets)))
	}
	return &l.buckets[bucket]
}

func (l *rateLimit) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := l.bucket(r)

		select {
		case b.tickets <- struct{}{}:
			defer func() { <-b.tickets }()

			select {
			case <-b.ticker.C:
			case <-r.Context().Done():
				l.unavailable.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)

		default:
			l.tooManyRequests.ServeHTTP(w, r)
		}
	})
}

func (l *rateLimit) stop() {
	for _, b := range l.buckets {
		b.ticker.Stop()
	}
}
