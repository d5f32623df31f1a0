package gh

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

// limitTransport is a client side token bucket shared by every request of a Client
type limitTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (x *limitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := x.limiter.Wait(req.Context()); err != nil {
		return nil, goerr.Wrap(err, "rate limiter wait is interrupted", goerr.V("url", req.URL.String()))
	}
	return x.base.RoundTrip(req)
}
