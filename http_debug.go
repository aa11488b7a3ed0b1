package kinvey

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// DebugTransport wraps an http.RoundTripper with request/response dump
// logging, gated on debugLoggingRequested (the KINVEY_DEBUG/DEBUG env vars).
// Nothing installs it automatically: a caller passes it as the transport to
// racks.NewHTTPNetworkRack. A Client's WithDebugLogging flag does not affect
// it.
//
// Logs full request/response bodies, so it is not meant for production use.
type DebugTransport struct{ Base http.RoundTripper }

func (dt *DebugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if debugLoggingRequested() {
		if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
		}
	}

	resp, err := dt.Base.RoundTrip(req)
	if err != nil {
		if debugLoggingRequested() {
			log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		}
		return nil, err
	}

	if debugLoggingRequested() {
		if respDump, err := httputil.DumpResponse(resp, true); err == nil {
			log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

// debugLoggingRequested reports whether HTTP debug logging should be
// enabled: KINVEY_DEBUG=true targets this SDK specifically, DEBUG=true is
// the broader convention shared with the rest of an app's stack.
func debugLoggingRequested() bool {
	return os.Getenv("KINVEY_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
