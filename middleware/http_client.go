package middleware

import (
	"net/http"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// GetXRayHTTPClient returns an HTTP client instrumented with X-Ray.
// The dispatcher uses this client for all outbound endpoint calls so
// downstream dispatches show up as subsegments.
func GetXRayHTTPClient() *http.Client {
	return xray.Client(&http.Client{})
}

// GetCustomXRayHTTPClient returns a custom HTTP client instrumented with X-Ray
// Useful when you need to customize the client (e.g., timeouts, transport)
func GetCustomXRayHTTPClient(client *http.Client) *http.Client {
	return xray.Client(client)
}
