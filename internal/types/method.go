package types

import (
	"strings"

	kerrors "github.com/kinvey/kinvey-go-sdk/internal/errors"
)

// Method is one of the five HTTP verbs the request core supports.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// IsMutating reports whether m changes server-side state. GET is the only
// non-mutating method the core recognizes.
func (m Method) IsMutating() bool {
	return m != MethodGet
}

// ParseMethod uppercases and validates a caller-supplied method string.
// Unknown methods return an InvalidInput error.
func ParseMethod(raw string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(raw)))
	switch m {
	case MethodGet, MethodPost, MethodPatch, MethodPut, MethodDelete:
		return m, nil
	default:
		return "", kerrors.New(kerrors.InvalidInput, "unsupported method: "+raw)
	}
}
