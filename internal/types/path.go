package types

import (
	"regexp"

	kerrors "github.com/kinvey/kinvey-go-sdk/internal/errors"
)

// pathPattern implements the grammar /:namespace/:appId/:collection(/:id)?/?
var pathPattern = regexp.MustCompile(`^/([^/]+)/([^/]+)/([^/]+)(?:/([^/]+))?/?$`)

// PathParts is the result of parsing a Request's pathname against the
// resource-path grammar. Namespace and AppID are opaque; Collection is the
// logical name used for sync-queue keying.
type PathParts struct {
	Namespace  string
	AppID      string
	Collection string
	ID         string // empty when the path names a collection, not an entity
}

// ParsePath parses pathname against the grammar
// /:namespace/:appId/:collection(/:id)?/?. It returns InvalidInput when the
// path has too few segments to identify a collection.
func ParsePath(pathname string) (PathParts, error) {
	m := pathPattern.FindStringSubmatch(pathname)
	if m == nil {
		return PathParts{}, kerrors.New(kerrors.InvalidInput, "pathname does not match /:namespace/:appId/:collection(/:id)?: "+pathname)
	}
	return PathParts{
		Namespace:  m[1],
		AppID:      m[2],
		Collection: m[3],
		ID:         m[4],
	}, nil
}
