package gemini

import (
	"net/url"
	"strings"
)

const (
	storePrefix     = "fileSearchStores/"
	documentsInfix  = "/documents/"
	operationPrefix = "operations/"
)

// StoreName turns a store id into a resource name. The id is path-escaped,
// so characters such as '?', '#' or '/' cannot leave the store segment.
// Names that already carry the prefix keep it.
func StoreName(id string) string {
	return storePrefix + url.PathEscape(strings.TrimPrefix(id, storePrefix))
}

// DocumentName builds "fileSearchStores/{store}/documents/{doc}" from a store
// resource name as returned by StoreName. Only the document id is escaped.
func DocumentName(storeName, documentID string) string {
	return strings.TrimSuffix(storeName, "/") + documentsInfix + url.PathEscape(documentID)
}

// OperationName accepts a full operation resource name
// (fileSearchStores/x/operations/y or operations/y) or a bare id. Each
// segment is escaped on its own.
func OperationName(name string) string {
	name = strings.Trim(name, "/")
	if !strings.Contains(name, "/") {
		return operationPrefix + url.PathEscape(name)
	}
	segments := strings.Split(name, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
