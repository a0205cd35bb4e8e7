// storage.go
package s3

import (
	"path"

	"filedesk/internal/service"
)

var _ service.ContentStore = (*Client)(nil)

const defaultPrefix = "filedesk"

// objectKey строит ключ объекта: <prefix>/<workspace>/<file>
func objectKey(prefix, key string) string {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return path.Join(prefix, key)
}
