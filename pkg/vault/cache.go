package vault

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/scenecal/pkg/scene"
)

// metaCache keeps parsed frontmatter on disk keyed by note path and mtime,
// so unchanged notes are not re-parsed on every refresh. It is purely
// derived state; dropping it at any time only costs a re-parse.
type metaCache struct {
	d *diskv.Diskv
}

func newMetaCache(basePath string) *metaCache {
	return &metaCache{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// cacheKey folds path and mtime together; touching a note naturally expires
// its old entry.
func cacheKey(path string, mtime time.Time) string {
	sum := md5.Sum([]byte(path))
	return fmt.Sprintf("%x-%d", sum[:8], mtime.UnixNano())
}

func (c *metaCache) get(path string, mtime time.Time) (scene.Record, bool) {
	data, err := c.d.Read(cacheKey(path, mtime))
	if err != nil {
		return scene.Record{}, false
	}
	var record scene.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return scene.Record{}, false
	}
	return record, true
}

func (c *metaCache) put(path string, mtime time.Time, record scene.Record) {
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	_ = c.d.Write(cacheKey(path, mtime), data)
}

func (c *metaCache) invalidate() {
	_ = c.d.EraseAll()
}
