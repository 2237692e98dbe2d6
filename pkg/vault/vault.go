// Package vault reads scene records out of a directory of markdown notes
// with YAML frontmatter.
package vault

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/scenecal/pkg/scene"
)

// RecordSource is the narrow query surface the calendar depends on. The
// concrete vault adapter lives behind it so the core stays testable with
// fakes.
type RecordSource interface {
	QueryAll(ctx context.Context) ([]scene.Record, error)
	QueryByFolder(ctx context.Context, scope string) ([]scene.Record, error)
	InvalidateCache()
}

// Vault is a RecordSource over a directory tree of .md files.
type Vault struct {
	root  string
	cache *metaCache
	debug io.Writer
}

// New opens a vault rooted at the configured path. A missing directory is
// not an error; queries against it return an empty record set so the
// calendar still renders.
func New(cfg Config) (*Vault, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	debug := io.Discard
	if cfg.Debug() {
		debug = os.Stderr
	}

	v := &Vault{
		root:  cfg.VaultPath(),
		debug: debug,
	}
	if base, err := os.UserCacheDir(); err == nil {
		v.cache = newMetaCache(filepath.Join(base, "scenecal"))
	} else {
		v.debugf("vault: no cache dir: %v", err)
	}
	return v, nil
}

// Root returns the vault's root directory.
func (v *Vault) Root() string { return v.root }

// QueryAll walks the whole vault.
func (v *Vault) QueryAll(ctx context.Context) ([]scene.Record, error) {
	return v.walk(ctx, v.root)
}

// QueryByFolder walks only the given folder scope within the vault. A
// quoted scope is accepted and unwrapped.
func (v *Vault) QueryByFolder(ctx context.Context, scope string) ([]scene.Record, error) {
	scope = strings.Trim(strings.TrimSpace(scope), `"`)
	if scope == "" {
		return v.walk(ctx, v.root)
	}
	clean := filepath.Clean(scope)
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return nil, fmt.Errorf("vault: scope %q escapes the vault", scope)
	}
	return v.walk(ctx, filepath.Join(v.root, clean))
}

// InvalidateCache drops the parsed-frontmatter cache. The next query
// re-reads every note from disk.
func (v *Vault) InvalidateCache() {
	if v.cache != nil {
		v.cache.invalidate()
	}
}

func (v *Vault) walk(ctx context.Context, dir string) ([]scene.Record, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			v.debugf("vault: %s missing, rendering empty", dir)
			return nil, nil
		}
		return nil, err
	}

	var records []scene.Record
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			v.debugf("vault: walk %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if name := d.Name(); strings.HasPrefix(name, ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		// Per-note isolation: a broken note never aborts the walk.
		record, err := v.readNote(path)
		if err != nil {
			v.debugf("vault: %s: %v", path, err)
			return nil
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (v *Vault) readNote(path string) (scene.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return scene.Record{}, err
	}
	if v.cache != nil {
		if record, ok := v.cache.get(path, info.ModTime()); ok {
			return record, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Record{}, err
	}
	fields, err := splitFrontmatter(data)
	if err != nil {
		return scene.Record{}, err
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	record := scene.FromFrontmatter(path, title, fields)
	if v.cache != nil {
		v.cache.put(path, info.ModTime(), record)
	}
	return record, nil
}

// Body returns the markdown content of a note with its frontmatter block
// stripped, for preview rendering.
func (v *Vault) Body(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(stripFrontmatter(data)), nil
}

const frontmatterFence = "---"

// splitFrontmatter extracts the YAML block between the leading fences.
// Notes without frontmatter yield an empty field map.
func splitFrontmatter(data []byte) (map[string]any, error) {
	block, _ := frontmatterBlock(data)
	if block == nil {
		return map[string]any{}, nil
	}
	fields := make(map[string]any)
	if err := yaml.Unmarshal(block, &fields); err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}
	return fields, nil
}

func stripFrontmatter(data []byte) []byte {
	if _, rest := frontmatterBlock(data); rest != nil {
		return rest
	}
	return data
}

// frontmatterBlock returns the raw YAML between the fences and the content
// after the closing fence, or nil/nil when the note has no frontmatter.
func frontmatterBlock(data []byte) (block, rest []byte) {
	trimmed := bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // BOM
	lines := bytes.SplitAfter(trimmed, []byte("\n"))
	if len(lines) == 0 || strings.TrimRight(string(lines[0]), "\r\n") != frontmatterFence {
		return nil, nil
	}
	offset := len(lines[0])
	for _, line := range lines[1:] {
		if strings.TrimRight(string(line), "\r\n") == frontmatterFence {
			return trimmed[len(lines[0]):offset], trimmed[offset+len(line):]
		}
		offset += len(line)
	}
	return nil, nil
}

func (v *Vault) debugf(format string, args ...any) {
	if v.debug == nil {
		return
	}
	fmt.Fprintf(v.debug, format+"\n", args...)
}
