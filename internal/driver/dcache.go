package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"verdant/internal/serial"
	"verdant/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// Digest keys a tree in the disk cache.
type Digest [32]byte

// DiskCache хранит готовые зелёные деревья по хешу содержимого файла.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached tree.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	// Path the tree was first parsed from; informational only
	Path string
	Root serial.Tree
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// DiskKey mixes everything that changes the tree built from a file: its
// bytes, the predefined symbols, the error cap and the stream version.
func DiskKey(file *source.File, defines []string, maxErrors uint) Digest {
	h := sha256.New()
	var hdr [10]byte
	binary.LittleEndian.PutUint16(hdr[:2], serial.Version)
	binary.LittleEndian.PutUint64(hdr[2:], uint64(maxErrors))
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(file.Hash[:])
	sorted := slices.Clone(defines)
	slices.Sort(sorted)
	for _, d := range sorted {
		_, _ = h.Write([]byte(d))
		_, _ = h.Write([]byte{0})
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не плодить тысячи файлов в одном месте
	return filepath.Join(c.dir, "trees", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err = enc.Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A corrupt entry
// is removed and reported as a miss along with the error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		c.mu.RUnlock()
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	dec := msgpack.NewDecoder(f)
	decErr := dec.Decode(out)
	_ = f.Close()
	c.mu.RUnlock()

	if decErr != nil {
		c.mu.Lock()
		_ = os.Remove(p)
		c.mu.Unlock()
		return false, decErr
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
