package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
)

// Cache stores the last public IP address successfully
// propagated, as plain text in a single file.
type Cache struct {
	filepath  string
	readFile  func(filename string) ([]byte, error)
	writeFile func(filename string, data []byte, perm fs.FileMode) (err error)
	mkdirAll  func(path string, perm fs.FileMode) error
	rename    func(oldpath, newpath string) error
}

func NewCache(filepath string) *Cache {
	return &Cache{
		filepath:  filepath,
		readFile:  os.ReadFile,
		writeFile: os.WriteFile,
		mkdirAll:  os.MkdirAll,
		rename:    os.Rename,
	}
}

func (c *Cache) String() string {
	return c.filepath
}

var ErrCacheMalformed = errors.New("cached IP address is malformed")

// Read returns the cached IP address, or the zero address
// if the file does not exist or is empty.
func (c *Cache) Read() (ip netip.Addr, err error) {
	data, err := c.readFile(c.filepath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return netip.Addr{}, nil
		}
		return netip.Addr{}, fmt.Errorf("reading cache file: %w", err)
	}

	s := strings.TrimSpace(string(data))
	if s == "" {
		return netip.Addr{}, nil
	}

	ip, err = netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %w", ErrCacheMalformed, err)
	}
	return ip.Unmap(), nil
}

// Write overwrites the cache file with the IP address given.
func (c *Cache) Write(ip netip.Addr) (err error) {
	const dirPerm = fs.FileMode(0o700)
	err = c.mkdirAll(filepath.Dir(c.filepath), dirPerm)
	if err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	temporaryPath := c.filepath + ".tmp"
	const filePerm = fs.FileMode(0o600)
	err = c.writeFile(temporaryPath, []byte(ip.String()+"\n"), filePerm)
	if err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}

	err = c.rename(temporaryPath, c.filepath)
	if err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}
