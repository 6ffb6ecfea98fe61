package persistence

import (
	"errors"
	"io/fs"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cache_Read(t *testing.T) {
	t.Parallel()

	errDummy := errors.New("dummy")

	testCases := map[string]struct {
		data       []byte
		readErr    error
		ip         netip.Addr
		errWrapped error
		errMessage string
	}{
		"file does not exist": {
			readErr: fs.ErrNotExist,
		},
		"empty file": {
			data: []byte(" \n"),
		},
		"ipv4 address": {
			data: []byte("203.0.113.7\n"),
			ip:   netip.MustParseAddr("203.0.113.7"),
		},
		"ipv6 address": {
			data: []byte("2001:db8::1"),
			ip:   netip.MustParseAddr("2001:db8::1"),
		},
		"malformed content": {
			data:       []byte("not an ip"),
			errWrapped: ErrCacheMalformed,
			errMessage: `cached IP address is malformed: ParseAddr("not an ip"): unable to parse IP`,
		},
		"read error": {
			readErr:    errDummy,
			errWrapped: errDummy,
			errMessage: "reading cache file: dummy",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cache := &Cache{
				filepath: "/cache/ip",
				readFile: func(filename string) ([]byte, error) {
					assert.Equal(t, "/cache/ip", filename)
					return testCase.data, testCase.readErr
				},
			}

			ip, err := cache.Read()

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.ip, ip)
		})
	}
}

func Test_Cache_Write(t *testing.T) {
	t.Parallel()

	errDummy := errors.New("dummy")

	t.Run("write error", func(t *testing.T) {
		t.Parallel()

		cache := &Cache{
			filepath: "/cache/ip",
			mkdirAll: func(path string, _ fs.FileMode) error {
				assert.Equal(t, "/cache", path)
				return nil
			},
			writeFile: func(filename string, data []byte, _ fs.FileMode) error {
				assert.Equal(t, "/cache/ip.tmp", filename)
				assert.Equal(t, "203.0.113.7\n", string(data))
				return errDummy
			},
		}

		err := cache.Write(netip.MustParseAddr("203.0.113.7"))

		assert.ErrorIs(t, err, errDummy)
		assert.EqualError(t, err, "writing cache file: dummy")
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data", "last_ip.txt")
		cache := NewCache(path)

		ip, err := cache.Read()
		require.NoError(t, err)
		assert.False(t, ip.IsValid())

		expectedIP := netip.MustParseAddr("198.51.100.23")
		err = cache.Write(expectedIP)
		require.NoError(t, err)

		ip, err = cache.Read()
		require.NoError(t, err)
		assert.Equal(t, expectedIP, ip)

		_, err = os.Stat(path + ".tmp")
		assert.ErrorIs(t, err, fs.ErrNotExist)

		nextIP := netip.MustParseAddr("2001:db8::7")
		err = cache.Write(nextIP)
		require.NoError(t, err)

		ip, err = cache.Read()
		require.NoError(t, err)
		assert.Equal(t, nextIP, ip)
	})
}
