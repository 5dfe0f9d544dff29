package list

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSourceFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "category-x"), []byte("full:a.b\n"), 0644))

	s := &LocalSource{Dir: dir}

	assert.Equal(t, "full:a.b\n", s.Fetch("category-x"))
	// 缺失文件静默返回空串
	assert.Equal(t, "", s.Fetch("category-missing"))
}

func TestRemoteSourceFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/data/ok":
			_, _ = w.Write([]byte("full:a.b\n"))
		case "/data/garbled":
			// 无效 UTF-8 字节按丢弃处理，不报错
			_, _ = w.Write([]byte("good\xff\xfeline\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := &Config{}
	cfg.Source.BaseURL = srv.URL + "/data"
	s := NewRemoteSource(cfg)

	assert.Equal(t, "full:a.b\n", s.Fetch("ok"))
	assert.Equal(t, "BoomList/1.0", gotUA)
	assert.Equal(t, "goodline\n", s.Fetch("garbled"))
	assert.Equal(t, "", s.Fetch("missing"))
}

func TestRemoteSourceUnreachable(t *testing.T) {
	cfg := &Config{}
	cfg.Source.BaseURL = "http://127.0.0.1:1/data"
	cfg.Source.Timeout = 1
	s := NewRemoteSource(cfg)

	assert.Equal(t, "", s.Fetch("any"))
}

func TestNewSourceSelection(t *testing.T) {
	cfg := &Config{}
	cfg.Source.LocalDir = t.TempDir()
	_, ok := NewSource(cfg).(*LocalSource)
	assert.True(t, ok)

	cfg = &Config{}
	cfg.Source.LocalDir = filepath.Join(t.TempDir(), "does-not-exist")
	_, ok = NewSource(cfg).(*RemoteSource)
	assert.True(t, ok)
}
