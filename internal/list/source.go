package list

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/winspan/boomlist/pkg/utils"
)

// Source 按名称提供分类文件的原始文本。
// 任何读取失败都返回空串：上层以空内容继续处理，不中断生成。
type Source interface {
	Fetch(name string) string
}

// NewSource 根据本地数据目录是否存在选择数据源，启动时确定一次
func NewSource(cfg *Config) Source {
	dir := cfg.GetLocalDir()
	if utils.File.IsDir(dir) {
		log.Printf("using local community data at %s", dir)
		return &LocalSource{Dir: dir}
	}
	log.Printf("local community data not found; fetching remote files")
	return NewRemoteSource(cfg)
}

// LocalSource 从本地目录读取分类文件
type LocalSource struct {
	Dir string
}

// Fetch 读取本地文件；文件不存在时静默返回空串
func (s *LocalSource) Fetch(name string) string {
	path := filepath.Join(s.Dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fetchFailures.Inc()
			log.Printf("warning: failed to read %s: %v", path, err)
		}
		return ""
	}
	return strings.ToValidUTF8(string(data), "")
}

// RemoteSource 从远端数据仓库按文件名拉取
type RemoteSource struct {
	baseURL   string
	userAgent string
	httpc     *http.Client
}

// NewRemoteSource 创建远端数据源
func NewRemoteSource(cfg *Config) *RemoteSource {
	return &RemoteSource{
		baseURL:   cfg.GetBaseURL(),
		userAgent: cfg.GetUserAgent(),
		httpc:     &http.Client{Timeout: cfg.GetTimeout()},
	}
}

// Fetch 拉取远端文件；编码损坏的字节按丢弃处理
func (s *RemoteSource) Fetch(name string) string {
	url := s.baseURL + "/" + name

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		fetchFailures.Inc()
		log.Printf("warning: failed to fetch %s: %v", url, err)
		return ""
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpc.Do(req)
	if err != nil {
		fetchFailures.Inc()
		log.Printf("warning: failed to fetch %s: %v", url, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fetchFailures.Inc()
		log.Printf("warning: failed to fetch %s: HTTP %d", url, resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fetchFailures.Inc()
		log.Printf("warning: failed to fetch %s: %v", url, err)
		return ""
	}

	return strings.ToValidUTF8(string(body), "")
}
