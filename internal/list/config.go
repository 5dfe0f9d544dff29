package list

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// 内置默认值：不提供配置文件时，生成行为与发布脚本保持一致
const (
	defaultBaseURL    = "https://raw.githubusercontent.com/v2fly/domain-list-community/master/data"
	defaultRoot       = "category-porn"
	defaultLocalDir   = "community/data"
	defaultExclude    = "ehentai"
	defaultOutputDir  = "PornSite"
	defaultOutputFile = "PornSite.list"
	defaultUserAgent  = "BoomList/1.0"
)

// Config 生成器配置
type Config struct {
	// 数据源配置
	Source struct {
		BaseURL   string `yaml:"base_url"`
		Root      string `yaml:"root"`
		LocalDir  string `yaml:"local_dir"`
		Timeout   int    `yaml:"timeout"`
		UserAgent string `yaml:"user_agent"`
		Exclude   string `yaml:"exclude"`
	} `yaml:"source"`

	// 输出配置
	Output struct {
		Dir  string `yaml:"dir"`
		File string `yaml:"file"`
	} `yaml:"output"`

	// 管理服务配置（serve 模式）
	Server struct {
		ListenHTTP string `yaml:"listen_http"`
		AdminToken string `yaml:"admin_token"`
		Interval   int    `yaml:"interval"`
	} `yaml:"server"`
}

// LoadConfig 加载配置文件；文件不存在时返回内置默认配置
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetBaseURL 获取远端数据仓库地址
func (c *Config) GetBaseURL() string {
	if c.Source.BaseURL == "" {
		return defaultBaseURL
	}
	return c.Source.BaseURL
}

// GetRoot 获取根分类文件名
func (c *Config) GetRoot() string {
	if c.Source.Root == "" {
		return defaultRoot
	}
	return c.Source.Root
}

// GetLocalDir 获取本地数据目录
func (c *Config) GetLocalDir() string {
	if c.Source.LocalDir == "" {
		return defaultLocalDir
	}
	return c.Source.LocalDir
}

// GetTimeout 获取远端拉取超时
func (c *Config) GetTimeout() time.Duration {
	if c.Source.Timeout <= 0 {
		return 30 * time.Second // 默认30秒
	}
	return time.Duration(c.Source.Timeout) * time.Second
}

// GetUserAgent 获取拉取用户代理
func (c *Config) GetUserAgent() string {
	if c.Source.UserAgent == "" {
		return defaultUserAgent
	}
	return c.Source.UserAgent
}

// GetExclude 获取排除子串（大小写不敏感匹配）
func (c *Config) GetExclude() string {
	if c.Source.Exclude == "" {
		return defaultExclude
	}
	return c.Source.Exclude
}

// GetOutputPath 获取输出文件完整路径
func (c *Config) GetOutputPath() string {
	dir := c.Output.Dir
	if dir == "" {
		dir = defaultOutputDir
	}
	file := c.Output.File
	if file == "" {
		file = defaultOutputFile
	}
	return filepath.Join(dir, file)
}

// GetListenHTTP 获取管理服务监听地址
func (c *Config) GetListenHTTP() string {
	if c.Server.ListenHTTP == "" {
		return ":8080"
	}
	return c.Server.ListenHTTP
}

// GetAdminToken 获取管理令牌；为空时跳过认证
func (c *Config) GetAdminToken() string {
	return c.Server.AdminToken
}

// GetInterval 获取 serve 模式下的重新生成间隔
func (c *Config) GetInterval() time.Duration {
	if c.Server.Interval <= 0 {
		return time.Hour // 默认1小时
	}
	return time.Duration(c.Server.Interval) * time.Second
}
