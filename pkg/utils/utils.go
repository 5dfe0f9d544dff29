package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
)

// StringUtils 字符串工具函数
type StringUtils struct{}

// IsEmpty 检查字符串是否为空
func (s *StringUtils) IsEmpty(str string) bool {
	return strings.TrimSpace(str) == ""
}

// IsNotEmpty 检查字符串是否非空
func (s *StringUtils) IsNotEmpty(str string) bool {
	return !s.IsEmpty(str)
}

// FileUtils 文件工具函数
type FileUtils struct{}

// EnsureDir 确保目录存在
func (f *FileUtils) EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists 检查文件是否存在
func (f *FileUtils) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDir 检查路径是否为目录
func (f *FileUtils) IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// CryptoUtils 加密工具函数
type CryptoUtils struct{}

// SHA256Hash 计算 SHA256 哈希
func (c *CryptoUtils) SHA256Hash(data string) string {
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// 全局工具实例
var (
	String = &StringUtils{}
	File   = &FileUtils{}
	Crypto = &CryptoUtils{}
)

// 便捷函数
func IsEmpty(str string) bool {
	return String.IsEmpty(str)
}

func IsNotEmpty(str string) bool {
	return String.IsNotEmpty(str)
}

func EnsureDir(path string) error {
	return File.EnsureDir(path)
}

func FileExists(path string) bool {
	return File.FileExists(path)
}

func SHA256Hash(data string) string {
	return Crypto.SHA256Hash(data)
}
