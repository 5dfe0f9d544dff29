package list

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winspan/boomlist/pkg/utils"
)

// testConfig 构造指向临时目录的配置，root 为根分类文件名
func testConfig(t *testing.T, root string, files map[string]string) *Config {
	t.Helper()

	dataDir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	for name, txt := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte(txt), 0644))
	}

	cfg := &Config{}
	cfg.Source.Root = root
	cfg.Source.LocalDir = dataDir
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	cfg.Output.File = "PornSite.list"
	return cfg
}

func runGenerator(cfg *Config) *Result {
	return NewGenerator(cfg, NewSource(cfg)).Run()
}

func TestGenerateEndToEnd(t *testing.T) {
	cfg := testConfig(t, "main", map[string]string{
		"main": "include:x\nfoo.com\n",
		"x":    "full:bar.com\n#comment\n",
	})

	res := runGenerator(cfg)

	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	assert.Equal(t, "# x\nDOMAIN,bar.com\n\n# others\nDOMAIN-SUFFIX,foo.com", string(data))

	assert.True(t, res.Written)
	assert.Equal(t, 2, res.TotalRules)
	assert.Equal(t, 5, res.Lines)
	assert.Equal(t, []string{"main", "x"}, res.Files)
	assert.Equal(t, utils.SHA256Hash(string(data)), res.Checksum)
	assert.Equal(t, []BlockStat{{Name: "x", Rules: 1}, {Name: "others", Rules: 1}}, res.Blocks)
	assert.Zero(t, res.InvalidDomains)
}

func TestGenerateGlobalDedup(t *testing.T) {
	cfg := testConfig(t, "main", map[string]string{
		"main": "include:a\ninclude:b\ndup.com\n",
		"a":    "dup.com\nonly-a.com\n",
		"b":    "dup.com\nonly-b.com\n",
	})

	res := runGenerator(cfg)

	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	doc := string(data)

	// 同一条规则在整份文档中只出现一次，包括跨分组与 others
	assert.Equal(t, 1, strings.Count(doc, "DOMAIN-SUFFIX,dup.com"))
	assert.Equal(t, 3, res.TotalRules)
	assert.Equal(t, []BlockStat{{Name: "a", Rules: 2}, {Name: "b", Rules: 1}, {Name: "others", Rules: 0}}, res.Blocks)
}

func TestGenerateSkipsMissingInclude(t *testing.T) {
	cfg := testConfig(t, "main", map[string]string{
		"main": "include:ehentai-list\ninclude:x\nfoo.com\n",
		"x":    "bar.com\n",
	})

	res := runGenerator(cfg)

	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	doc := string(data)

	// 排除名出现在 include 顺序里，但没有内容条目，不产生分组
	assert.NotContains(t, doc, "ehentai-list")
	assert.Equal(t, "# x\nDOMAIN-SUFFIX,bar.com\n\n# others\nDOMAIN-SUFFIX,foo.com", doc)
	assert.Equal(t, 1, res.SkippedIncludes)
}

func TestGenerateEmptyBlockKeepsHeader(t *testing.T) {
	cfg := testConfig(t, "main", map[string]string{
		"main":  "include:empty\nfoo.com\n",
		"empty": "# only comments here\n",
	})

	runGenerator(cfg)

	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	// 零规则分组仍然输出 头部+空行
	assert.Equal(t, "# empty\n\n# others\nDOMAIN-SUFFIX,foo.com", string(data))
}

func TestGenerateDuplicateIncludeDirectives(t *testing.T) {
	cfg := testConfig(t, "main", map[string]string{
		"main": "include:a\ninclude:a\n",
		"a":    "x.com\n",
	})

	runGenerator(cfg)

	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	// 第二个重复分组只剩头部：规则已被第一个分组吃掉
	assert.Equal(t, "# a\nDOMAIN-SUFFIX,x.com\n\n# a\n\n# others", string(data))
}

func TestGenerateMissingRoot(t *testing.T) {
	cfg := testConfig(t, "main", map[string]string{})

	res := runGenerator(cfg)

	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	// 根文件缺失降级为空内容：只有 others 头部
	assert.Equal(t, "# others", string(data))
	assert.Zero(t, res.TotalRules)
	assert.Equal(t, 1, res.Lines)
}

func TestGenerateRunTwiceSameOutput(t *testing.T) {
	cfg := testConfig(t, "main", map[string]string{
		"main": "include:x\nfoo.com\nadult\n",
		"x":    "full:bar.com\nregexp:skip.me\n",
	})

	r1 := runGenerator(cfg)
	d1, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)

	r2 := runGenerator(cfg)
	d2, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)

	assert.Equal(t, string(d1), string(d2))
	assert.Equal(t, r1.Checksum, r2.Checksum)
	assert.Equal(t, r1.TotalRules, r2.TotalRules)
}
