package list

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/winspan/boomlist/pkg/utils"
)

// BlockStat 单个输出分组的统计
type BlockStat struct {
	Name  string `json:"name"`
	Rules int    `json:"rules"`
}

// Result 一次生成的统计信息
type Result struct {
	GeneratedAt     time.Time     `json:"generated_at"`
	Duration        time.Duration `json:"duration"`
	Files           []string      `json:"files"`
	Blocks          []BlockStat   `json:"blocks"`
	TotalRules      int           `json:"total_rules"`
	Lines           int           `json:"lines"`
	SkippedIncludes int           `json:"skipped_includes"`
	InvalidDomains  int           `json:"invalid_domains"`
	Checksum        string        `json:"checksum"`
	OutputPath      string        `json:"output_path"`
	Written         bool          `json:"written"`
}

// Generator 清单生成器：遍历、转换、去重、分组写出
type Generator struct {
	cfg *Config
	src Source
}

// NewGenerator 创建生成器
func NewGenerator(cfg *Config, src Source) *Generator {
	return &Generator{cfg: cfg, src: src}
}

// Run 执行一次完整的生成流程。
// 所有数据源失败都已在 Source 层降级为空内容，Run 总是产出一份文档；
// 写出失败仅记录错误，不中断也不改变返回值以外的状态。
func (g *Generator) Run() *Result {
	start := time.Now()
	exclude := g.cfg.GetExclude()
	root := g.cfg.GetRoot()

	contents, order := NewResolver(g.src, exclude).LoadAll(root)
	rootTxt := contents[root]

	res := &Result{
		GeneratedAt: start,
		Files:       order,
		OutputPath:  g.cfg.GetOutputPath(),
	}

	seenRules := make(map[string]bool)
	var outLines []string

	// 第一遍：按根文件 include 的原始顺序输出分组。
	// 排除名没有内容条目，直接跳过，不产生分组也不报错。
	for _, inc := range includeOrderOf(rootTxt) {
		txt, ok := contents[inc]
		if !ok {
			res.SkippedIncludes++
			continue
		}
		outLines = append(outLines, "# "+inc)
		count := 0
		for _, line := range strings.Split(txt, "\n") {
			rule, ok := Transform(line, exclude)
			if !ok || seenRules[rule] {
				continue
			}
			seenRules[rule] = true
			outLines = append(outLines, rule)
			count++
		}
		outLines = append(outLines, "")
		res.Blocks = append(res.Blocks, BlockStat{Name: inc, Rules: count})
	}

	// 第二遍：根文件自身的规则归入 others 分组，沿用同一个去重集合
	outLines = append(outLines, "# others")
	count := 0
	for _, line := range strings.Split(rootTxt, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), includePrefix) {
			continue
		}
		rule, ok := Transform(line, exclude)
		if !ok || seenRules[rule] {
			continue
		}
		seenRules[rule] = true
		outLines = append(outLines, rule)
		count++
	}
	res.Blocks = append(res.Blocks, BlockStat{Name: "others", Rules: count})

	res.TotalRules = len(seenRules)
	res.Lines = len(outLines)
	res.InvalidDomains = countInvalidDomains(seenRules)

	doc := strings.Join(outLines, "\n")
	res.Checksum = utils.SHA256Hash(doc)
	res.Written = g.write(doc, res.Lines)
	res.Duration = time.Since(start)

	runsTotal.Inc()
	rulesTotal.Set(float64(res.TotalRules))
	for _, b := range res.Blocks {
		blockRules.WithLabelValues(b.Name).Set(float64(b.Rules))
	}
	lastGenerated.SetToCurrentTime()

	return res
}

// write 写出最终文档，必要时创建输出目录；失败仅记录错误
func (g *Generator) write(doc string, lines int) bool {
	path := g.cfg.GetOutputPath()
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		log.Printf("error writing %s: %v", path, err)
		return false
	}
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		log.Printf("error writing %s: %v", path, err)
		return false
	}
	log.Printf("wrote %s (%d lines)", path, lines)
	return true
}

// includeOrderOf 提取根文件 include 指令的原始顺序。
// 不去重也不过滤排除名：重复名在第一遍产出空分组，
// 排除名因为没有内容条目被第一遍跳过。
func includeOrderOf(txt string) []string {
	var order []string
	for _, line := range strings.Split(txt, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, includePrefix) {
			continue
		}
		if inc := strings.TrimSpace(line[len(includePrefix):]); inc != "" {
			order = append(order, inc)
		}
	}
	return order
}

// countInvalidDomains 统计形态可疑的域名取值，仅用于告警和统计，
// 不回写输出：转换规则是固定的，输出内容不依赖校验结果
func countInvalidDomains(rules map[string]bool) int {
	n := 0
	for rule := range rules {
		i := strings.Index(rule, ",")
		if i < 0 || rule[:i] == ruleKeyword {
			continue
		}
		if _, ok := mdns.IsDomainName(rule[i+1:]); !ok {
			n++
		}
	}
	if n > 0 {
		log.Printf("warning: %d rules carry values that do not look like domain names", n)
	}
	return n
}

var (
	runsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "boomlist_runs_total",
			Help: "Total list generation runs",
		},
	)
	fetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "boomlist_fetch_failures_total",
			Help: "Total source fetch/read failures",
		},
	)
	rulesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "boomlist_rules_total",
			Help: "Rules emitted by the last generation run",
		},
	)
	blockRules = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "boomlist_block_rules",
			Help: "Rules emitted per output block by the last run",
		},
		[]string{"block"},
	)
	lastGenerated = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "boomlist_last_generate_timestamp_seconds",
			Help: "Unix time of the last generation run",
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotal, fetchFailures, rulesTotal, blockRules, lastGenerated)
}
