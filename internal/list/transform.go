package list

import "strings"

// 输出规则类型，对应 Surge/Clash 的域名匹配规则
const (
	ruleDomain  = "DOMAIN"
	ruleSuffix  = "DOMAIN-SUFFIX"
	ruleKeyword = "DOMAIN-KEYWORD"
)

const (
	fullPrefix   = "full:"
	regexpPrefix = "regexp:"
)

// Transform 将数据集中的一行转换为一条输出规则，纯函数。
// ok=false 表示该行丢弃：空行、注释、include 指令、regexp 类型规则，
// 以及命中排除子串（大小写不敏感）的行。前缀关键字本身按字面匹配。
func Transform(line, exclude string) (string, bool) {
	l := strings.TrimSpace(line)
	if l == "" || strings.HasPrefix(l, "#") {
		return "", false
	}
	if strings.HasPrefix(l, includePrefix) {
		return "", false
	}
	if strings.HasPrefix(l, regexpPrefix) {
		return "", false
	}
	if exclude != "" && strings.Contains(strings.ToLower(l), strings.ToLower(exclude)) {
		return "", false
	}

	if strings.HasPrefix(l, fullPrefix) {
		v := strings.TrimSpace(l[len(fullPrefix):])
		if strings.Contains(v, ".") {
			return ruleDomain + "," + v, true
		}
		return ruleKeyword + "," + v, true
	}

	// 普通条目：带点按后缀规则，不带点按关键字规则
	if strings.Contains(l, ".") {
		return ruleSuffix + "," + l, true
	}
	return ruleKeyword + "," + l, true
}
