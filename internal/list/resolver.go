package list

import "strings"

const includePrefix = "include:"

// Resolver 递归解析 include 指令，收集全部分类文件内容
type Resolver struct {
	src     Source
	exclude string
}

// NewResolver 创建解析器；exclude 为排除子串，匹配时大小写不敏感
func NewResolver(src Source, exclude string) *Resolver {
	return &Resolver{src: src, exclude: strings.ToLower(exclude)}
}

// LoadAll 从根文件开始广度优先遍历 include 图。
// 返回 文件名->原始文本 映射与遍历顺序；每个文件至多读取一次，
// 命中排除子串的文件名不入队。visited 集合保证图中即使存在环也能终止。
func (r *Resolver) LoadAll(root string) (map[string]string, []string) {
	queue := []string{root}
	seen := make(map[string]bool)
	contents := make(map[string]string)
	var order []string

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		txt := r.src.Fetch(name)
		contents[name] = txt
		order = append(order, name)

		for _, line := range strings.Split(txt, "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, includePrefix) {
				continue
			}
			inc := strings.TrimSpace(line[len(includePrefix):])
			if inc == "" || seen[inc] {
				continue
			}
			if r.exclude != "" && strings.Contains(strings.ToLower(inc), r.exclude) {
				continue
			}
			queue = append(queue, inc)
		}
	}

	return contents, order
}
