package nodegroup

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Table 节点组表：名字 -> 复合表达式串
// 从 master 配置加载一次，之后只读
type Table map[string]string

// masterConfig 表示 master 配置文件里我们关心的部分
type masterConfig struct {
	NodeGroups map[string]interface{} `yaml:"nodegroups"`
}

// Load 从 master 配置文件加载节点组表
func Load(filePath string) (Table, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var config masterConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return FromConfig(config.NodeGroups)
}

// FromConfig 把原始 nodegroups 映射规整成节点组表
// 所有非法条目一次性汇总报出，而不是碰到第一个就停
func FromConfig(raw map[string]interface{}) (Table, error) {
	table := Table{}
	var errs *multierror.Error

	for name, value := range raw {
		expr, err := normalize(value)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("nodegroup '%s': %w", name, err))
			continue
		}
		table[name] = expr
	}

	return table, errs.ErrorOrNil()
}

// normalize 把字符串或字符串列表的组定义规整成一条复合表达式
// 不含操作符、前缀和通配符的列表视为节点名清单，折叠成 L@ 列表
func normalize(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", fmt.Errorf("empty expression")
		}
		return v, nil

	case []interface{}:
		words := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return "", fmt.Errorf("list entries must be strings, got %T", item)
			}
			words = append(words, s)
		}
		if len(words) == 0 {
			return "", fmt.Errorf("empty expression")
		}
		if plainNames(words) {
			return "L@" + strings.Join(words, ","), nil
		}
		return strings.Join(words, " "), nil

	default:
		return "", fmt.Errorf("must be a string or a list of strings, got %T", value)
	}
}

// plainNames 判断一组词是否只是普通节点名
func plainNames(words []string) bool {
	for _, w := range words {
		switch strings.ToLower(w) {
		case "and", "or", "not", "(", ")":
			return false
		}
		if strings.ContainsAny(w, "*?[") {
			return false
		}
		if len(w) >= 2 && w[1] == '@' && w[0] >= 'A' && w[0] <= 'Z' {
			return false
		}
	}
	return true
}
