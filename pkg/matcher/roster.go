package matcher

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"miniontgt/pkg/target"
)

// rosterEntry 花名册里单个候选的属性记录
type rosterEntry struct {
	Grains map[string]interface{} `yaml:"grains"`
	Pillar map[string]interface{} `yaml:"pillar"`
	Addrs  []string               `yaml:"addrs"`
}

// LoadRoster 从 YAML 文件加载候选记录
// 文件是 id -> 属性 的映射，返回值按 ID 排序保证输出稳定
func LoadRoster(filePath string) ([]*target.Candidate, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var entries map[string]rosterEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal roster: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	candidates := make([]*target.Candidate, 0, len(ids))
	for _, id := range ids {
		entry := entries[id]
		candidates = append(candidates, &target.Candidate{
			ID:     id,
			Grains: entry.Grains,
			Pillar: entry.Pillar,
			Addrs:  entry.Addrs,
		})
	}

	return candidates, nil
}
