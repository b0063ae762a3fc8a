package target

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/gobwas/glob"

	"miniontgt/pkg/path"
)

var navigator = &path.Navigator{}

// Match 判断候选是否命中目标表达式
// 仅处理叶子类型；nodegroup/compound 由复合求值器展开后再落回这里
func (s *Spec) Match(c *Candidate) (bool, error) {
	switch s.Kind {
	case KindGlob:
		g, err := glob.Compile(s.Pattern)
		if err != nil {
			return false, fmt.Errorf("compile glob '%s': %w", s.Pattern, err)
		}
		return g.Match(c.ID), nil

	case KindRegex:
		re, err := regexp2.Compile(s.Pattern, regexp2.None)
		if err != nil {
			return false, fmt.Errorf("compile regex '%s': %w", s.Pattern, err)
		}
		// 非锚定搜索：模式命中 ID 任意位置即算匹配
		return re.MatchString(c.ID)

	case KindList:
		for _, id := range s.List {
			if id == c.ID {
				return true, nil
			}
		}
		return false, nil

	case KindGrain:
		return navigator.Match(c.Grains, s.Pattern, s.Delimiter, path.MatchGlob)

	case KindGrainRegex:
		return navigator.Match(c.Grains, s.Pattern, s.Delimiter, path.MatchRegex)

	case KindPillar:
		return navigator.Match(c.Pillar, s.Pattern, s.Delimiter, path.MatchGlob)

	case KindPillarRegex:
		return navigator.Match(c.Pillar, s.Pattern, s.Delimiter, path.MatchRegex)

	case KindIPCIDR:
		return s.matchIPCIDR(c)

	default:
		return false, fmt.Errorf("target type '%s' requires the compound evaluator", s.Kind)
	}
}

// matchIPCIDR 检查候选的任一已知地址是否落在块内
// 裸地址按精确相等处理
func (s *Spec) matchIPCIDR(c *Candidate) (bool, error) {
	addrs := c.ipAddrs()

	if strings.Contains(s.Pattern, "/") {
		pfx, err := netip.ParsePrefix(s.Pattern)
		if err != nil {
			return false, fmt.Errorf("parse CIDR '%s': %w", s.Pattern, err)
		}
		for _, a := range addrs {
			if pfx.Contains(a.Unmap()) {
				return true, nil
			}
		}
		return false, nil
	}

	want, err := netip.ParseAddr(s.Pattern)
	if err != nil {
		return false, fmt.Errorf("parse address '%s': %w", s.Pattern, err)
	}
	for _, a := range addrs {
		if a.Unmap() == want.Unmap() {
			return true, nil
		}
	}
	return false, nil
}

// ipAddrs 汇总候选的已知地址：显式 Addrs 加上 ipv4/ipv6 grains
// 无法解析的条目直接跳过
func (c *Candidate) ipAddrs() []netip.Addr {
	var out []netip.Addr
	add := func(s string) {
		if a, err := netip.ParseAddr(strings.TrimSpace(s)); err == nil {
			out = append(out, a)
		}
	}

	for _, s := range c.Addrs {
		add(s)
	}
	for _, key := range []string{"ipv4", "ipv6"} {
		v, ok := c.Grains[key]
		if !ok {
			continue
		}
		switch vv := v.(type) {
		case []interface{}:
			for _, item := range vv {
				add(fmt.Sprint(item))
			}
		case string:
			add(vv)
		}
	}
	return out
}
