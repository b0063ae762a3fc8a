package target

// Kind 定义目标表达式的类型
type Kind string

const (
	KindGlob        Kind = "glob"
	KindRegex       Kind = "pcre"
	KindList        Kind = "list"
	KindGrain       Kind = "grain"
	KindGrainRegex  Kind = "grain_pcre"
	KindPillar      Kind = "pillar"
	KindPillarRegex Kind = "pillar_pcre"
	KindIPCIDR      Kind = "ipcidr"
	KindNodeGroup   Kind = "nodegroup"
	KindCompound    Kind = "compound"
)

// Spec 表示一条解析后的目标表达式
// 解析完成后不可变，可以安全地并发使用
type Spec struct {
	Kind    Kind
	Pattern string
	// Delimiter 是 grain/pillar 系列键路径的分隔符
	Delimiter string
	// List 是 KindList 预先切分好的标识符集合
	List []string
}

// Candidate 表示待匹配的候选记录
// 属性由调用方（传输层）预先解析好之后同步传入
type Candidate struct {
	ID     string
	Grains map[string]interface{}
	Pillar map[string]interface{}
	// Addrs 是候选已知的 IP 地址（文本形式）
	Addrs []string
}
