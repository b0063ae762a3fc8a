package path

// DefaultDelimiter 键路径的默认分隔符
const DefaultDelimiter = ":"

// Segment 表示键路径的一个片段
type Segment struct {
	Key     string
	Index   int  // 列表下标，仅 IsIndex 为 true 时有效
	IsIndex bool // 片段是否为纯数字下标
}

// Path 表示解析后的完整键路径
type Path struct {
	Segments  []*Segment
	Delimiter string
}

// MatchMode 表示叶子值的比较方式
type MatchMode int

const (
	MatchGlob  MatchMode = iota // shell 通配符匹配
	MatchRegex                  // 正则搜索匹配
	MatchExact                  // 精确相等
)

// notFound 路径不存在时的哨兵类型
// 与"找到了但不匹配"严格区分，便于错误报告
type notFound struct{}

// NotFound 表示路径在数据中不存在
var NotFound = notFound{}

// IsNotFound 判断 Traverse 的返回值是否为不存在哨兵
func IsNotFound(v interface{}) bool {
	_, ok := v.(notFound)
	return ok
}
