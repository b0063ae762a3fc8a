package nodegroup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	t.Parallel()

	table, err := FromConfig(map[string]interface{}{
		"webservers": "G@os:Debian and web*",
		// 普通节点名清单折叠成 L@ 列表
		"staging": []interface{}{"web1", "web2", "db1"},
		// 含操作符或前缀的列表按词拼回表达式
		"mixed":  []interface{}{"G@os:Debian", "or", "db*"},
		"single": []interface{}{"N@webservers"},
	})
	require.NoError(t, err)

	assert.Equal(t, Table{
		"webservers": "G@os:Debian and web*",
		"staging":    "L@web1,web2,db1",
		"mixed":      "G@os:Debian or db*",
		"single":     "N@webservers",
	}, table)
}

func TestFromConfig_Errors(t *testing.T) {
	t.Parallel()

	_, err := FromConfig(map[string]interface{}{
		"bad-type":  42,
		"bad-empty": "",
		"good":      "web*",
	})
	require.Error(t, err)
	// 非法条目一次性全部报出
	assert.Contains(t, err.Error(), "bad-type")
	assert.Contains(t, err.Error(), "bad-empty")

	_, err = FromConfig(map[string]interface{}{
		"bad-list": []interface{}{"web1", 7},
	})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	config := `
interface: 0.0.0.0
nodegroups:
  debs: 'G@os:Debian'
  frontend:
    - web1
    - web2
`
	file := filepath.Join(t.TempDir(), "master.yaml")
	require.NoError(t, os.WriteFile(file, []byte(config), 0644))

	table, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, Table{
		"debs":     "G@os:Debian",
		"frontend": "L@web1,web2",
	}, table)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
