package common

import (
	"os"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cast"
)

var snowflakeNode *snowflake.Node

func init() {
	var err error
	nodeid := cast.ToInt64(os.Getenv("CIXI_NODE_ID"))
	if nodeid <= 0 || nodeid > 1023 {
		nodeid = 1
	}
	snowflakeNode, err = snowflake.NewNode(nodeid)
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a cluster-unique int64 id.
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// IsEmptyOrNA reports whether the value carries no usable content.
func IsEmptyOrNA(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "n/a")
}

// FileExists checks a regular file path.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
