package snowflake

import (
	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenID 生成按时间递增的 ID
func GenID() int64 {
	return node.Generate().Int64()
}

// GenTempID 生成客户端占位 ID，格式 temp-<snowflake>
func GenTempID() string {
	return TempPrefix + node.Generate().String()
}

const TempPrefix = "temp-"
