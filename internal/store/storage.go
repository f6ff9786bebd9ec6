package store

// 持久化使用的三个逻辑键
const (
	KeyCustomers    = "btyCRM_customers"
	KeyConsumptions = "btyCRM_consumptions"
	KeyLastUpdated  = "btyCRM_lastUpdated"
)

// Storage 键值持久化端口
// 值作为整体读写，不做键内局部更新。
type Storage interface {
	// Get 读取键值，键不存在时 ok 为 false
	Get(key string) (value []byte, ok bool, err error)
	// Set 整体写入键值
	Set(key string, value []byte) error
	// Remove 删除键，键不存在不算错误
	Remove(key string) error
}
