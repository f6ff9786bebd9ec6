package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"beautycrm/internal/model"
	"beautycrm/internal/parser"
)

// DataStore 数据存储服务
// 独占持有客户与消费记录两个集合；每次保存都整体读改写三个持久化键。
// 引擎内部不做并发导入的协调，连续两次导入之间的读改写竞争由调用方负责避免。
type DataStore struct {
	storage Storage
	logger  *zap.Logger

	mu           sync.RWMutex
	customers    []*model.Customer
	consumptions []*model.Consumption
	lastUpdated  string
}

// NewDataStore 创建数据存储服务并从持久化存储加载数据
func NewDataStore(storage Storage, logger *zap.Logger) (*DataStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DataStore{
		storage:      storage,
		logger:       logger,
		customers:    []*model.Customer{},
		consumptions: []*model.Consumption{},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load 从持久化存储加载全部集合
func (s *DataStore) load() error {
	if data, ok, err := s.storage.Get(KeyCustomers); err != nil {
		return fmt.Errorf("load customers failed: %w", err)
	} else if ok {
		if err := json.Unmarshal(data, &s.customers); err != nil {
			return fmt.Errorf("decode customers failed: %w", err)
		}
	}

	if data, ok, err := s.storage.Get(KeyConsumptions); err != nil {
		return fmt.Errorf("load consumptions failed: %w", err)
	} else if ok {
		if err := json.Unmarshal(data, &s.consumptions); err != nil {
			return fmt.Errorf("decode consumptions failed: %w", err)
		}
	}

	if data, ok, err := s.storage.Get(KeyLastUpdated); err != nil {
		return fmt.Errorf("load lastUpdated failed: %w", err)
	} else if ok {
		s.lastUpdated = string(data)
	}

	s.logger.Info("数据存储初始化完成",
		zap.Int("customers", len(s.customers)),
		zap.Int("consumptions", len(s.consumptions)),
		zap.String("lastUpdated", s.lastUpdated))
	return nil
}

// SaveData 保存分类后的导入数据
// merge 为 true 时与现有数据合并（客户按ID去重合并，消费记录按自然键去重，
// 重复导入同一文件是幂等的）；为 false 时整体覆盖现有集合。
func (s *DataStore) SaveData(data *model.ClassifiedData, merge bool) (*model.SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("开始保存数据",
		zap.Int("customers", len(data.Customers)),
		zap.Int("consumptions", len(data.Consumptions)),
		zap.Bool("merge", merge))

	if merge {
		s.mergeCustomers(data.Customers)
		s.mergeConsumptions(data.Consumptions)
	} else {
		// 覆盖模式；集合由 Store 独占持有，不共享调用方切片
		s.customers = append([]*model.Customer{}, data.Customers...)
		s.consumptions = append([]*model.Consumption{}, data.Consumptions...)
	}

	now := time.Now().Format(time.RFC3339)
	s.lastUpdated = now

	if err := s.persist(); err != nil {
		return nil, err
	}

	s.logger.Info("数据保存成功",
		zap.Int("totalCustomers", len(s.customers)),
		zap.Int("totalConsumptions", len(s.consumptions)),
		zap.String("timestamp", now))

	return &model.SaveResult{
		CustomerCount:    len(s.customers),
		ConsumptionCount: len(s.consumptions),
		LastUpdated:      now,
	}, nil
}

// mergeCustomers 合并客户数据，以 customerId 为唯一标识
func (s *DataStore) mergeCustomers(incoming []*model.Customer) {
	if len(incoming) == 0 {
		return
	}

	index := make(map[string]int, len(s.customers))
	for i, c := range s.customers {
		index[c.CustomerID] = i
	}

	for _, c := range incoming {
		if c.CustomerID == "" {
			c.CustomerID = parser.GenerateCustomerID()
		}
		if i, ok := index[c.CustomerID]; ok {
			s.customers[i].Merge(c)
			continue
		}
		index[c.CustomerID] = len(s.customers)
		s.customers = append(s.customers, c)
	}
}

// mergeConsumptions 合并消费记录，按自然键去重
func (s *DataStore) mergeConsumptions(incoming []*model.Consumption) {
	if len(incoming) == 0 {
		return
	}

	existing := make(map[model.ConsumptionKey]bool, len(s.consumptions))
	for _, c := range s.consumptions {
		existing[c.Key()] = true
	}

	for _, c := range incoming {
		key := c.Key()
		if existing[key] {
			continue
		}
		existing[key] = true
		s.consumptions = append(s.consumptions, c)
	}
}

// persist 将全部集合整体写入持久化存储
func (s *DataStore) persist() error {
	customers, err := json.Marshal(s.customers)
	if err != nil {
		return fmt.Errorf("encode customers failed: %w", err)
	}
	consumptions, err := json.Marshal(s.consumptions)
	if err != nil {
		return fmt.Errorf("encode consumptions failed: %w", err)
	}

	if err := s.storage.Set(KeyCustomers, customers); err != nil {
		return err
	}
	if err := s.storage.Set(KeyConsumptions, consumptions); err != nil {
		return err
	}
	return s.storage.Set(KeyLastUpdated, []byte(s.lastUpdated))
}

// AllCustomers 获取所有客户
func (s *DataStore) AllCustomers() []*model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// AllConsumptions 获取所有消费记录
func (s *DataStore) AllConsumptions() []*model.Consumption {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Consumption, len(s.consumptions))
	copy(out, s.consumptions)
	return out
}

// CustomerConsumptions 获取指定客户的消费记录
func (s *DataStore) CustomerConsumptions(customerID string) []*model.Consumption {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Consumption{}
	for _, c := range s.consumptions {
		if c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out
}

// CustomerByID 获取指定客户，不存在时返回 nil
func (s *DataStore) CustomerByID(customerID string) *model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.CustomerID == customerID {
			return c
		}
	}
	return nil
}

// SearchCustomers 按姓名或手机号模糊搜索客户（不区分大小写）
func (s *DataStore) SearchCustomers(keyword string) []*model.Customer {
	if keyword == "" {
		return []*model.Customer{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(keyword)
	out := []*model.Customer{}
	for _, c := range s.customers {
		if strings.Contains(strings.ToLower(c.Name), lower) ||
			strings.Contains(strings.ToLower(c.Phone), lower) {
			out = append(out, c)
		}
	}
	return out
}

// Statistics 数据统计信息
func (s *DataStore) Statistics() *model.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.statisticsLocked()
}

func (s *DataStore) statisticsLocked() *model.Statistics {
	total := 0.0
	for _, c := range s.consumptions {
		total += c.Amount
	}

	stores := make(map[string]int)
	for _, c := range s.customers {
		name := c.Store
		if name == "" {
			name = "未知门店"
		}
		stores[name]++
	}

	return &model.Statistics{
		CustomerCount:     len(s.customers),
		ConsumptionCount:  len(s.consumptions),
		TotalAmount:       total,
		StoreDistribution: stores,
		LastUpdated:       s.lastUpdated,
	}
}

// Export 导出全部数据快照
func (s *DataStore) Export() *model.ExportData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]*model.Customer, len(s.customers))
	copy(customers, s.customers)
	consumptions := make([]*model.Consumption, len(s.consumptions))
	copy(consumptions, s.consumptions)

	return &model.ExportData{
		Customers:    customers,
		Consumptions: consumptions,
		ExportTime:   time.Now().Format(time.RFC3339),
		Statistics:   s.statisticsLocked(),
	}
}

// ClearAll 清空内存缓存与全部持久化键
func (s *DataStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("清空所有数据")

	s.customers = []*model.Customer{}
	s.consumptions = []*model.Consumption{}
	s.lastUpdated = ""

	if err := s.storage.Remove(KeyCustomers); err != nil {
		return err
	}
	if err := s.storage.Remove(KeyConsumptions); err != nil {
		return err
	}
	return s.storage.Remove(KeyLastUpdated)
}
