package counter

import (
	"math"
	"sync"
	"sync/atomic"

	"counter-go/internal/errors"
)

// Store 保存全局计数器与按 key 的计数器，只使用原子操作
type Store struct {
	global atomic.Int64
	keys   sync.Map // int64 -> *atomic.Int64
	size   atomic.Int64
}

func NewStore() *Store {
	return &Store{}
}

// Increment 先递增全局计数器再递增 key 计数器，返回递增后的值。
// 每次 key 递增都伴随一次全局递增，所以 key 计数不会超过全局计数，全局计数总是先溢出。
func (s *Store) Increment(key int64) (perKey int64, global int64, err error) {
	global, ok := incrementChecked(&s.global)
	if !ok {
		return 0, s.global.Load(), errors.New(errors.ErrCounterOverflow, "global counter overflow")
	}

	entry := s.entry(key)
	perKey, ok = incrementChecked(entry)
	if !ok {
		// 按上面的不变式不会发生，发生时撤销全局递增
		return entry.Load(), s.global.Add(-1), errors.New(errors.ErrCounterOverflow, "counter %d overflow", key)
	}
	return perKey, global, nil
}

// Peek 读取当前值，不存在的 key 返回 0 且不会创建条目
func (s *Store) Peek(key int64) (perKey int64, global int64) {
	if v, ok := s.keys.Load(key); ok {
		perKey = v.(*atomic.Int64).Load()
	}
	return perKey, s.global.Load()
}

// Len 返回已创建的 key 数量
func (s *Store) Len() int {
	return int(s.size.Load())
}

func (s *Store) entry(key int64) *atomic.Int64 {
	if v, ok := s.keys.Load(key); ok {
		return v.(*atomic.Int64)
	}
	// 并发插入同一个 key 时只有第一个生效，其余使用已插入的条目
	v, loaded := s.keys.LoadOrStore(key, new(atomic.Int64))
	if !loaded {
		s.size.Add(1)
	}
	return v.(*atomic.Int64)
}

// incrementChecked 用 CAS 递增，到达 MaxInt64 时拒绝递增而不是回绕
func incrementChecked(v *atomic.Int64) (int64, bool) {
	for {
		cur := v.Load()
		if cur == math.MaxInt64 {
			return cur, false
		}
		if v.CompareAndSwap(cur, cur+1) {
			return cur + 1, true
		}
	}
}
