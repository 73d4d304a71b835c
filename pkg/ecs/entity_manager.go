package ecs

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntity 0 保留为无效ID
const InvalidEntity EntityID = 0

type entry[T any] struct {
	id    EntityID
	value T
}

// EntityManager 按插入顺序持有实体，是实体的唯一所有者
// ID 单调递增且永不复用；删除采用延迟机制（DestroyEntity 标记，RemoveMarkedEntities 清理），
// 这样遍历过程中标记删除是安全的。
type EntityManager[T any] struct {
	nextID   uint64
	entities []entry[T]
	// EntityID -> entities 下标
	index map[EntityID]int
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager[T any]() *EntityManager[T] {
	return &EntityManager[T]{
		nextID:            1, // ID从1开始,0保留为无效ID
		index:             make(map[EntityID]int),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 追加新实体并返回唯一ID
func (em *EntityManager[T]) CreateEntity(value T) EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.index[id] = len(em.entities)
	em.entities = append(em.entities, entry[T]{id: id, value: value})
	return id
}

// Get 获取实体
func (em *EntityManager[T]) Get(id EntityID) (T, bool) {
	if i, ok := em.index[id]; ok {
		return em.entities[i].value, true
	}
	var zero T
	return zero, false
}

// Has 检查实体是否存在（已标记但未清理的实体仍然存在）
func (em *EntityManager[T]) Has(id EntityID) bool {
	_, ok := em.index[id]
	return ok
}

// Len 返回实体数量
func (em *EntityManager[T]) Len() int {
	return len(em.entities)
}

// Last 返回最后插入的实体ID
func (em *EntityManager[T]) Last() (EntityID, bool) {
	if len(em.entities) == 0 {
		return InvalidEntity, false
	}
	return em.entities[len(em.entities)-1].id, true
}

// Each 按插入顺序遍历所有实体，fn 返回 false 时停止
func (em *EntityManager[T]) Each(fn func(id EntityID, value T) bool) {
	for _, e := range em.entities {
		if !fn(e.id, e.value) {
			return
		}
	}
}

// IDs 返回按插入顺序排列的实体ID快照
func (em *EntityManager[T]) IDs() []EntityID {
	ids := make([]EntityID, len(em.entities))
	for i, e := range em.entities {
		ids[i] = e.id
	}
	return ids
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager[T]) DestroyEntity(id EntityID) {
	if !em.Has(id) {
		return
	}
	for _, marked := range em.entitiesToDestroy {
		if marked == id {
			return
		}
	}
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体，保持剩余实体的插入顺序
// 返回被删除的实体值（按插入顺序），供调用方更新统计
func (em *EntityManager[T]) RemoveMarkedEntities() []T {
	if len(em.entitiesToDestroy) == 0 {
		return nil
	}

	marked := make(map[EntityID]struct{}, len(em.entitiesToDestroy))
	for _, id := range em.entitiesToDestroy {
		marked[id] = struct{}{}
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片

	removed := make([]T, 0, len(marked))
	kept := em.entities[:0]
	for _, e := range em.entities {
		if _, ok := marked[e.id]; ok {
			removed = append(removed, e.value)
			delete(em.index, e.id)
			continue
		}
		em.index[e.id] = len(kept)
		kept = append(kept, e)
	}
	// 释放尾部引用
	var zero entry[T]
	for i := len(kept); i < len(em.entities); i++ {
		em.entities[i] = zero
	}
	em.entities = kept
	return removed
}

// Clear 立即删除所有实体（ID 计数不重置）
func (em *EntityManager[T]) Clear() {
	em.entities = nil
	em.index = make(map[EntityID]int)
	em.entitiesToDestroy = em.entitiesToDestroy[:0]
}
