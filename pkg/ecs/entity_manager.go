package ecs

import "reflect"

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// EntityManager 实体竞技场：按稳定的 EntityID 存储组件
//
// 销毁采用"标记 - 下一帧回收"模式：
//   - DestroyEntity 只做标记，已标记实体立即从查询结果中消失
//   - RemoveMarkedEntities 在每个模拟帧末尾真正回收
//
// 这样系统在遍历实体列表的过程中销毁实体不会导致迭代失效。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]any
	// 待删除的实体（集合去重，同一实体多次销毁只回收一次）
	pendingDestroy map[EntityID]struct{}
	destroyOrder   []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:         1,
		components:     make(map[EntityID]map[reflect.Type]any),
		pendingDestroy: make(map[EntityID]struct{}),
		destroyOrder:   make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除(不立即删除)
// 对不存在或已标记的实体调用是安全的
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, exists := em.components[id]; !exists {
		return
	}
	if _, marked := em.pendingDestroy[id]; marked {
		return
	}
	em.pendingDestroy[id] = struct{}{}
	em.destroyOrder = append(em.destroyOrder, id)
}

// IsAlive 实体存在且未被标记删除
func (em *EntityManager) IsAlive(id EntityID) bool {
	if _, exists := em.components[id]; !exists {
		return false
	}
	_, marked := em.pendingDestroy[id]
	return !marked
}

// Exists 实体仍在竞技场中（包括已标记、尚未回收的实体）
func (em *EntityManager) Exists(id EntityID) bool {
	_, exists := em.components[id]
	return exists
}

// AddComponent 为实体添加组件，同类型组件会被替换
func (em *EntityManager) AddComponent(id EntityID, component any) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
// 已标记删除的实体仍可读取组件（用于死亡处理时读取分值等数据）
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 返回本次回收的实体数量
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := len(em.destroyOrder)
	for _, id := range em.destroyOrder {
		delete(em.components, id)
	}
	em.destroyOrder = em.destroyOrder[:0]
	clear(em.pendingDestroy)
	return removed
}

// EntityCount 返回竞技场中的实体数量（包括待回收实体）
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有存活实体
// 结果按 EntityID 升序排列，保证同一帧内的处理顺序稳定（模拟结果可复现）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		if _, marked := em.pendingDestroy[id]; marked {
			continue
		}
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sortIDs(result)
	return result
}
