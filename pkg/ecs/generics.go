package ecs

import (
	"reflect"
	"slices"
)

// typeOf 返回泛型参数对应的 reflect.Type
// 组件统一以指针形式存储，T 通常为 *XxxComponent
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 泛型版本的添加组件
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if compMap, exists := em.components[id]; exists {
		compMap[typeOf[T]()] = component
	}
}

// GetComponent 泛型版本的获取组件，免去调用方的类型断言
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	compMap, exists := em.components[id]
	if !exists {
		return zero, false
	}
	comp, found := compMap[typeOf[T]()]
	if !found {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本的组件检查
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	compMap, exists := em.components[id]
	if !exists {
		return false
	}
	_, found := compMap[typeOf[T]()]
	return found
}

// RemoveComponent 泛型版本的移除组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有组件 T1 的存活实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有组件 T1、T2 的存活实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有组件 T1、T2、T3 的存活实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}

// FirstWith 返回第一个拥有组件 T 的存活实体（用于单例实体查找，如玩家）
func FirstWith[T any](em *EntityManager) (EntityID, bool) {
	ids := GetEntitiesWith1[T](em)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

func sortIDs(ids []EntityID) {
	slices.Sort(ids)
}
