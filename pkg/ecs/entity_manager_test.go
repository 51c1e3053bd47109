package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y, Z float64
}

type testVelocityComponent struct {
	VX, VY, VZ float64
}

type testTagComponent struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID 从 1 开始，0 保留为无效ID
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 100, Y: 2, Z: 200})

	pos, found := GetComponent[*testPositionComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Z != 200 {
		t.Errorf("Component data mismatch, got (%f, %f)", pos.X, pos.Z)
	}

	// 反射版本与泛型版本共享同一存储
	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found || comp.(*testPositionComponent) != pos {
		t.Error("Reflection lookup should return the same pointer")
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component before adding")
	}

	em.AddComponent(id, &testPositionComponent{})
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Should have component after adding")
	}

	RemoveComponent[*testPositionComponent](em, id)
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Should not have component after removing")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testPositionComponent{})

	em.DestroyEntity(id)

	// 标记后：组件仍可读取，但不再出现在查询结果中
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("Marked entity should keep its components until cleanup")
	}
	if em.IsAlive(id) {
		t.Error("Marked entity should not be alive")
	}
	if !em.Exists(id) {
		t.Error("Marked entity should still exist until cleanup")
	}
	if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 0 {
		t.Errorf("Marked entity should be excluded from queries, got %v", got)
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestDestroyEntityTwice(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.DestroyEntity(id)
	em.DestroyEntity(id)
	em.DestroyEntity(EntityID(999)) // 不存在的实体

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Duplicate destroy should be reclaimed once, got %d", removed)
	}
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("Second cleanup should reclaim nothing, got %d", removed)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{})
	AddComponent(em, id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	AddComponent(em, id3, &testVelocityComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected only id1, got %v", both)
	}

	positions := GetEntitiesWith1[*testPositionComponent](em)
	if len(positions) != 2 {
		t.Errorf("Expected 2 entities with Position component, got %d", len(positions))
	}

	none := GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, *testTagComponent](em)
	if len(none) != 0 {
		t.Errorf("Expected no entity with tag, got %v", none)
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testTagComponent{})
	}

	ids := GetEntitiesWith1[*testTagComponent](em)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("Query result not sorted at %d: %v", i, ids)
		}
	}
}

func TestFirstWith(t *testing.T) {
	em := NewEntityManager()
	if _, ok := FirstWith[*testTagComponent](em); ok {
		t.Error("Empty manager should not find anything")
	}

	em.CreateEntity()
	tagged := em.CreateEntity()
	AddComponent(em, tagged, &testTagComponent{})

	id, ok := FirstWith[*testTagComponent](em)
	if !ok || id != tagged {
		t.Errorf("Expected %d, got %d (ok=%v)", tagged, id, ok)
	}
}

// BenchmarkGetEntitiesWith_Generic 查询 1000 实体（2组件）
func BenchmarkGetEntitiesWith_Generic(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 1000; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	}
}
