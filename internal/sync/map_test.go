package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_StoreAndLoad(t *testing.T) {
	m := NewMap[string, bool]()

	m.Store("alice", true)

	value, ok := m.Load("alice")
	assert.True(t, ok)
	assert.True(t, value)
}

func TestMap_LoadNonExistent(t *testing.T) {
	m := NewMap[string, int]()

	value, ok := m.Load("nonexistent")
	assert.False(t, ok)
	assert.Equal(t, 0, value)
}

func TestMap_Delete(t *testing.T) {
	m := NewMap[string, int]()

	m.Store("key1", 42)
	m.Delete("key1")

	_, ok := m.Load("key1")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMap_RangeStopEarly(t *testing.T) {
	m := NewMap[string, int]()

	m.Store("key1", 1)
	m.Store("key2", 2)
	m.Store("key3", 3)

	count := 0
	m.Range(func(_ string, _ int) bool {
		count++
		return count < 2
	})

	assert.Equal(t, 2, count)
}

func TestMap_Any(t *testing.T) {
	m := NewMap[string, bool]()
	assert.False(t, m.Any(func(_ string, unmuted bool) bool { return unmuted }))

	m.Store("alice", false)
	m.Store("bob", false)
	assert.False(t, m.Any(func(_ string, unmuted bool) bool { return unmuted }))

	m.Store("bob", true)
	assert.True(t, m.Any(func(_ string, unmuted bool) bool { return unmuted }))
}

func TestMap_Clear(t *testing.T) {
	m := NewMap[string, int]()
	m.Store("key1", 1)
	m.Store("key2", 2)

	m.Clear()

	assert.Equal(t, 0, m.Len())
	_, ok := m.Load("key1")
	assert.False(t, ok)
}

func TestMap_ConcurrentAccess(t *testing.T) {
	m := NewMap[int, int]()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(n int) {
			m.Store(n, n*10)
			value, ok := m.Load(n)
			assert.True(t, ok)
			assert.Equal(t, n*10, value)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
	assert.Equal(t, 10, m.Len())
}
