package lock

import (
	"sync"
)

// KeyedMutex 按键互斥锁注册表。
//
// 用于保证同一学生的头像上传串行执行：不同键互不阻塞，同一键的
// 持有者释放后才放行下一个等待者。空闲键的条目会被回收，注册表
// 不随键空间无限增长。
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex 创建按键互斥锁注册表。
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*entry),
	}
}

// Lock 获取指定键的互斥锁，阻塞直到可用。
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock 释放指定键的互斥锁。
//
// 对未持有的键调用属于编程错误，与 sync.Mutex 一致会 panic。
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("lock: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
