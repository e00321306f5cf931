package bpe

import "testing"

func TestLRUCache(t *testing.T) {
	t.Run("basic_operations", func(t *testing.T) {
		cache := NewLRU(3)

		cache.Put("key1", []TokenID{1, 2, 3})
		cache.Put("key2", []TokenID{4, 5, 6})
		cache.Put("key3", []TokenID{7, 8, 9})

		if _, ok := cache.Get("key1"); !ok {
			t.Error("expected key1 to exist")
		}
		if _, ok := cache.Get("key2"); !ok {
			t.Error("expected key2 to exist")
		}
		if _, ok := cache.Get("key3"); !ok {
			t.Error("expected key3 to exist")
		}

		cache.Put("key4", []TokenID{10, 11, 12})

		if _, ok := cache.Get("key1"); ok {
			t.Error("expected key1 to be evicted")
		}
		if _, ok := cache.Get("key4"); !ok {
			t.Error("expected key4 to exist")
		}
	})

	t.Run("lru_ordering", func(t *testing.T) {
		cache := NewLRU(2)

		cache.Put("a", []TokenID{1})
		cache.Put("b", []TokenID{2})
		cache.Get("a")
		cache.Put("c", []TokenID{3})

		if _, ok := cache.Get("a"); !ok {
			t.Error("expected 'a' to exist (was accessed)")
		}
		if _, ok := cache.Get("b"); ok {
			t.Error("expected 'b' to be evicted (LRU)")
		}
		if _, ok := cache.Get("c"); !ok {
			t.Error("expected 'c' to exist (just added)")
		}
	})

	t.Run("update_existing", func(t *testing.T) {
		cache := NewLRU(2)

		cache.Put("key", []TokenID{1, 2})
		cache.Put("key", []TokenID{3, 4})

		val, ok := cache.Get("key")
		if !ok {
			t.Fatal("expected key to exist")
		}
		if len(val) != 2 || val[0] != 3 || val[1] != 4 {
			t.Errorf("expected updated value [3,4], got %v", val)
		}
	})

	t.Run("unlimited_cache", func(t *testing.T) {
		cache := NewLRU(0)

		for i := 0; i < 100; i++ {
			cache.Put(string(rune('a'+i)), []TokenID{TokenID(i)})
		}
		for i := 0; i < 100; i++ {
			if _, ok := cache.Get(string(rune('a' + i))); !ok {
				t.Errorf("expected key %c to exist in unlimited cache", 'a'+i)
			}
		}
	})
}

func TestSimpleCache(t *testing.T) {
	cache := NewSimple()

	cache.Put("key1", []TokenID{1, 2, 3})

	val, ok := cache.Get("key1")
	if !ok {
		t.Fatal("expected key1 to exist")
	}
	if len(val) != 3 || val[0] != 1 {
		t.Errorf("expected [1,2,3], got %v", val)
	}

	if _, ok := cache.Get("missing"); ok {
		t.Error("expected missing key to not exist")
	}
}
