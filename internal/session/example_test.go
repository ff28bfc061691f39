package session_test

import (
	"context"
	"fmt"
	"time"

	"github.com/prajwalbharadwajbm/referralhub/internal/session"
)

func ExampleNewHybridStore() {
	store, err := session.NewHybridStore(session.StoreConfig{
		DefaultTTL:   time.Hour,
		MemorySize:   1000,
		EnableMemory: true,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	defer store.Close()

	ctx := context.Background()

	sess := session.New(time.Now())
	sess.AdminLogin("admin-token", "admin@example.com")
	if err := store.Save(ctx, sess); err != nil {
		fmt.Println(err)
		return
	}

	loaded, err := store.Get(ctx, sess.ID)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(loaded.IsAdmin(), loaded.BearerToken())

	_, err = store.Get(ctx, "unknown")
	fmt.Println(err)

	stats := store.Stats()
	fmt.Printf("hits=%d misses=%d\n", stats.Hits, stats.Misses)
	// Output:
	// true admin-token
	// session not found
	// hits=1 misses=1
}
