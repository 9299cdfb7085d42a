package metadata

import "context"

// Repository is the key/value slot the session lives in. Get returns
// (nil, nil) for a missing key; Set replaces the whole value; Delete of a
// missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Updater is implemented by repositories that can rewrite a key in one
// transaction. fn receives the current value (nil when missing); a nil
// result writes nothing and an error aborts the update.
type Updater interface {
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
}

var (
	_ Updater    = (*SQLiteRepository)(nil)
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*RedisRepository)(nil)
	_ Repository = (*MemoryRepository)(nil)
)
