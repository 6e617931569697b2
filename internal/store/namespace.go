package store

import (
	"context"
	"strings"
)

// Namespaced prefixes every key with "<profile>/" so several learners can
// share one backend. An empty profile returns kv unchanged.
func Namespaced(kv KV, profile string) KV {
	profile = strings.Trim(strings.TrimSpace(profile), "/")
	if profile == "" {
		return kv
	}
	return &namespacedKV{inner: kv, prefix: profile + "/"}
}

type namespacedKV struct {
	inner  KV
	prefix string
}

func (n *namespacedKV) Load(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Load(ctx, n.prefix+key)
}

func (n *namespacedKV) Save(ctx context.Context, key string, blob []byte) error {
	return n.inner.Save(ctx, n.prefix+key, blob)
}

func (n *namespacedKV) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
