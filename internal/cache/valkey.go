package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Valkey stores entries under "{namespace}:" with a PX expiry.
type Valkey struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*Valkey)(nil)

func NewValkey(client valkey.Client, namespace string, ttl time.Duration) *Valkey {
	return &Valkey{
		client: client,
		prefix: fmt.Sprintf("{%s}:", namespace),
		ttl:    ttl,
	}
}

func (s *Valkey) Get(ctx context.Context, key string) (Entry, bool, error) {
	cmd := s.client.B().Get().Key(s.prefix + key).Build()
	val, err := s.client.Do(ctx, cmd).ToString()
	if valkey.IsValkeyNil(err) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("valkey get %s: %w", key, err)
	}
	e, err := decode(val)
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (s *Valkey) Set(ctx context.Context, key string, e Entry) error {
	if s.ttl <= 0 {
		return nil
	}
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now()
	}
	val, err := encode(e)
	if err != nil {
		return err
	}
	cmd := s.client.B().Set().Key(s.prefix + key).Value(val).Px(s.ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

func (s *Valkey) Delete(ctx context.Context, key string) error {
	cmd := s.client.B().Del().Key(s.prefix + key).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *Valkey) TTL() time.Duration { return s.ttl }

func (s *Valkey) Close() { s.client.Close() }
