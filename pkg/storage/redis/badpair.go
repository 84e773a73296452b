package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"arbscanner/internal/badpair"

	"github.com/redis/go-redis/v9"
)

// appendPair pushes ARGV[2] onto the list KEYS[1] and records ARGV[1] in the
// membership set KEYS[2], unless ARGV[1] is already a member. Redis does not
// roll back a failed script, so the push runs before the membership write.
var appendPair = redis.NewScript(`
if redis.call("SISMEMBER", KEYS[2], ARGV[1]) == 1 then
	return 0
end
redis.call("RPUSH", KEYS[1], ARGV[2])
redis.call("SADD", KEYS[2], ARGV[1])
return 1
`)

// BadPairStore keeps the ordered list under key and a membership set under key+":keys".
type BadPairStore struct {
	c   *Client
	key string
}

func NewBadPairStore(c *Client, key string) *BadPairStore {
	return &BadPairStore{c: c, key: key}
}

func (s *BadPairStore) membersKey() string {
	return s.key + ":keys"
}

func (s *BadPairStore) Load(ctx context.Context) ([]badpair.Pair, error) {
	raw, err := s.c.rdb.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: load bad pairs: %w", err)
	}

	pairs := make([]badpair.Pair, 0, len(raw))
	for _, item := range raw {
		var p badpair.Pair
		if err := json.Unmarshal([]byte(item), &p); err != nil {
			return nil, fmt.Errorf("redis: decode bad pair %q: %w", item, err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// Save appends pairs whose key is not in the membership set yet.
func (s *BadPairStore) Save(ctx context.Context, pairs []badpair.Pair) error {
	keys := []string{s.key, s.membersKey()}
	for _, p := range pairs {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("redis: encode bad pair: %w", err)
		}
		if err := appendPair.Run(ctx, s.c.rdb, keys, p.Key(), data).Err(); err != nil {
			return fmt.Errorf("redis: save bad pair: %w", err)
		}
	}
	return nil
}
