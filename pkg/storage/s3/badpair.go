package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"arbscanner/internal/badpair"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the subset of *s3.Client the store needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BadPairStore keeps bad_pairs.json in a bucket, same format as the local file.
type BadPairStore struct {
	api    ObjectAPI
	bucket string
	key    string
}

func NewBadPairStore(api ObjectAPI, bucket, key string) *BadPairStore {
	return &BadPairStore{api: api, bucket: bucket, key: key}
}

// Load treats a missing object as an empty list.
func (s *BadPairStore) Load(ctx context.Context) ([]badpair.Pair, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, nil
		}
		return nil, fmt.Errorf("s3: get %s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3: read %s/%s: %w", s.bucket, s.key, err)
	}

	var pairs []badpair.Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("s3: decode %s/%s: %w", s.bucket, s.key, err)
	}
	return pairs, nil
}

// Save merges pairs into the stored object and rewrites it.
func (s *BadPairStore) Save(ctx context.Context, pairs []badpair.Pair) error {
	existing, err := s.Load(ctx)
	if err != nil {
		return err
	}
	merged := badpair.NewSet(existing...)
	for _, p := range pairs {
		merged.Add(p.A, p.B)
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("s3: encode bad pairs: %w", err)
	}

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3: put %s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}
