package narrative

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultCollection is the Firestore collection holding cached narratives.
const DefaultCollection = "narratives"

type firestoreNarrative struct {
	Text      string    `firestore:"text"`
	CreatedAt time.Time `firestore:"created_at"`
	ExpiresAt time.Time `firestore:"expires_at,omitempty"`
}

// FirestoreCache implements Cache on a Firestore collection keyed by
// CacheKey.
type FirestoreCache struct {
	client     *firestore.Client
	collection string
	ttl        time.Duration
	now        func() time.Time
}

// NewFirestoreCache creates a Firestore-backed cache. A ttl of zero keeps
// entries forever; an empty collection uses DefaultCollection.
func NewFirestoreCache(client *firestore.Client, collection string, ttl time.Duration) *FirestoreCache {
	if collection == "" {
		collection = DefaultCollection
	}
	return &FirestoreCache{client: client, collection: collection, ttl: ttl, now: time.Now}
}

// Get returns the stored text, or ErrCacheMiss when absent or expired.
func (s *FirestoreCache) Get(ctx context.Context, key string) (string, error) {
	doc, err := s.client.Collection(s.collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", ErrCacheMiss
		}
		return "", fmt.Errorf("reading cached narrative: %w", err)
	}

	var fn firestoreNarrative
	if err := doc.DataTo(&fn); err != nil {
		return "", fmt.Errorf("decoding cached narrative: %w", err)
	}
	if !fn.ExpiresAt.IsZero() && !s.now().Before(fn.ExpiresAt) {
		return "", ErrCacheMiss
	}
	return fn.Text, nil
}

// Set stores text under key, replacing any previous entry.
func (s *FirestoreCache) Set(ctx context.Context, key, text string) error {
	now := s.now().UTC()
	fn := firestoreNarrative{Text: text, CreatedAt: now}
	if s.ttl > 0 {
		fn.ExpiresAt = now.Add(s.ttl)
	}
	if _, err := s.client.Collection(s.collection).Doc(key).Set(ctx, fn); err != nil {
		return fmt.Errorf("writing cached narrative: %w", err)
	}
	return nil
}

// Compile-time interface check
var _ Cache = (*FirestoreCache)(nil)
