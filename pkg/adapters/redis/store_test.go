package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/vine/pkg/adapters/redis"
	"github.com/aretw0/vine/pkg/domain"
	"github.com/aretw0/vine/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore_Contract(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client)
	tests.RunSessionStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	session := domain.NewSession("quiz-ttl", "q1")
	_ = session.Append(domain.AnsweredStep{QuestionID: "q1", AnswerID: "a1"})

	err = store.Save(ctx, session)
	assert.NoError(t, err)

	ids, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, ids, "quiz-ttl")

	// Fast forward miniredis past the key TTL.
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "quiz-ttl")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Lazy index cleanup keys off time.Now(), so wait out the 1s TTL.
	time.Sleep(1200 * time.Millisecond)

	ids, err = store.List(ctx)
	assert.NoError(t, err)
	assert.NotContains(t, ids, "quiz-ttl")
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := redis.NewFromClient(client, redis.WithPrefix("custom:quiz:"))
	ctx := context.Background()

	err = store.Save(ctx, domain.NewSession("my-quiz", "q1"))
	assert.NoError(t, err)

	assert.True(t, mr.Exists("custom:quiz:my-quiz"))
}

func TestRedisStore_RoundTrip_PreservesHistory(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client)
	ctx := context.Background()

	session := domain.NewSession("quiz-rt", "q1")
	_ = session.Append(domain.AnsweredStep{QuestionID: "q1", AnswerID: "a1"})
	session.CurrentQuestionID = ""
	session.Recommended = []string{"p1", "p2"}

	assert.NoError(t, store.Save(ctx, session))

	loaded, err := store.Load(ctx, "quiz-rt")
	assert.NoError(t, err)
	assert.True(t, loaded.Terminated())
	assert.Equal(t, []string{"p1", "p2"}, loaded.Recommended)
	assert.Equal(t, session.Steps, loaded.Steps)
}
