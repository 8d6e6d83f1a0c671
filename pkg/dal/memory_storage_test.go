package dal

import (
	"context"
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_memoryStorage(t *testing.T) {
	storage := NewMemoryStorage()
	assert.NoError(t, storage.Setup(context.TODO()))

	t.Run("missing value", func(t *testing.T) {
		_, err := storage.GetValue(context.TODO(), "missing-"+faker.Word())
		assert.Equal(t, ErrKeyNotFound, errors.Cause(err))
	})

	t.Run("save and overwrite", func(t *testing.T) {
		key := "key-" + faker.Word()
		assert.NoError(t, storage.SaveValue(context.TODO(), key, []byte(faker.Sentence())))

		value := []byte(faker.Sentence())
		assert.NoError(t, storage.SaveValue(context.TODO(), key, value))

		got, err := storage.GetValue(context.TODO(), key)
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, value, got)

		got[0] = '!'
		again, _ := storage.GetValue(context.TODO(), key)
		assert.Equal(t, value, again)
	})
}
