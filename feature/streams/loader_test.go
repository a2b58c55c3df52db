package streams_test

import (
	"testing"

	"stream-manager/core/reconcile"
	"stream-manager/feature/streams"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFeature(t *testing.T) {
	db := setupStreamDB(t)

	f := streams.NewFeature(db, zap.NewNop(), reconcile.Options{})
	assert.Equal(t, "streams", f.Name())
	assert.True(t, f.IsEnabled())

	app := fiber.New()
	assert.NoError(t, f.Load(app))
}
