package loader_test

import (
	"errors"
	"testing"

	"bucket-manager/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("SkipsDisabled", func(t *testing.T) {
		a := &stubFeature{name: "a", enabled: true}
		b := &stubFeature{name: "b", enabled: false}
		mgr := loader.NewManager()
		mgr.Register(a)
		mgr.Register(b)

		loaded, err := mgr.LoadAll(fiber.New())
		assert.NoError(t, err)
		assert.Equal(t, []string{"a"}, loaded)
		assert.False(t, b.loaded)
	})

	t.Run("StopsOnError", func(t *testing.T) {
		a := &stubFeature{name: "a", enabled: true, err: errors.New("bad route")}
		b := &stubFeature{name: "b", enabled: true}
		mgr := loader.NewManager()
		mgr.Register(a)
		mgr.Register(b)

		_, err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "failed to load feature a")
		assert.False(t, b.loaded)
	})
}
