package initchecker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type provider interface{ Name() string }

type impl struct{}

func (impl) Name() string { return "impl" }

func TestCheckInit(t *testing.T) {
	t.Run(`initialized dependencies`, func(t *testing.T) {
		var p provider = impl{}
		require.NotPanics(t, func() {
			CheckInit("provider", p, "map", map[string]int{})
		})
	})
	t.Run(`nil interface`, func(t *testing.T) {
		var p provider
		require.PanicsWithValue(t, "provider dependency is not initialized", func() {
			CheckInit("provider", p)
		})
	})
	t.Run(`typed nil pointer`, func(t *testing.T) {
		var p *impl
		require.PanicsWithValue(t, "pointer dependency is not initialized", func() {
			CheckInit("pointer", p)
		})
	})
	t.Run(`odd arguments`, func(t *testing.T) {
		require.Panics(t, func() { CheckInit("alone") })
	})
}
