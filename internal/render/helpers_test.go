package render

import (
	"strings"
	"testing"

	"github.com/1broseidon/wlframe/internal/platform"
	"github.com/1broseidon/wlframe/internal/platform/fake"
)

type harness struct {
	log  *fake.Log
	conn *fake.Conn
	gpu  *fake.GPU
}

// newHarness scripts a server that advertises both required globals and sends
// the first configure in the first dispatch batch.
func newHarness() *harness {
	log := &fake.Log{}
	return &harness{
		log: log,
		conn: &fake.Conn{
			Log: log,
			Globals: []platform.Global{
				{Name: 1, Interface: platform.InterfaceCompositor, Version: 6},
				{Name: 2, Interface: platform.InterfaceWMBase, Version: 5},
			},
			Batches: [][]fake.Event{{fake.ConfigureEvent(7)}},
		},
		gpu: &fake.GPU{Log: log, PlatformExt: true},
	}
}

func (h *harness) init(t *testing.T, cfg Config) (*Context, error) {
	t.Helper()
	if cfg.Width == 0 {
		cfg.Width, cfg.Height = 640, 480
	}
	c, err := Init(h.conn.Dialer(), h.gpu, cfg)
	if c != nil {
		t.Cleanup(c.Destroy)
	}
	return c, err
}

func (h *harness) mustInit(t *testing.T, cfg Config) *Context {
	t.Helper()
	c, err := h.init(t, cfg)
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return c
}

// firstIndex returns the index of the first call with the given prefix.
func firstIndex(calls []string, prefix string) int {
	for i, c := range calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
