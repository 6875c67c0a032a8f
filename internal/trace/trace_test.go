package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_LIFO(t *testing.T) {
	m := NewModel()
	for i := range 4 {
		require.Equal(t, i, m.Insert())
	}
	m.Remove(1)
	m.Remove(3)
	assert.Equal(t, 3, m.Next())
	assert.Equal(t, 3, m.Insert())
	assert.Equal(t, 1, m.Insert())
	assert.Equal(t, 4, m.Insert())
	assert.Equal(t, 5, m.Slots())
	assert.Equal(t, 0, m.Free())
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := Config{Seed: 171, Size: 1000, Removal: 0.3}
	a := Generate(cfg)
	b := Generate(cfg)
	require.Len(t, a, 1000)
	require.Equal(t, a, b)

	cfg.Seed = 172
	assert.NotEqual(t, a, Generate(cfg))
}

func TestGenerate_RespectsMaxKeys(t *testing.T) {
	events := Generate(Config{Seed: 1, Size: 2000, Removal: 0.1, MaxKeys: 16})
	for _, ev := range events {
		require.Less(t, ev.Key, 16)
	}
}

// TestReplay_AgainstModel replays a trace against a second model and checks
// that a wrong key is reported.
func TestReplay_AgainstModel(t *testing.T) {
	events := Generate(Config{Seed: 9, Size: 500, Removal: 0.4})

	m := NewModel()
	vals := map[int]int{}
	target := Target{
		Insert: func(v int) (int, error) {
			k := m.Insert()
			vals[k] = v
			return k, nil
		},
		Remove: func(k int) (int, error) {
			m.Remove(k)
			return vals[k], nil
		},
	}
	require.NoError(t, Replay(events, target))

	bad := Target{
		Insert: func(int) (int, error) { return -1, nil },
		Remove: func(int) (int, error) { return 0, nil },
	}
	require.ErrorIs(t, Replay(events, bad), ErrDiverged)
}

func TestReplay_ValueLimit(t *testing.T) {
	events := Generate(Config{Seed: 3, Size: 400, Removal: 0.2})
	m := NewModel()
	vals := map[int]int{}
	err := Replay(events, Target{
		Insert: func(v int) (int, error) {
			require.Less(t, v, 16)
			k := m.Insert()
			vals[k] = v
			return k, nil
		},
		Remove: func(k int) (int, error) {
			m.Remove(k)
			return vals[k], nil
		},
		ValueLimit: 16,
	})
	require.NoError(t, err)
}
