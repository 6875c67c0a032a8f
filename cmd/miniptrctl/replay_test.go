package main

import (
	"strings"
	"testing"
)

func splitLines(s string) []string { return strings.Split(strings.TrimRight(s, "\n"), "\n") }

func TestReplayCommand(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		slot        string
		free        string
		size        int
		maxLive     int
		json        bool
		prom        bool
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "tagged intrusive",
			key:         "u32",
			slot:        "tagged",
			free:        "intrusive",
			size:        3000,
			wantContain: []string{"Replayed 3,000 events", "All keys matched the model"},
		},
		{
			name:        "default keylist on u8 keys",
			key:         "u8",
			slot:        "default",
			free:        "keylist",
			size:        5000,
			wantContain: []string{"u8 keys", "All keys matched the model"},
		},
		{
			name:        "clone intrusive on u16 keys",
			key:         "u16",
			slot:        "clone",
			free:        "intrusive",
			size:        5000,
			maxLive:     100,
			wantContain: []string{"clone slots", "All keys matched the model"},
		},
		{
			name:        "negated keys",
			key:         "neg32",
			slot:        "default",
			free:        "intrusive",
			size:        2000,
			wantContain: []string{"All keys matched the model"},
		},
		{
			name:        "json",
			key:         "u64",
			slot:        "tagged",
			free:        "keylist",
			size:        500,
			json:        true,
			wantContain: []string{`"events": 500`, `"Reused"`},
		},
		{
			name:        "prometheus",
			key:         "u16",
			slot:        "tagged",
			free:        "keylist",
			size:        500,
			prom:        true,
			wantContain: []string{"# TYPE miniptr_slab_inserts_total counter", `pool="u16/tagged/keylist"`},
		},
		{
			name:    "unknown key",
			key:     "u128",
			slot:    "tagged",
			free:    "keylist",
			size:    10,
			wantErr: true,
		},
		{
			name:    "unknown layout",
			key:     "u32",
			slot:    "boxed",
			free:    "keylist",
			size:    10,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			replayKey, replaySlot, replayFree = tt.key, tt.slot, tt.free
			replaySize, replayMaxLive = tt.size, tt.maxLive
			jsonOut, replayProm = tt.json, tt.prom

			output, err := captureOutput(t, runReplay)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runReplay() error = %v, wantErr %v\n%s", err, tt.wantErr, output)
			}
			if tt.wantErr {
				return
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestReplayRejectsBadRemoval(t *testing.T) {
	resetFlags()
	replayRemoval = 1.5
	if _, err := captureOutput(t, runReplay); err == nil {
		t.Fatal("expected error for removal probability above 1")
	}
}
