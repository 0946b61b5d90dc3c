package main

import (
	"errors"
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		want    Config
		wantErr error
	}{
		{
			name: "defaults",
			want: Config{Skeleton: "ybot.yaml", LoaderWorkers: 1},
		},
		{
			name: "env",
			env: map[string]string{
				"YBOT_ASSET_DIR":      "/tmp/rigs",
				"YBOT_SKELETON":       "other.yaml",
				"YBOT_WATCH":          "true",
				"YBOT_DEBUG":          "true",
				"YBOT_LOADER_WORKERS": "3",
			},
			want: Config{AssetDir: "/tmp/rigs", Skeleton: "other.yaml", Watch: true, Debug: true, LoaderWorkers: 3},
		},
		{
			name: "flags_override_env",
			env:  map[string]string{"YBOT_ASSET_DIR": "/tmp/rigs", "YBOT_DEBUG": "true"},
			args: []string{"-assets", "./assets", "-debug=false", "-m", "-workers", "0"},
			want: Config{AssetDir: "./assets", Skeleton: "ybot.yaml", BaseMonitor: true, LoaderWorkers: 1},
		},
		{
			name:    "watch_without_dir",
			args:    []string{"-watch"},
			wantErr: errWatchNeedsDir,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, k := range []string{"YBOT_ASSET_DIR", "YBOT_SKELETON", "YBOT_WATCH", "YBOT_DEBUG", "YBOT_BASE_MONITOR", "YBOT_LOADER_WORKERS"} {
				v, ok := tc.env[k]
				t.Setenv(k, v)
				if !ok {
					os.Unsetenv(k)
				}
			}

			got, err := LoadConfig(tc.args)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("load config: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestLoadConfigBadFlag(t *testing.T) {
	if _, err := LoadConfig([]string{"-nope"}); err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
}
