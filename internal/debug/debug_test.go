// Copyright 2025 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package debug

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/contractcall/log"
	"github.com/urfave/cli/v2"
)

// runSetup runs Setup inside a throwaway app with the given arguments and
// restores the root logger afterwards.
func runSetup(t *testing.T, args ...string) error {
	t.Helper()
	prev := log.Root()
	t.Cleanup(func() {
		Exit()
		log.SetDefault(prev)
	})
	app := cli.NewApp()
	app.Flags = Flags
	app.Action = func(ctx *cli.Context) error {
		return Setup(ctx)
	}
	return app.Run(append([]string{"test"}, args...))
}

func TestSetupJSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "abicall.log")
	require.NoError(t, runSetup(t, "--log.format", "json", "--log.file", file, "--verbosity", "4"))

	log.Debug("Dispatching contract call", "method", "balanceOf")
	log.Trace("Filtered out")
	Exit()

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")

	var found bool
	for _, line := range lines {
		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		assert.NotEqual(t, "Filtered out", rec["msg"])
		if rec["msg"] == "Dispatching contract call" {
			found = true
			assert.Equal(t, "balanceOf", rec["method"])
		}
	}
	assert.True(t, found, "debug record missing from %s", content)
}

func TestSetupUnknownFormat(t *testing.T) {
	err := runSetup(t, "--log.format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log format")
}

func TestSetupProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	require.NoError(t, runSetup(t, "--pprof.cpuprofile", cpu, "--pprof.memprofile", mem, "--log.nocolor"))

	assert.Error(t, prof.startCPUProfile(filepath.Join(dir, "again.out")))
	Exit()
	Exit()

	for _, file := range []string{cpu, mem} {
		info, err := os.Stat(file)
		require.NoError(t, err)
		assert.NotZero(t, info.Size(), file)
	}
}
