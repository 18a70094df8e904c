package dump

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/broady/scalegen"
	"github.com/broady/scalegen/cmd/scalegen/internal/config"
	"github.com/broady/scalegen/internal/testfixtures"
)

func TestRun(t *testing.T) {
	input := testfixtures.WriteSnapshot(t, testfixtures.Runtime(), "metadata.json")

	var out bytes.Buffer
	g := &config.Globals{Logger: slog.New(slog.DiscardHandler), Stdout: &out, Stderr: &out}
	cmd := &Cmd{Flags: config.Flags{Input: input, Root: "node", Format: []string{"rust"}}}
	require.NoError(t, cmd.Run(g))

	var tree struct {
		Kind  string `json:"kind"`
		Name  string `json:"name"`
		Items []struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &tree))
	require.Equal(t, "namespace", tree.Kind)
	require.Equal(t, "node", tree.Name)

	var names []string
	for _, it := range tree.Items {
		names = append(names, it.Name)
	}
	require.Equal(t, []string{"types", "system", "timestamp", "balances", "elections_phragmen"}, names)
}

func TestRun_Error(t *testing.T) {
	p := testfixtures.Runtime()
	p.V13.Modules[1].Calls[0].Args[0].Type = 404
	input := testfixtures.WriteSnapshot(t, p, "metadata.json")

	var out bytes.Buffer
	g := &config.Globals{Logger: slog.New(slog.DiscardHandler), Stdout: &out, Stderr: &out}
	err := (&Cmd{Flags: config.Flags{Input: input}}).Run(g)
	require.ErrorIs(t, err, scalegen.ErrDanglingTypeReference)
	require.Contains(t, err.Error(), "module Timestamp: call set: argument now")
	require.Zero(t, out.Len())
}
