//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeadlessSearch(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)
	_, err := tf.CreateWorkspace()
	require.NoError(t, err)

	out, err := tf.RunCommand("search", "amd")
	require.NoError(t, err, out)
	require.Contains(t, out, "[0] AMD Ryzen 5 5600X")
	require.Contains(t, out, "[2] AMD Radeon RX 7800 XT")

	out, err = tf.RunCommand("indices")
	require.NoError(t, err, out)
	require.Contains(t, out, "motherboard")
	require.NotContains(t, out, "Missing from provider")
}
