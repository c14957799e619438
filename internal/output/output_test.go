package output

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI(format Format) (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return New(format, out, errOut), out, errOut
}

func TestNew_DefaultsToStdio(t *testing.T) {
	u := New(FormatJSON, nil, nil)
	assert.Equal(t, FormatJSON, u.Format)
	assert.Equal(t, os.Stdout, u.Out)
	assert.Equal(t, os.Stderr, u.ErrOut)
}

func TestCyan_KeepsText(t *testing.T) {
	assert.Contains(t, Cyan("https://github.com/o/r"), "https://github.com/o/r")
}

func TestMessages(t *testing.T) {
	u, out, errOut := newTestUI(FormatText)

	u.Info("hello %s", "world")
	u.Success("done %d", 42)
	u.Warning("careful %s", "now")
	u.Error("failed %s", "badly")

	assert.Contains(t, out.String(), "hello world")
	assert.Contains(t, out.String(), "done 42")
	assert.Contains(t, errOut.String(), "careful now")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "json", "yaml"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

type sample struct {
	Number int      `json:"number"`
	Status string   `json:"status"`
	Labels []string `json:"labels"`
	Spec   *string  `json:"spec"`
}

func TestEncode_JSON(t *testing.T) {
	u, out, _ := newTestUI(FormatJSON)
	require.NoError(t, u.Encode(sample{Number: 7, Status: "building", Labels: []string{"a"}}))

	assert.JSONEq(t, `{"number": 7, "status": "building", "labels": ["a"], "spec": null}`, out.String())
	assert.Contains(t, out.String(), "\n  \"number\": 7")
}

func TestEncode_YAMLKeepsKeyOrder(t *testing.T) {
	u, out, _ := newTestUI(FormatYAML)
	require.NoError(t, u.Encode(sample{Number: 7, Status: "123", Labels: []string{"a", "b"}}))

	got := out.String()
	assert.Contains(t, got, "number: 7\n")
	assert.Contains(t, got, "- a\n")
	assert.Contains(t, got, "- b\n")
	assert.Less(t, strings.Index(got, "number"), strings.Index(got, "status"))
	assert.Less(t, strings.Index(got, "status"), strings.Index(got, "labels"))
	assert.NotContains(t, got, "{")
}

func TestStructured(t *testing.T) {
	u, _, _ := newTestUI(FormatText)
	assert.False(t, u.Structured())
	u.Format = FormatYAML
	assert.True(t, u.Structured())
}

func TestStatusColor_KeepsText(t *testing.T) {
	for _, s := range []string{"completed", "failed", "building", "approve", "unknown"} {
		assert.Contains(t, StatusColor(s), s)
	}
}

func TestTable(t *testing.T) {
	u, out, _ := newTestUI(FormatText)
	table := u.Table([]string{"Issue", "Status"})
	require.NoError(t, table.Append([]string{"#42", "building"}))
	require.NoError(t, table.Render())

	assert.Contains(t, out.String(), "#42")
	assert.Contains(t, out.String(), "building")
}
