package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() fstest.MapFS {
	return fstest.MapFS{
		"layout.md":         {Data: []byte("# Layout\n\nHow thoughts are stored")},
		"profiles.txt":      {Data: []byte("Profiles select a thoughts repository")},
		"option-force.txt":  {Data: []byte("--force skips safety checks")},
		"nested/sync.md":    {Data: []byte("# Sync")},
		"ignored.json":      {Data: []byte("{}")},
		"nested/notes.txxt": {Data: []byte("custom")},
	}
}

func TestScan(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testSource())
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"layout", "option-force", "profiles", "sync"}, tm.ListTopics())

		topic, ok := tm.GetTopic("sync")
		require.True(t, ok)
		assert.Equal(t, "nested/sync.md", topic.FilePath)
		assert.Equal(t, "# Sync", topic.Content)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testSource(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Scan())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})

	t.Run("nil source", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.Scan())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopic_FlagStyle(t *testing.T) {
	tm := New(testSource())
	require.NoError(t, tm.Scan())

	for _, name := range []string{"force", "--force", "-force", "option-force"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-force", topic.Name)
	}

	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

func TestPrintTopicList(t *testing.T) {
	tm := New(testSource())
	require.NoError(t, tm.Scan())

	var buf bytes.Buffer
	tm.PrintTopicList(&buf, "hyprlayer")
	out := buf.String()

	assert.Contains(t, out, "General topics:\n  layout\n  profiles\n  sync\n")
	assert.Contains(t, out, "Option topics:\n  --force\n")
	assert.Contains(t, out, "Use 'hyprlayer help <topic>'")

	buf.Reset()
	New(nil).PrintTopicList(&buf, "hyprlayer")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestInitialize_HelpCommand(t *testing.T) {
	root := &cobra.Command{Use: "hyprlayer"}
	root.AddCommand(&cobra.Command{Use: "thoughts", Short: "Manage thoughts", Run: func(*cobra.Command, []string) {}})
	require.NoError(t, Initialize(root, testSource()))

	run := func(args ...string) string {
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetErr(&buf)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return buf.String()
	}

	assert.Equal(t, "Profiles select a thoughts repository", run("help", "profiles"))
	assert.Contains(t, run("help", "topics"), "Available help topics:")
	assert.Contains(t, run("help", "thoughts"), "Manage thoughts")
}

func TestRenderers(t *testing.T) {
	plain := &PlainRenderer{}
	assert.Equal(t, "# Title", plain.Render("# Title", ".md"))

	g := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain text", g.Render("plain text", ".txt"))

	rendered := g.Render("# Title\n\nSome markdown body", ".md")
	assert.Contains(t, rendered, "Title")
	assert.True(t, strings.Contains(rendered, "markdown body"))
}
