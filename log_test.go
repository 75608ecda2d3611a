package box3d_test

import (
	"testing"

	"github.com/ByteArena/box3d"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestTreeLogsDepthChanges(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	def := box3d.MakeB3TreeDef()
	def.Width = 2
	def.Logger = logger
	tree := box3d.MustNewB3Tree(def)

	tree.Add(makeBox(0, 0, 0, 1, 1, 1))
	tree.Add(makeBox(2, 0, 0, 3, 1, 1))
	assert.Empty(t, hook.AllEntries())

	tree.Add(makeBox(2.5, 0, 0, 3.5, 1, 1))
	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "tree level added", entry.Message)
		assert.Equal(t, 1, entry.Data["depth"])
	}

	_, err := tree.RemoveAt(2)
	assert.NoError(t, err)
	entry = hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "tree level removed", entry.Message)
		assert.Equal(t, 0, entry.Data["depth"])
	}
}

func TestAssertfPanics(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	box3d.B3SetLogger(logger)
	defer box3d.B3SetLogger(nil)

	assert.NotPanics(t, func() {
		box3d.B3Assertf(true, "never")
	})
	assert.Panics(t, func() {
		box3d.B3Assertf(false, "broken node %d", 3)
	})
	if assert.NotNil(t, hook.LastEntry()) {
		assert.Equal(t, "broken node 3", hook.LastEntry().Message)
		assert.Equal(t, logrus.PanicLevel, hook.LastEntry().Level)
	}
}

func TestNodeStoreGrowthIsLogged(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	def := box3d.MakeB3TreeDef()
	def.Width = 2
	def.InitialNodeCapacity = 1
	def.Logger = logger
	tree := box3d.MustNewB3Tree(def)

	tree.Add(makeBox(0, 0, 0, 1, 1, 1))
	tree.Add(makeBox(10, 0, 0, 11, 1, 1))
	tree.Add(makeBox(10.5, 0, 0, 11.5, 1, 1))
	// Splits leaf 0, the second node of level 1 does not fit its storage.
	tree.Add(makeBox(0.5, 0, 0, 1.5, 1, 1))

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "tree level grown", entry.Message)
		assert.Equal(t, 1, entry.Data["depth"])
		assert.Equal(t, 2, entry.Data["capacity"])
	}
	assert.Equal(t, 3, tree.GetNodeCount())

	hook.Reset()
	bundle := box3d.MustNewB3BundleTree(def)
	for i := 0; i < 5; i++ {
		bundle.Add(makeBox(float64(i), 0, 0, float64(i)+1, 1, 1))
	}
	entry = hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "bundle node pool grown", entry.Message)
		assert.Equal(t, 2, entry.Data["capacity"])
	}
}
