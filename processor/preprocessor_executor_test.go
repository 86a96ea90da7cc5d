package processor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valery1707/wro4j/config"
	"github.com/valery1707/wro4j/model"
	"github.com/valery1707/wro4j/processor"
)

func TestExecute_NilResource(t *testing.T) {
	t.Parallel()

	pre, _ := wire(t, processor.NewSimpleFactory(), nil, config.DefaultConfig())

	_, err := pre.Execute(nil, true)
	assert.ErrorIs(t, err, model.ErrNilResource)
}

func TestExecute_EmptyChainReturnsRawContent(t *testing.T) {
	t.Parallel()

	pre, _ := wire(t, processor.NewSimpleFactory(), map[string]string{"/a.css": "raw{}"}, config.DefaultConfig())

	got, err := pre.Execute(&model.Resource{URI: "/a.css", Type: model.CSS}, true)
	require.NoError(t, err)
	assert.Equal(t, "raw{}", got)
}

func TestExecute_UnreadableResourceYieldsEmptyContent(t *testing.T) {
	t.Parallel()

	// Even with a registered chain the failed read short-circuits: the
	// empty content is returned untransformed.
	processors := processor.NewSimpleFactory().
		AddPre(appendPre("!"), processor.ForType(model.CSS))
	pre, _ := wire(t, processors, nil, config.DefaultConfig())

	got, err := pre.Execute(&model.Resource{URI: "/missing.css", Type: model.CSS}, true)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExecute_ChainForOtherTypeNotApplied(t *testing.T) {
	t.Parallel()

	processors := processor.NewSimpleFactory().
		AddPre(upperPre(), processor.ForType(model.CSS))
	pre, _ := wire(t, processors, map[string]string{"/b.js": "b();"}, config.DefaultConfig())

	got, err := pre.Execute(&model.Resource{URI: "/b.js", Type: model.JS}, true)
	require.NoError(t, err)
	assert.Equal(t, "b();", got)
}
