package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryResolvesEveryKind(t *testing.T) {
	reg := DefaultRegistry(newFakeClient(), mapSettings{}, nil)

	assert.Equal(t, AllKinds, reg.Kinds())
	for _, kind := range AllKinds {
		a, err := reg.AdapterFor(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, a.Kind())
	}
}

func TestRegistryNormalizesIDs(t *testing.T) {
	reg := DefaultRegistry(newFakeClient(), mapSettings{}, nil)

	a, err := reg.AdapterFor("  Unsplash ")
	require.NoError(t, err)
	assert.Equal(t, KindUnsplash, a.Kind())

	_, err = reg.AdapterFor("")
	assert.Error(t, err)

	_, err = reg.AdapterFor("flickr")
	assert.ErrorContains(t, err, `"flickr"`)
}

func TestRegistryReplacesDuplicateKind(t *testing.T) {
	first := NewDesktopper(newFakeClient(), mapSettings{}, nil)
	second := NewDesktopper(newFakeClient(), mapSettings{}, nil)

	reg := NewRegistry(first, nil, second)
	assert.Equal(t, []Kind{KindDesktopper}, reg.Kinds())

	got, err := reg.AdapterFor("desktopper")
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestNewUnknownKindFails(t *testing.T) {
	log := &recordingLogger{}
	a := New("flickr", newFakeClient(), mapSettings{}, log)
	assert.Equal(t, Kind("flickr"), a.Kind())

	rec, err := a.RequestRandomImage(context.Background())
	assert.Zero(t, rec)
	assert.EqualError(t, err, `requestRandomImage not implemented (source "flickr")`)
	assert.Len(t, log.errors, 1)
}

func TestNewFillsMissingCollaborators(t *testing.T) {
	a := New(KindWallhaven, nil, nil, nil)
	w, ok := a.(*wallhavenAdapter)
	require.True(t, ok)
	assert.NotNil(t, w.client)
	assert.NotNil(t, w.settings)
	assert.True(t, w.settings.GetBool(SettingWallhavenAllowSFW))
}
