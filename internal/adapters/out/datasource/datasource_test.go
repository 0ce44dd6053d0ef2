package datasource

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/citybike/internal/adapters/out/httpfetch"
	"github.com/bnema/citybike/internal/domain"
)

type stubHolder struct {
	value domain.Networks
	ok    bool
}

func (s *stubHolder) Value() (domain.Networks, bool) { return s.value, s.ok }

func TestMock_AlwaysReturnsValue(t *testing.T) {
	sample := domain.SampleNetworks()
	source := NewMock(sample)

	for range 5 {
		got, ok := source.Get()
		assert.True(t, ok)
		assert.Equal(t, sample, got)
	}
}

func TestLive_EmptyUntilHolderHasValue(t *testing.T) {
	holder := &stubHolder{}
	source := NewLive[domain.Networks](holder)

	_, ok := source.Get()
	assert.False(t, ok)

	holder.value, holder.ok = domain.SampleNetworks(), true

	got, ok := source.Get()
	assert.True(t, ok)
	assert.Equal(t, domain.SampleNetworks(), got)
}

func TestLive_FreshFetcherReturnsNothing(t *testing.T) {
	fetcher := httpfetch.New[domain.Networks]()
	defer func() { _ = fetcher.Close() }()

	got, ok := NewLive[domain.Networks](fetcher).Get()
	assert.False(t, ok)
	assert.Zero(t, got)
}
