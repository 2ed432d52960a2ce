package halfedge

import (
	"testing"

	"github.com/mikenye/geom2d/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikenye/voronoi/site"
)

func TestNewStoreCreatesParallelCells(t *testing.T) {
	sites := []site.Site{site.New(0, 0, 0), site.New(1, 1, 1)}
	s := NewStore(sites)
	require.Len(t, s.Cells, 2)
	assert.Equal(t, sites[0], s.Cells[0].Site)
	assert.Equal(t, sites[1], s.Cells[1].Site)
}

func TestCreateEdgePushesHalfEdgeToBothCells(t *testing.T) {
	left := site.New(0, 0, 0)
	right := site.New(10, 0, 1)
	s := NewStore([]site.Site{left, right})

	e := s.CreateEdge(left, right, nil, nil)
	require.Len(t, s.Edges, 1)
	require.Len(t, s.Cells[0].HalfEdges, 1)
	require.Len(t, s.Cells[1].HalfEdges, 1)
	assert.Same(t, e, s.Cells[0].HalfEdges[0].Edge)
	assert.Same(t, e, s.Cells[1].HalfEdges[0].Edge)
}

func TestCreateBorderEdgeHasNoRightSite(t *testing.T) {
	left := site.New(0, 0, 0)
	s := NewStore([]site.Site{left})

	e := s.CreateBorderEdge(left, point.New(0, 0), point.New(0, 10))
	assert.False(t, e.RightSet)
	assert.True(t, e.VaSet)
	assert.True(t, e.VbSet)
}

func TestSetEdgeStartpointFreshOrientation(t *testing.T) {
	left := site.New(0, 0, 0)
	right := site.New(10, 0, 1)
	e := &Edge{}

	v := point.New(5, 5)
	SetEdgeStartpoint(e, left, right, v)

	assert.Equal(t, left, e.Left)
	assert.Equal(t, right, e.Right)
	assert.True(t, e.VaSet)
	assert.Equal(t, v, e.Va)
	assert.False(t, e.VbSet)
}

func TestSetEdgeStartpointFromOtherPerspectiveSetsEnd(t *testing.T) {
	left := site.New(0, 0, 0)
	right := site.New(10, 0, 1)
	e := &Edge{}
	SetEdgeStartpoint(e, left, right, point.New(5, 5))

	// arriving with (lSite=right, rSite=left) means edge.Left == rSite(call) -> sets Vb
	SetEdgeStartpoint(e, right, left, point.New(5, -5))
	assert.True(t, e.VbSet)
	assert.Equal(t, point.New(5, -5), e.Vb)
}

func TestEdgeDanglingAndOpen(t *testing.T) {
	e := &Edge{}
	assert.True(t, e.Open())
	assert.False(t, e.Dangling())

	e.Va, e.VaSet = point.New(0, 0), true
	assert.False(t, e.Open())
	assert.True(t, e.Dangling())

	e.Vb, e.VbSet = point.New(1, 1), true
	assert.False(t, e.Dangling())
}
