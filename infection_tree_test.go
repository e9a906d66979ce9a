package uksim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfectionTree_DescendantsAndSize(t *testing.T) {
	tree := NewInfectionTree()
	tree.AddEdge(-1, 0, 1, BuildingID{})
	tree.AddEdge(0, 1, 2, BuildingID{})
	tree.AddEdge(0, 2, 2, BuildingID{})
	tree.AddEdge(1, 3, 3, BuildingID{})

	assert.Equal(t, 4, tree.Size())
	desc := tree.Descendants(0)
	assert.ElementsMatch(t, []int{1, 2, 3}, desc)
	assert.Empty(t, tree.Descendants(3))
}

func TestLargestTransmissionCluster(t *testing.T) {
	tree := NewInfectionTree()
	tree.AddEdge(-1, 0, 1, BuildingID{})
	tree.AddEdge(0, 1, 2, BuildingID{})
	tree.AddEdge(-1, 5, 1, BuildingID{})

	assert.Equal(t, 2, largestTransmissionCluster(tree))
}
