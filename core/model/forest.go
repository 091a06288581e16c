package model

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// leafMarker is the child index of a leaf node.
const leafMarker = -1

// checkEvery is how many rows a tree scores between context checks.
const checkEvery = 1024

// Forest is a tree-ensemble classifier using soft voting.
type Forest struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	FeatureNames []string `json:"features"`
	Classes      []int    `json:"classes"`
	Trees        []Tree   `json:"trees"`

	sha256 string
	source string
}

// Tree is a single decision tree stored as a flat node list; node 0 is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is a split or a leaf.
type Node struct {
	// Feature is the feature index tested at a split.
	Feature int `json:"feature"`
	// Threshold sends a row left when x[Feature] <= Threshold.
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	// Value is the per-class distribution at a leaf.
	Value []float64 `json:"value,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return n.Left == leafMarker
}

// Validate checks the forest structure and normalizes every leaf distribution.
// Child indices must point forward, which rules out cycles.
func (f *Forest) Validate() error {
	if len(f.FeatureNames) == 0 {
		return errors.New("model declares no features")
	}
	if len(f.Classes) == 0 {
		return errors.New("model declares no classes")
	}
	if len(f.Trees) == 0 {
		return errors.New("model has no trees")
	}

	for t := range f.Trees {
		nodes := f.Trees[t].Nodes
		if len(nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", t)
		}
		for i := range nodes {
			if err := f.validateNode(&nodes[i], i, len(nodes)); err != nil {
				return fmt.Errorf("tree %d node %d: %w", t, i, err)
			}
		}
	}
	return nil
}

func (f *Forest) validateNode(n *Node, index, size int) error {
	if !n.IsLeaf() {
		if n.Left <= index || n.Left >= size || n.Right <= index || n.Right >= size {
			return fmt.Errorf("children (%d, %d) out of range", n.Left, n.Right)
		}
		if n.Feature < 0 || n.Feature >= len(f.FeatureNames) {
			return fmt.Errorf("feature %d out of range", n.Feature)
		}
		return nil
	}

	if len(n.Value) != len(f.Classes) {
		return fmt.Errorf("leaf has %d values for %d classes", len(n.Value), len(f.Classes))
	}
	var total float64
	for _, v := range n.Value {
		if v < 0 {
			return fmt.Errorf("negative leaf value %v", v)
		}
		total += v
	}
	if total == 0 {
		return errors.New("leaf distribution is empty")
	}
	for i := range n.Value {
		n.Value[i] /= total
	}
	return nil
}

// Predict scores every row of X with every tree concurrently, averages the
// leaf distributions and returns the most likely class per row.
// Ties go to the class listed first.
func (f *Forest) Predict(ctx context.Context, X mat.Matrix) ([]int, error) {
	rows, cols := X.Dims()
	if cols != len(f.FeatureNames) {
		return nil, fmt.Errorf("model expects %d features, got %d", len(f.FeatureNames), cols)
	}

	k := len(f.Classes)
	votes := make([][]float64, len(f.Trees))

	g, gctx := errgroup.WithContext(ctx)
	for t := range f.Trees {
		t := t
		g.Go(func() error {
			out := make([]float64, rows*k)
			row := make([]float64, cols)
			for i := 0; i < rows; i++ {
				if i%checkEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				mat.Row(row, i, X)
				copy(out[i*k:(i+1)*k], f.Trees[t].leaf(row).Value)
			}
			votes[t] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	codes := make([]int, rows)
	sum := make([]float64, k)
	for i := 0; i < rows; i++ {
		for c := range sum {
			sum[c] = 0
		}
		for t := range votes {
			for c := 0; c < k; c++ {
				sum[c] += votes[t][i*k+c]
			}
		}
		best := 0
		for c := 1; c < k; c++ {
			if sum[c] > sum[best] {
				best = c
			}
		}
		codes[i] = f.Classes[best]
	}

	return codes, nil
}

// leaf walks the tree for one row.
func (t *Tree) leaf(x []float64) *Node {
	n := &t.Nodes[0]
	for !n.IsLeaf() {
		if x[n.Feature] <= n.Threshold {
			n = &t.Nodes[n.Left]
		} else {
			n = &t.Nodes[n.Right]
		}
	}
	return n
}

// Features returns the input column names.
func (f *Forest) Features() []string {
	return f.FeatureNames
}

// Info describes the forest.
func (f *Forest) Info() Info {
	return Info{
		Name:     f.Name,
		Version:  f.Version,
		Features: f.FeatureNames,
		Classes:  f.Classes,
		Trees:    len(f.Trees),
		SHA256:   f.sha256,
		Source:   f.source,
	}
}
