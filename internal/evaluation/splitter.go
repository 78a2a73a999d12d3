package evaluation

import (
	"fmt"
	"math/rand"
)

// BernoulliSplitter assigns each row to the training partition with an
// independent seeded coin flip. Identical seed, n, and ratio produce a
// bit-identical assignment, which every model variant in a run relies
// on for fair comparison. Not stratified.
type BernoulliSplitter struct {
	Ratio float64
	Seed  int64
}

func NewBernoulliSplitter(ratio float64, seed int64) *BernoulliSplitter {
	return &BernoulliSplitter{Ratio: ratio, Seed: seed}
}

// Assign returns a boolean vector of length n, true meaning "training".
func (s *BernoulliSplitter) Assign(n int) ([]bool, error) {
	if s.Ratio <= 0 || s.Ratio >= 1 {
		return nil, fmt.Errorf("split ratio must be between 0 and 1, got %g", s.Ratio)
	}
	if n <= 0 {
		return nil, fmt.Errorf("cannot split empty dataset")
	}

	rng := rand.New(rand.NewSource(s.Seed))
	assign := make([]bool, n)
	for i := range assign {
		assign[i] = rng.Float64() < s.Ratio
	}
	return assign, nil
}

// KFoldSplitter partitions row indices into k shuffled folds for the
// penalty-strength cross-validation. The shuffle is seeded so the same
// folds reproduce run to run.
type KFoldSplitter struct {
	NFolds int
	Seed   int64
}

func NewKFoldSplitter(nFolds int, seed int64) *KFoldSplitter {
	return &KFoldSplitter{NFolds: nFolds, Seed: seed}
}

// Split returns the held-out index set of each fold. Every index lands
// in exactly one fold.
func (kfs *KFoldSplitter) Split(n int) ([][]int, error) {
	if kfs.NFolds < 2 || kfs.NFolds > n {
		return nil, fmt.Errorf("number of folds must be between 2 and %d, got %d", n, kfs.NFolds)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	rng := rand.New(rand.NewSource(kfs.Seed))
	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	folds := make([][]int, kfs.NFolds)
	foldSize := n / kfs.NFolds

	for i := 0; i < kfs.NFolds; i++ {
		start := i * foldSize
		end := start + foldSize
		if i == kfs.NFolds-1 {
			end = n
		}
		folds[i] = make([]int, end-start)
		copy(folds[i], indices[start:end])
	}

	return folds, nil
}
