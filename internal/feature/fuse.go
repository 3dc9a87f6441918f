package feature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tesselate-labs/spatialfuse/internal/sparse"
)

// WeightedConcatenate fuses a self-feature matrix with its
// neighbor-aggregated counterpart: self is scaled by sqrt(1−λ), nbr by
// sqrt(λ), and the two are concatenated along the feature axis. Both
// inputs are assumed to be z-scored already. λ=0 keeps only the self
// block, λ=1 only the neighbor block; values outside [0, 1] are
// rejected. Fresh storage is always allocated, so the inputs remain
// valid after the call. The result is sparse only when both inputs are
// sparse.
func WeightedConcatenate(self, nbr Matrix, lambda float64) (Matrix, error) {
	if lambda < 0 || lambda > 1 || math.IsNaN(lambda) {
		return nil, fmt.Errorf("%w: lambda %v outside [0,1]", ErrInvalidArgument, lambda)
	}
	selfRows, selfCols := self.Dims()
	nbrRows, nbrCols := nbr.Dims()
	if selfRows != nbrRows {
		return nil, fmt.Errorf("%w: self has %d rows, neighbors have %d", ErrInvalidArgument, selfRows, nbrRows)
	}

	selfScale := math.Sqrt(1 - lambda)
	nbrScale := math.Sqrt(lambda)

	sSparse, selfIsSparse := self.(Sparse)
	nSparse, nbrIsSparse := nbr.(Sparse)
	if selfIsSparse && nbrIsSparse {
		a := sSparse.M.Clone()
		a.Scale(selfScale)
		b := nSparse.M.Clone()
		b.Scale(nbrScale)
		out, err := sparse.HStack(a, b)
		if err != nil {
			return nil, err
		}
		return Sparse{M: out}, nil
	}

	out := mat.NewDense(selfRows, selfCols+nbrCols, nil)
	fillScaled(out, self.ToDense(), 0, selfScale)
	fillScaled(out, nbr.ToDense(), selfCols, nbrScale)
	return Dense{M: out}, nil
}

func fillScaled(dst *mat.Dense, src *mat.Dense, colOffset int, c float64) {
	rows, cols := src.Dims()
	for i := 0; i < rows; i++ {
		srcRow := src.RawRowView(i)
		dstRow := dst.RawRowView(i)
		for j := 0; j < cols; j++ {
			dstRow[colOffset+j] = c * srcRow[j]
		}
	}
}
