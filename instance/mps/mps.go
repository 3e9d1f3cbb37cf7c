// Package mps reads problems in MPS format through GLPK.
package mps

import (
	"math/big"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"q.log/tabsimplex/instance"
	"q.log/tabsimplex/model"
)

// ReadFile reads a fixed MPS file. Row bounds become <=, >= or =
// constraints (rows bounded on both sides give two constraints), free rows
// are dropped, and column bounds other than x >= 0 become extra
// constraints. Columns that may go negative are rejected with
// instance.ErrNegativeBound.
func ReadFile(filename string) (*model.Problem, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, filename); err != nil {
		return nil, errors.Wrapf(err, "mps: read %s", filename)
	}

	ncols := lp.NumCols()
	names := make([]string, ncols)
	obj := model.Objective{Sense: model.Minimize, Coefs: make([]*big.Rat, ncols)}
	if lp.ObjDir() == glpk.MAX {
		obj.Sense = model.Maximize
	}
	for c := range ncols {
		names[c] = lp.ColName(c + 1)
		obj.Coefs[c] = instance.FloatRat(lp.ObjCoef(c + 1))
	}

	var cons []model.Constraint
	for r := 1; r <= lp.NumRows(); r++ {
		row := make([]*big.Rat, ncols)
		for c := range row {
			row[c] = new(big.Rat)
		}
		idxs, vals := lp.MatRow(r)
		for i, v := range idxs {
			// GLPK arrays are 1-based; element 0 is unused.
			if v == 0 {
				continue
			}
			row[v-1] = instance.FloatRat(vals[i])
		}
		cons = append(cons, instance.RowConstraints(row, lp.RowLB(r), lp.RowUB(r))...)
	}

	for c := range ncols {
		bounds, err := instance.ColumnConstraints(names[c], ncols, c, lp.ColLB(c+1), lp.ColUB(c+1))
		if err != nil {
			return nil, errors.WithMessage(err, filename)
		}
		cons = append(cons, bounds...)
	}

	return model.NewProblem(obj, cons, model.WithVarNames(names...))
}
