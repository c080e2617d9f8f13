package evac

import "gonum.org/v1/gonum/mat"

// Prioritize scores urgency as affected population x threat x vulnerability.
// No normalization is applied.
func Prioritize(affected, threat, vulnerability *mat.Dense) (*mat.Dense, error) {
	rows, cols, err := shape(StagePriority, affected, threat, vulnerability)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(rows, cols, nil)
	out.MulElem(affected, threat)
	out.MulElem(out, vulnerability)
	return out, nil
}
