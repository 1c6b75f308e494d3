package model

// Coefficients is a single posterior draw of the regression coefficients.
type Coefficients struct {
	// Alp is the intercept per sex, female first.
	Alp []float64
	// Bet is the age slope shared by everyone.
	Bet float64
	// Cla holds the second and third class slopes of the Class variant.
	Cla []float64
	// Tau is the pooling scale of the Hierarchical variant.
	Tau float64
	// Off holds the sex and class intercept offsets of the Hierarchical
	// variant, indexed by sex first.
	Off [][]float64
}

// Eta returns the linear predictor of row i of cov.
func (c Coefficients) Eta(cov Covariates, i int) float64 {
	eta := c.Alp[cov.Sex[i]] + c.Bet*cov.Age[i]

	if len(c.Cla) != 0 {
		if k := cov.Cla[i]; k > 0 {
			eta += c.Cla[k-1]
		}
	}

	if len(c.Off) != 0 {
		eta += c.Off[cov.Sex[i]][cov.Cla[i]]
	}

	return eta
}

// Prob returns the survival probability of row i of cov.
func (c Coefficients) Prob(cov Covariates, i int) float64 {
	return Sigmoid(c.Eta(cov, i))
}
