package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/descent-ml/descent/linalg"
	"github.com/descent-ml/descent/optimize"
)

var (
	objectiveName string
	dim           int
	stochastic    bool
	useL1         bool
	lambda        float64
	alpha         float64
	maxIters      int
	tolerance     float64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Minimize a built-in benchmark objective",
	Long:  `Runs the selected optimizer against a benchmark objective and reports the result.`,
	RunE:  runBenchmark,
}

func init() {
	runCmd.Flags().StringVar(&objectiveName, "objective", "quadratic", "Objective: quadratic, rosenbrock")
	runCmd.Flags().IntVar(&dim, "dim", 10, "Problem dimension")
	runCmd.Flags().BoolVar(&stochastic, "stochastic", false, "Use the stochastic (AdaGrad) optimizer")
	runCmd.Flags().BoolVar(&useL1, "l1", false, "Use L1 regularization instead of L2")
	runCmd.Flags().Float64Var(&lambda, "lambda", 0, "Regularization strength")
	runCmd.Flags().Float64Var(&alpha, "alpha", 0.5, "Base step size for stochastic optimizers")
	runCmd.Flags().IntVar(&maxIters, "max-iters", 1000, "Iteration cap (negative for unbounded)")
	runCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "Relative gradient tolerance")

	rootCmd.AddCommand(runCmd)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	f, init, err := benchmark(objectiveName, dim)
	if err != nil {
		return err
	}

	r, err := optimize.Build(optimize.OptParams{
		Regularization: lambda,
		Alpha:          alpha,
		MaxIterations:  maxIters,
		Tolerance:      tolerance,
		UseStochastic:  stochastic,
		UseL1:          useL1,
	})
	if err != nil {
		return errors.Wrap(err, "building optimizer")
	}

	logrus.WithFields(logrus.Fields{
		"objective":  objectiveName,
		"dim":        dim,
		"stochastic": stochastic,
		"l1":         useL1,
		"lambda":     lambda,
	}).Info("starting minimization")

	start := time.Now()
	state, err := r.Run(f, init)
	if err != nil {
		return errors.Wrap(err, "minimization failed")
	}

	logrus.WithFields(logrus.Fields{
		"iterations": state.Iter,
		"value":      state.AdjustedValue,
		"gradNorm":   linalg.Norm(state.AdjustedGrad),
		"reason":     r.Reason(state).String(),
		"elapsed":    time.Since(start),
	}).Info("finished")

	fmt.Printf("reason: %s\n", r.Reason(state))
	fmt.Printf("iterations: %d\n", state.Iter)
	fmt.Printf("final value: %g\n", state.AdjustedValue)
	if dim <= 16 {
		fmt.Printf("final point: %v\n", state.X)
	}
	return nil
}

// benchmark returns the named objective and its conventional starting point.
func benchmark(name string, n int) (optimize.Function[[]float64], []float64, error) {
	switch name {
	case "quadratic":
		init := make([]float64, n)
		for i := range init {
			init[i] = 10
		}
		f := optimize.Func[[]float64](func(x []float64) (float64, []float64) {
			return linalg.Dot(x, x), linalg.Scale(2, x)
		})
		return f, init, nil

	case "rosenbrock":
		if n < 2 {
			return nil, nil, errors.New("rosenbrock needs dim >= 2")
		}
		init := make([]float64, n)
		for i := range init {
			init[i] = -1.2
			if i%2 == 1 {
				init[i] = 1
			}
		}
		f := optimize.Func[[]float64](rosenbrock)
		return f, init, nil

	default:
		return nil, nil, errors.Errorf("unknown objective %q", name)
	}
}

func rosenbrock(x []float64) (float64, []float64) {
	var value float64
	grad := make([]float64, len(x))
	for i := 0; i < len(x)-1; i++ {
		t1 := x[i+1] - x[i]*x[i]
		t2 := 1 - x[i]
		value += 100*t1*t1 + t2*t2
		grad[i] += -400*x[i]*t1 - 2*t2
		grad[i+1] += 200 * t1
	}
	return value, grad
}
