// Command housefit fits house prices with multi-variable linear
// regression: load a CSV, clean it, train on a standardized split and
// report the de-scaled formula with train and test scores. Models can be
// persisted and reloaded for prediction without retraining.
package main

import (
	"fmt"
	"os"

	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.LogError(err, "run failed")
		fmt.Fprintln(os.Stderr, exitMessage(err))
		os.Exit(1)
	}
}

// exitMessage maps the error kind to the operator-facing line printed on a
// failed exit.
func exitMessage(err error) string {
	var dataErr *housefitErrors.DataProcessingError
	var modelErr *housefitErrors.ModelOperationError
	switch {
	case housefitErrors.As(err, &dataErr):
		return fmt.Sprintf("failed to process data: %v", err)
	case housefitErrors.As(err, &modelErr):
		return fmt.Sprintf("model failed to run: %v", err)
	default:
		return fmt.Sprintf("unexpected error: %v", err)
	}
}
