// Command rtxsim drives the softcore kernel from a declarative YAML
// scenario, standing in for the original's hand-coded main.c.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("rtxsim failed")
		os.Exit(1)
	}
}
