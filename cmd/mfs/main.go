package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mfsutil/mfs32"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.DebugLevel)

	session := mfs32.NewSession(afero.NewOsFs(), log)
	NewDispatcher(session, os.Stdout).Run(os.Stdin)
}
