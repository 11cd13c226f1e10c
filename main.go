package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/epdtest/internal/epdtest/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := epdtest(); err != nil {
		logrus.Fatal(err)
	}
}

func epdtest() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
