package main

import (
	"context"
	"os"

	"kafka-bridge/diagnose"
)

const (
	targetHost = "localhost"
	targetPort = 9092
)

func main() {
	report := diagnose.New().Run(context.Background(), targetHost, targetPort)
	report.Render(os.Stdout)
}
