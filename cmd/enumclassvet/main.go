// Command enumclassvet checks type switches over //enumclass:closed
// interfaces. It runs standalone or as a go vet tool:
//
//	go vet -vettool=$(which enumclassvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"enumclass/internal/goanalyzer"
)

func main() {
	singlechecker.Main(goanalyzer.Analyzer)
}
