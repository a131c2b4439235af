// Command tutor is the entry point for the Humanoid AI tutor agent.
// It answers questions about the Physical AI & Humanoid Robotics textbook,
// grounded in a Qdrant vector index of book chunks, either one-shot on the
// command line or as an HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/humanoid-ai/tutor-go/cmd/tutor/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
