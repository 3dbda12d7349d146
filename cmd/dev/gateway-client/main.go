package main

import (
	"context"
	"fmt"
	"log"

	"github.com/skillsphere/backend/pkg/gateway"
)

const model = "llama3"

const prompt = `Act as an expert career coach. A user wants to transition from
'Backend Developer' to 'ML Engineer'. Reply with a JSON array of steps, each
with keys "step", "title", "description" and "resources".`

// Manual smoke tool: sends a roadmap-style prompt to a local Ollama instance
// and prints the raw response.
func main() {
	ctx := context.Background()

	client, err := gateway.NewDefaultClient(gateway.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	out, err := client.Generate(ctx, model, prompt)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out)
}
