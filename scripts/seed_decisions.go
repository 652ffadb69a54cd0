// seed_decisions.go: standalone script that posts decision YAML files to the
// Decide API as saved decisions.
//
// Usage:
//
//	go run scripts/seed_decisions.go -dir examples -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type criterion struct {
	Name      string   `yaml:"name" json:"name"`
	Weight    float64  `yaml:"weight" json:"weight"`
	Direction string   `yaml:"direction" json:"direction,omitempty"`
	Min       *float64 `yaml:"min" json:"min,omitempty"`
	Max       *float64 `yaml:"max" json:"max,omitempty"`
}

type option struct {
	Name   string             `yaml:"name" json:"name"`
	Values map[string]float64 `yaml:"values" json:"values"`
}

type decisionFile struct {
	DecisionName string      `yaml:"decision" json:"decisionName"`
	Criteria     []criterion `yaml:"criteria" json:"criteria"`
	Options      []option    `yaml:"options" json:"options"`
}

func main() {
	dir := flag.String("dir", "examples", "directory of decision YAML files")
	apiURL := flag.String("api", "http://localhost:8700", "Decide API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print decisions without posting")
	flag.Parse()

	paths, err := filepath.Glob(filepath.Join(*dir, "*.yaml"))
	if err != nil {
		log.Fatalf("glob %s: %v", *dir, err)
	}

	var decisions []decisionFile
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			log.Printf("skip %s: %v", p, err)
			continue
		}
		var d decisionFile
		if err := yaml.Unmarshal(data, &d); err != nil {
			log.Printf("skip %s: %v", p, err)
			continue
		}
		decisions = append(decisions, d)
	}

	log.Printf("parsed %d decisions from %s", len(decisions), *dir)

	if *dryRun {
		for i, d := range decisions {
			fmt.Printf("[%d] %s (criteria=%d, options=%d)\n", i+1, d.DecisionName, len(d.Criteria), len(d.Options))
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, d := range decisions {
		body, _ := json.Marshal(d)
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/decisions", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", d.DecisionName, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", *clientID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", d.DecisionName, err)
			skipped++
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusCreated {
			created++
		} else {
			log.Printf("skip %q: status %d", d.DecisionName, resp.StatusCode)
			skipped++
		}
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}
