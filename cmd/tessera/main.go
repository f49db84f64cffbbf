// Copyright 2026 Tessera Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/tessera-app/tessera"
	"github.com/tessera-app/tessera/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "tessera",
		Usage: "Canvas workspace with full-text search over conversations and notes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import canvas nodes from a JSON file",
				ArgsUsage: "<file>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the canvas and print ranked results",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "center-x",
						Usage: "Viewport center X used for proximity ranking",
					},
					&cli.Float64Flag{
						Name:  "center-y",
						Usage: "Viewport center Y used for proximity ranking",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print node and index statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// JSON import format. Kind and role come in as strings so exported canvases
// stay readable.
type importMessage struct {
	Id      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

type importNode struct {
	Id          string          `json:"id"`
	Title       string          `json:"title"`
	Color       string          `json:"color"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	RoleLabel   string          `json:"roleLabel"`
	Messages    []importMessage `json:"messages"`
}

func parseKind(s string) (core.NodeKind, error) {
	switch strings.ToLower(s) {
	case "", "standard":
		return core.NodeKindStandard, nil
	case "note":
		return core.NodeKindNote, nil
	case "group":
		return core.NodeKindGroup, nil
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

func parseRole(s string) (core.MessageRole, error) {
	switch strings.ToLower(s) {
	case "user":
		return core.RoleUser, nil
	case "assistant":
		return core.RoleAssistant, nil
	}
	return 0, fmt.Errorf("unknown message role %q", s)
}

func (in *importNode) toNode() (*core.Node, error) {
	kind, err := parseKind(in.Kind)
	if err != nil {
		return nil, err
	}

	node := &core.Node{
		Id:          core.ID(in.Id),
		Title:       in.Title,
		Color:       in.Color,
		Position:    core.Point{X: in.X, Y: in.Y},
		Kind:        kind,
		Description: in.Description,
		RoleLabel:   in.RoleLabel,
	}
	for _, m := range in.Messages {
		role, err := parseRole(m.Role)
		if err != nil {
			return nil, err
		}
		node.Messages = append(node.Messages, core.Message{
			Id:      core.ID(m.Id),
			Role:    role,
			Content: m.Content,
		})
	}
	return node, nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file")
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var raw []importNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse input: %w", err)
	}

	nodes := make([]*core.Node, 0, len(raw))
	for i := range raw {
		node, err := raw[i].toNode()
		if err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		nodes = append(nodes, node)
	}

	session, err := tessera.NewSession(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer session.Close()

	if err := session.Nodes().PutNodes(context.Background(), nodes...); err != nil {
		return fmt.Errorf("failed to store nodes: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Imported %d nodes\n", len(nodes))
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one query")
	}
	query := c.Args().First()

	session, err := tessera.NewSession(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer session.Close()

	if err := session.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to load nodes: %w", err)
	}

	controller := session.Controller()
	if c.IsSet("center-x") || c.IsSet("center-y") {
		controller.UpdateViewportCenter(core.Point{
			X: c.Float64("center-x"),
			Y: c.Float64("center-y"),
		})
	}
	controller.SetQuery(query)
	results := controller.SearchNow()

	if len(results) == 0 {
		fmt.Println("No results")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%2d. [%s] %s\n", i+1, r.Kind, r.NodeTitle)
		fmt.Printf("    %s\n", r.Snippet)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	session, err := tessera.NewSession(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer session.Close()

	if err := session.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to load nodes: %w", err)
	}

	count, err := session.Nodes().CountNodes(context.Background())
	if err != nil {
		return fmt.Errorf("failed to count nodes: %w", err)
	}
	stats := session.Index().Stats()

	fmt.Printf("Stored nodes:   %d\n", count)
	fmt.Printf("Indexed nodes:  %d\n", stats.Nodes)
	fmt.Printf("Text units:     %d\n", stats.Units)
	fmt.Printf("Distinct terms: %d\n", stats.Terms)
	fmt.Printf("Postings:       %d\n", stats.Postings)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
