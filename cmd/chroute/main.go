// Command chroute builds a Contraction Hierarchies graph from a CSV
// edge list and answers one shortest-path query against it.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/exp/slog"

	"github.com/ch-routing/engine/chgraph"
	"github.com/ch-routing/engine/chlog"
	"github.com/ch-routing/engine/config"
	"github.com/ch-routing/engine/preproc"
	"github.com/ch-routing/engine/query"
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to config.yaml")
	from := flag.Int("from", -1, "origin node id")
	to := flag.Int("to", -1, "destination node id")
	flag.Parse()

	logger := slog.New(chlog.NewHandler(os.Stdout, nil))

	cfg := config.ReadConfig(*configPath)

	logger.Info("reading edge list", "path", cfg.Source.EdgeList, "unit", cfg.Weight.Unit.String())
	g, order, err := loadGraph(cfg.Source.EdgeList, cfg.Weight.Unit.Scale())
	if err != nil {
		logger.Error("failed to load edge list: " + err.Error())
		os.Exit(1)
	}

	logger.Info("contracting graph", "nodes", g.NodeCount())
	stats := preproc.Build(g, order, cfg.PreprocConfig(), func(done, total int) {
		logger.Info("contracting", "done", done, "total", total)
	})
	logger.Info("contraction finished", "shortcuts", stats.ShortcutsCreated, "nodes_capped", stats.NodesCapped)

	if *from < 0 || *to < 0 {
		return
	}

	e := query.New(g)
	path, dist := e.Query(int32(*from), int32(*to))

	out, _ := json.Marshal(struct {
		Path     []int32 `json:"path"`
		Distance float64 `json:"distance"`
	}{Path: path, Distance: dist})
	fmt.Println(string(out))
}

// loadGraph reads a CSV edge list (from,to,weight per row, no header)
// and returns a Store sized to the largest node id seen, plus a
// contraction order equal to the natural node-id order. Each raw
// weight is multiplied by scale (config.WeightUnit.Scale) before being
// stored; after query.Divisor is divided back out at query time, a
// "seconds" config reports seconds and a "meters" config reports
// kilometres. Node ordering policy
// is left to the caller; cmd/chroute is a demonstration driver, not a
// node-ordering implementation.
func loadGraph(path string, scale float64) (*chgraph.Store, []int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}

	var maxID int32 = -1
	type rawEdge struct {
		from, to int32
		weight   float64
	}
	edges := make([]rawEdge, 0, len(rows))
	for _, row := range rows {
		if len(row) != 3 {
			return nil, nil, fmt.Errorf("chroute: malformed edge row %v", row)
		}
		from, err := strconv.ParseInt(row[0], 10, 32)
		if err != nil {
			return nil, nil, err
		}
		to, err := strconv.ParseInt(row[1], 10, 32)
		if err != nil {
			return nil, nil, err
		}
		weight, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, nil, err
		}
		edges = append(edges, rawEdge{from: int32(from), to: int32(to), weight: weight})
		if int32(from) > maxID {
			maxID = int32(from)
		}
		if int32(to) > maxID {
			maxID = int32(to)
		}
	}

	n := int(maxID) + 1
	g := chgraph.New(n)
	for _, e := range edges {
		if err := g.AddEdge(e.from, e.to, e.weight*scale); err != nil {
			return nil, nil, err
		}
	}

	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	return g, order, nil
}
