package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"simplevo/internal/engine"
	"simplevo/internal/sims/fire"
	"simplevo/internal/snapshot"
)

type seedList []uint32

func (l *seedList) String() string {
	parts := make([]string, len(*l))
	for i, s := range *l {
		parts[i] = strconv.FormatUint(uint64(s), 10)
	}
	return strings.Join(parts, ",")
}

func (l *seedList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 0, 32)
		if err != nil {
			return err
		}
		*l = append(*l, uint32(v))
	}
	return nil
}

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// fireConfig applies key=value overrides on top of the -w/-h geometry.
// Malformed pairs and unparsable values are ignored.
func fireConfig(width, height int, overrides kvList) fire.Config {
	m := map[string]string{"w": strconv.Itoa(width), "h": strconv.Itoa(height)}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return fire.FromMap(m)
}

type result struct {
	seed  uint32
	stats fire.Stats
	path  string
	err   error
}

func main() {
	ticks := flag.Int("ticks", 120, "ticks to run per seed")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 320, "screen width")
	height := flag.Int("h", 240, "screen height")
	out := flag.String("out", "", "directory for snapshots (empty: statistics only)")
	format := flag.String("format", "png", "snapshot format (png, bmp, ppm)")
	var seeds seedList
	flag.Var(&seeds, "seed", "seed to render, comma separated or repeated")
	var overrides kvList
	flag.Var(&overrides, "set", "fire config override in key=value form (w, h, seed, grid_cap, frame_cap; repeatable)")
	flag.Parse()

	base := engine.DefaultConfig()
	base.Fire = fireConfig(*width, *height, overrides)
	if len(seeds) == 0 {
		seeds = seedList{base.Fire.Seed}
	}
	fmtName, err := snapshot.ParseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}
	if *out != "" {
		if err := os.MkdirAll(*out, 0o755); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Printf("Rendering %d seeds (%d workers, %d ticks, %dx%d)\n", len(seeds), *workers, *ticks, base.Fire.Width, base.Fire.Height)

	jobs := make(chan uint32)
	results := make(chan result)
	var wg sync.WaitGroup

	for i := 0; i < max(*workers, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- render(base, seed, *ticks, *out, fmtName)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range seeds {
			jobs <- s
		}
		close(jobs)
	}()

	start := time.Now()
	var all []result
	failed := 0
	for res := range results {
		if res.err != nil {
			log.Printf("seed %d: %v", res.seed, res.err)
			failed++
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].stats.Mean > all[j].stats.Mean })
	for _, res := range all {
		fmt.Printf("seed=%-10d mean=%6.2f peak=%3d lit=%5.1f%% %s\n",
			res.seed, res.stats.Mean, res.stats.Peak, 100*res.stats.Lit, res.path)
	}
	fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		os.Exit(1)
	}
}

func render(cfg engine.Config, seed uint32, ticks int, dir string, format snapshot.Format) result {
	cfg.Fire.Seed = seed
	eng, err := engine.New(cfg, nil)
	if err != nil {
		return result{seed: seed, err: err}
	}
	for i := 0; i < ticks; i++ {
		eng.Tick()
	}
	res := result{seed: seed, stats: eng.Sim().Measure()}
	if dir != "" {
		res.path = filepath.Join(dir, fmt.Sprintf("fire_%d.%s", seed, format))
		res.err = snapshot.SaveFramebuffer(res.path, eng.Framebuffer())
	}
	return res
}
