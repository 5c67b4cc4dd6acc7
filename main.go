package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/felipedavid/lx32check/harness"
	"github.com/felipedavid/lx32check/rtl"
)

func main() {
	units := flag.String("units", "", "comma separated units to run (default: all)")
	iterations := flag.Int("iterations", 0, "override the iteration count of every unit")
	seed := flag.Uint64("seed", 0, "override the random seed of every unit")
	resetCycles := flag.Int("reset-cycles", -1, "override the number of reset cycles before each unit")
	ref := flag.String("ref", "rtl", "reference core: rtl or golden")
	verbose := flag.Bool("v", false, "log every matching cycle")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	var reference harness.Factory
	switch *ref {
	case "rtl":
		reference = rtl.Factory()
	case "golden":
		reference = harness.Golden()
	default:
		log.Fatalf("unknown reference core %q", *ref)
	}

	families := harness.Families()
	if *units != "" {
		families = families[:0:0]
		for _, name := range strings.Split(*units, ",") {
			f, ok := harness.Lookup(strings.TrimSpace(name))
			if !ok {
				log.Fatalf("unknown unit %q", name)
			}
			families = append(families, f)
		}
	}

	runner := &harness.Runner{Golden: harness.Golden(), Reference: reference, Log: log}

	fmt.Printf("%s\n", banner(" LX32 FULL HARDWARE VALIDATION "))
	for _, f := range families {
		p := harness.Defaults(f.Name)
		if *iterations > 0 {
			p.Iterations = *iterations
		}
		if *seed != 0 {
			p.Seed = *seed
		}
		if *resetCycles >= 0 {
			p.ResetCycles = *resetCycles
		}

		if err := runner.Run(f, p); err != nil {
			harness.Report(log, err)
			fmt.Printf("%s\n", banner(" "+strings.ToUpper(f.Name)+" TEST FAILED "))
			os.Exit(1)
		}
		fmt.Printf("%s\n", banner(" "+strings.ToUpper(f.Name)+" FUZZER PASSED "))
	}
	fmt.Printf("%s\n", banner(" ALL TESTS PASSED SUCCESSFULLY "))
}

func banner(title string) string {
	const width = 100
	pad := width - len(title)
	if pad <= 0 {
		return title
	}
	left := pad / 2
	return strings.Repeat("=", left) + title + strings.Repeat("=", pad-left)
}
